package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refdoc/pkg/config"
)

// projectFlags are the flags shared by every command that reads a project.
// Set flags override refdoc.toml.
type projectFlags struct {
	configPath string
	sourceRoot string
	outputRoot string
	siteRoot   string
	parser     string
	noCache    bool
	refresh    bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", config.FileName, "configuration file")
	flags.StringVar(&f.sourceRoot, "source", "", "source root (overrides source.root)")
	flags.StringVarP(&f.outputRoot, "output", "o", "", "output root (overrides output.root)")
	flags.StringVar(&f.siteRoot, "site-root", "", "site root for URLs (overrides output.site_root)")
	flags.StringVar(&f.parser, "parser", "", "parser command (overrides parser.command)")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the parsed-model cache")
	flags.BoolVar(&f.refresh, "refresh", false, "re-parse every source, refreshing the cache")
}

// load reads the configuration file and applies flag overrides.
func (f *projectFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Root = f.sourceRoot
	}
	if flags.Changed("output") {
		cfg.Output.Root = f.outputRoot
	}
	if flags.Changed("site-root") {
		cfg.Output.SiteRoot = f.siteRoot
	}
	if flags.Changed("parser") {
		cfg.Parser.Command = f.parser
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// absPath returns p made absolute, or p itself if that fails.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
