// Package config loads refdoc.toml.
//
// A missing file yields [Default]. Values present in the file replace the
// defaults field by field; anything absent keeps its default:
//
//	[source]
//	root = "lua"
//	extension = ".lua"
//
//	[output]
//	root = "doc/api"
//	site_root = "doc"
//	extension = ".md"
//
//	[parser]
//	command = "luadoc-json {file}"
//
//	[render]
//	boolean_type = "string"
//	code_language = "lua"
//
//	[[links.external]]
//	pattern = 'vim\.api\.([\w|_]*)'
//	replacement = "[${1}](https://neovim.io/doc/user/api.html#${1}())"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/symbols"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "refdoc.toml"

// Config is the complete generator configuration.
type Config struct {
	Source Source `toml:"source"`
	Output Output `toml:"output"`
	Parser Parser `toml:"parser"`
	Render Render `toml:"render"`
	Links  Links  `toml:"links"`
}

// Source selects the files to document.
type Source struct {
	Root      string `toml:"root"`
	Extension string `toml:"extension"`
}

// Output places the generated documents.
type Output struct {
	Root      string `toml:"root"`
	SiteRoot  string `toml:"site_root"` // URLs are relative to this directory
	Extension string `toml:"extension"`
}

// Parser configures the external annotation parser.
type Parser struct {
	// Command is split with shell quoting rules; "{file}" is replaced by
	// the source path. Empty means sources are model files.
	Command string `toml:"command"`
}

// Render tunes document rendering.
type Render struct {
	BooleanType  string `toml:"boolean_type"`
	CodeLanguage string `toml:"code_language"`
}

// Links configures link substitution.
type Links struct {
	External []ExternalLink `toml:"external"`
}

// ExternalLink rewrites references to an outside namespace.
type ExternalLink struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: Source{Root: "lua", Extension: ".lua"},
		Output: Output{Root: "doc/api", SiteRoot: "doc", Extension: ".md"},
		Render: Render{BooleanType: "string", CodeLanguage: "lua"},
		Links: Links{External: []ExternalLink{{
			Pattern:     symbols.NeovimAPIPattern,
			Replacement: symbols.NeovimAPIReplacement,
		}}},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg. Keys the file does not set are left
// untouched; an explicit [[links.external]] list replaces the default one.
func Parse(data []byte, cfg *Config) error {
	defaults := cfg.Links.External
	cfg.Links.External = nil
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if !md.IsDefined("links", "external") {
		cfg.Links.External = defaults
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return nil
}

// Validate checks roots, extensions and external link patterns.
func (c *Config) Validate() error {
	roots := []struct{ name, value string }{
		{"source.root", c.Source.Root},
		{"output.root", c.Output.Root},
		{"output.site_root", c.Output.SiteRoot},
	}
	for _, r := range roots {
		if err := errors.ValidateRoot(r.name, r.value); err != nil {
			return err
		}
	}
	if err := errors.ValidateExtension(c.Source.Extension); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source.extension")
	}
	if err := errors.ValidateExtension(c.Output.Extension); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.extension")
	}
	if _, err := c.ExternalRules(); err != nil {
		return err
	}
	rel, err := filepath.Rel(c.Output.SiteRoot, c.Output.Root)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.New(errors.ErrCodeInvalidConfig, "output.root %q must be inside output.site_root %q", c.Output.Root, c.Output.SiteRoot)
	}
	return nil
}

// ExternalRules compiles the configured external link rules in order.
func (c *Config) ExternalRules() ([]symbols.ExternalRule, error) {
	rules := make([]symbols.ExternalRule, 0, len(c.Links.External))
	for i, l := range c.Links.External {
		rule, err := symbols.CompileExternalRule(l.Pattern, l.Replacement)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "links.external[%d]", i)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
