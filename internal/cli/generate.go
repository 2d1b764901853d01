package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/io"
	"github.com/matzehuels/refdoc/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags projectFlags
		check bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Markdown reference documents",
		Long: `Generate parses every source below the source root, builds the symbol
index over all of them and writes one Markdown document per source.

With --check nothing is written: documents that differ from the generated
output are reported with a diff and the command fails.`,
		Example: `  refdoc generate
  refdoc generate --source lua --output doc/api --site-root doc
  refdoc generate --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(flags.noCache, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			result, err := runner.Execute(ctx, pipeline.Options{
				Config:  cfg,
				Check:   check,
				Refresh: flags.refresh,
				Logger:  loggerFromContext(ctx),
			})

			if check {
				return reportCheck(result, err)
			}
			if err != nil {
				return err
			}

			printSuccess("Generated %d documents", len(result.Documents))
			printKeyValue("Output", cfg.Output.Root)
			printKeyValue("Run", result.RunID)
			printStats(result.Stats.Written, result.Stats.Unchanged, result.CacheInfo.Hits)
			for _, d := range result.Documents {
				if d.Status == io.Written {
					printFile(d.Source.OutPath)
				}
			}
			prog.done(fmt.Sprintf("Indexed %d symbols", result.Stats.Entries))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "verify documents are up to date without writing")

	return cmd
}

// reportCheck prints the outcome of a check run.
func reportCheck(result *pipeline.Result, err error) error {
	if err != nil && !errors.Is(err, errors.ErrCodeStale) {
		return err
	}
	if result == nil {
		return err
	}
	if len(result.Stale) == 0 {
		printSuccess("All %d documents are up to date", len(result.Documents))
		return nil
	}
	for _, s := range result.Stale {
		printWarning("%s is out of date", s.Path)
		fmt.Print(s.Diff)
	}
	printNextStep("Regenerate with", "refdoc generate")
	return err
}
