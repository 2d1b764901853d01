package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/pipeline"
	"github.com/matzehuels/refdoc/pkg/watch"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate documents whenever a source changes",
		Long: `Watch generates once, then regenerates the whole documentation tree
each time a source below the source root changes. Every regeneration is a
full run, so links into changed modules stay correct everywhere.`,
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
			logger := loggerFromContext(ctx)
			opts := pipeline.Options{Config: cfg, Refresh: flags.refresh, Logger: logger}

			regenerate := func(ctx context.Context, changed []string) error {
				result, err := runner.Execute(ctx, opts)
				if err != nil {
					printError("%s", errors.UserMessage(err))
					return err
				}
				printSuccess("Regenerated %d documents", len(result.Documents))
				printStats(result.Stats.Written, result.Stats.Unchanged, result.CacheInfo.Hits)
				return nil
			}
			_ = regenerate(ctx, nil)

			w := watch.New(cfg.Source.Root, opts.Layout().Contains, logger)
			printInfo("Watching %s (Ctrl-C to stop)", cfg.Source.Root)
			return w.Run(ctx, regenerate)
		},
	}

	flags.register(cmd)

	return cmd
}
