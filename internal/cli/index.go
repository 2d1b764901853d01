package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refdoc/pkg/io"
	"github.com/matzehuels/refdoc/pkg/pipeline"
)

// indexCommand creates the index command.
func (c *CLI) indexCommand() *cobra.Command {
	var (
		flags  projectFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Print the symbol index",
		Long: `Index parses every source and prints the symbol index in precedence
order: the identifier matched in text, the link label and the link target.`,
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
			idx, err := runner.Index(ctx, pipeline.Options{
				Config:  cfg,
				Refresh: flags.refresh,
				Logger:  loggerFromContext(ctx),
			})
			if err != nil {
				return err
			}

			if asJSON {
				return io.WriteIndexJSON(idx, os.Stdout)
			}
			printInfo("%s", StyleTitle.Render("Symbol index"))
			for _, e := range idx.Entries() {
				printEntry(e.ID, e.Name, e.URL)
			}
			printDetail("%d entries", idx.Len())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the index as JSON")

	return cmd
}
