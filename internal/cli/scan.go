package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/contactsheet/pkg/io"
	"github.com/matzehuels/contactsheet/pkg/pipeline"
)

// scanCommand creates the scan command, which lists the renders a generate
// run would use without compositing anything.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "scan [sequence-dir]",
		Short: "List the latest render of every shot in a sequence",
		Long: `List the latest render of every shot in a sequence.

The table shows the label each render gets on the labeled sheet. Lighting
fallbacks are highlighted. With --json the list is written as a shot list
that 'generate --from' accepts, so a selection can be reviewed or trimmed
before compositing.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir, _, err := sequenceDir(args, cfg)
			if err != nil || dir == "" {
				return err
			}

			prog := newProgress(logger)
			shots, err := c.newRunner().Scan(ctx, pipeline.Options{SequenceDir: dir, Config: cfg, Logger: logger})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Resolved %d shots", len(shots)))

			list := pkgio.ShotList{Sequence: filepath.Base(filepath.Clean(dir)), Shots: shots}
			switch {
			case output != "":
				if err := pkgio.ExportJSON(list, output); err != nil {
					return err
				}
				printSuccess("Wrote %d shots to %s", len(shots), output)
				printNextStep("Build the sheets", fmt.Sprintf("%s generate %s --from %s", appName, dir, output))
			case asJSON:
				return pkgio.WriteJSON(list, cmd.OutOrStdout())
			case len(shots) == 0:
				printWarning("No renders found under %s", dir)
			default:
				writeShotTable(cmd.OutOrStdout(), shots)
				printNextStep("Build the sheets", fmt.Sprintf("%s generate %s", appName, dir))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the shot list as JSON to stdout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the shot list as JSON to a file")

	return cmd
}
