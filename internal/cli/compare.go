package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kapu/terrascope/internal/app"
	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/render"
)

var compareCmd = &cobra.Command{
	Use:   "compare <country>...",
	Short: "Compare up to three countries side by side",
	Long: `compare loads each country in turn and adds it to the comparison set.
Countries beyond the third, and repeats of the same country, are reported and
skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container, out io.Writer) error {
			errOut := cmd.ErrOrStderr()
			for _, name := range args {
				if err := c.Coordinator.Search(ctx, name); err != nil {
					fmt.Fprintf(errOut, "skipped %s: %v\n", name, err)
					continue
				}
				switch result := c.Coordinator.AddToComparison(); result {
				case dashboard.AddResultAdded:
				case dashboard.AddResultFull:
					fmt.Fprintf(errOut, "skipped %s: comparison is full\n", name)
				default:
					fmt.Fprintf(errOut, "skipped %s: %s\n", name, result)
				}
			}

			if !c.Coordinator.ToggleCompareMode() {
				return fmt.Errorf("no country could be loaded")
			}
			if err := render.Render(out, c.Coordinator.State(), globalFlags.Format); err != nil {
				return err
			}
			if globalFlags.Format == render.FormatJSON {
				return nil
			}
			return render.Distances(out, c.Coordinator.CapitalDistances(), globalFlags.Format)
		})
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
