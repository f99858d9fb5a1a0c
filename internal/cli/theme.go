package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kapu/terrascope/internal/app"
	"github.com/kapu/terrascope/internal/domain"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the saved UI theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container, out io.Writer) error {
			if len(args) == 1 {
				var err error
				if args[0] == "toggle" {
					_, err = c.Coordinator.ToggleTheme(ctx)
				} else {
					err = c.Coordinator.SetTheme(ctx, domain.Theme(args[0]))
				}
				if err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(out, c.Coordinator.State().Theme)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
