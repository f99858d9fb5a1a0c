package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/kapu/terrascope/internal/app"
	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/render"
)

var showFlags struct {
	NoPanels bool
}

var showCmd = &cobra.Command{
	Use:   "show <country>",
	Short: "Show a country profile with weather, rates and news",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container, out io.Writer) error {
			if err := c.Coordinator.Search(ctx, args[0]); err != nil {
				_ = render.Render(out, c.Coordinator.State(), globalFlags.Format)
				return err
			}
			if !showFlags.NoPanels {
				c.Coordinator.RefreshPanels(ctx)
			}
			return render.Render(out, c.Coordinator.State(), globalFlags.Format)
		})
	},
}

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Load the country a shared dashboard link points to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container, out io.Writer) error {
			if err := c.Location.Navigate(args[0]); err != nil {
				return err
			}
			if err := c.Coordinator.Open(ctx); err != nil {
				_ = render.Render(out, c.Coordinator.State(), globalFlags.Format)
				return err
			}
			if c.Coordinator.State().Status == domain.StatusSuccess && !showFlags.NoPanels {
				c.Coordinator.RefreshPanels(ctx)
			}
			return render.Render(out, c.Coordinator.State(), globalFlags.Format)
		})
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate <country> <language>",
	Short: "Show a country's description and fun facts in another language",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container, out io.Writer) error {
			if err := c.Coordinator.Search(ctx, args[0]); err != nil {
				return err
			}
			err := c.Coordinator.Translate(ctx, args[1])
			if rerr := render.Render(out, c.Coordinator.State(), globalFlags.Format); rerr != nil {
				return rerr
			}
			return err
		})
	},
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.NoPanels, "no-panels", false, "skip weather, rates and news")
	openCmd.Flags().BoolVar(&showFlags.NoPanels, "no-panels", false, "skip weather, rates and news")
	rootCmd.AddCommand(showCmd, openCmd, translateCmd)
}
