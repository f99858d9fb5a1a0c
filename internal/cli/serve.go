package cli

import (
	"context"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/app"
)

var serveFlags struct {
	Port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard HTTP API and websocket feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container, _ io.Writer) error {
			if serveFlags.Port > 0 {
				c.Config.HTTP.Port = serveFlags.Port
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := c.NewServer()
			serveErr := srv.Start(ctx)
			c.Logger.Info("Shutting down gracefully...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				c.Logger.Error("Shutdown failed", zap.Error(err))
			}
			return serveErr
		})
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.Port, "port", 0, "listen port (overrides HTTP_PORT)")
	rootCmd.AddCommand(serveCmd)
}
