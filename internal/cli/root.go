// Package cli implements the terrascope command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/app"
	"github.com/kapu/terrascope/internal/config"
	"github.com/kapu/terrascope/internal/render"
	"github.com/kapu/terrascope/internal/util"
)

// globalFlags holds the parsed values of the persistent flags.
var globalFlags struct {
	Format   string
	Language string
	LogLevel string
}

var rootCmd = &cobra.Command{
	Use:   "terrascope",
	Short: "terrascope - country profiles with live weather, rates and news",
	Long: `terrascope builds a country profile with a generative model and shows it
next to live weather, exchange rates and search-grounded news.

Quick start:
  terrascope show Japan              # profile plus live panels
  terrascope compare Japan France    # side-by-side comparison
  terrascope serve                   # HTTP API and websocket feed`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !render.ValidFormat(globalFlags.Format) {
			return fmt.Errorf("unknown format %q (want table, json or text)", globalFlags.Format)
		}
		return nil
	},
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildFunc assembles the application. Tests replace it with a fake.
var buildFunc = buildContainer

func buildContainer(ctx context.Context) (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if globalFlags.Language != "" {
		cfg.Dashboard.AppLanguage = globalFlags.Language
	}

	level := cfg.Logging.Level
	if globalFlags.LogLevel != "" {
		level = globalFlags.LogLevel
	}
	var logger *zap.Logger
	if cfg.Logging.File != "" {
		logger, err = util.NewLogger(level, cfg.Logging.File)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	} else {
		logger = util.NewStderrLogger(level)
	}

	buildCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return app.Build(buildCtx, cfg, logger)
}

// withContainer builds the container, runs fn and releases it.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := buildFunc(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	defer func() { _ = c.Logger.Sync() }()

	return fn(ctx, c, cmd.OutOrStdout())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.Format, "format", render.FormatTable,
		"output format: table|json|text")
	pf.StringVar(&globalFlags.Language, "lang", "",
		"content language (overrides APP_LANGUAGE)")
	pf.StringVar(&globalFlags.LogLevel, "log-level", "",
		"log level: debug|info|warn|error (overrides LOG_LEVEL)")
}
