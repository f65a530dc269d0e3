package main

import (
	"log/slog"

	"datapoint-forecast/internal/config"

	"github.com/spf13/cobra"
)

// cli carries the loaded configuration and logger into subcommands
type cli struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "forecast",
		Short:         "Met Office DataPoint forecast ETL",
		Long:          "Fetches DataPoint 3-hourly forecasts, relabels and regroups them, and writes raw and processed CSV snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(c),
		newResolveCmd(c),
		newCodesCmd(c),
		newRunsCmd(c),
		newServeCmd(c),
	)

	return rootCmd
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	c.cfg = cfg
	c.logger = cfg.NewLogger()
	slog.SetDefault(c.logger) // Set as default logger for the application
	return nil
}
