package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				c.cfg.Server.Port = port
			}

			svc, err := newServices(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					c.logger.Error("failed to close services", "error", err)
				}
			}()

			app := NewApp(c.cfg, c.logger, svc.appDeps())

			// Graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, c.cfg.GetServerAddr())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")

	return cmd
}
