package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCmd(c *cli) *cobra.Command {
	var (
		o              runOverrides
		strict         bool
		skipUnresolved bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch forecasts and write the raw and processed datasets",
		Long: `Resolve the configured locations, fetch their 3-hourly forecasts and write
the raw and processed CSV snapshots. The first failing stage stops the run.`,
		Example: `  forecast run --location London --location Manchester
  forecast run --id 352409 --strict --categories detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strict {
				o.mode = "strict"
			}
			if cmd.Flags().Changed("skip-unresolved") {
				o.skipUnresolved = &skipUnresolved
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

			opts, err := pipelineOptions(c.cfg, svc.mappings, o)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := svc.pipeline.Run(ctx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s complete\n", result.RunID)
			fmt.Fprintf(out, "  Locations: %s\n", strings.Join(result.LocationIDs, ", "))
			if len(result.Unresolved) > 0 {
				fmt.Fprintf(out, "  Skipped:   %s\n", strings.Join(result.Unresolved, ", "))
			}
			fmt.Fprintf(out, "  Rows:      %d\n", result.Rows)
			fmt.Fprintf(out, "  Raw:       %s\n", result.RawPath)
			fmt.Fprintf(out, "  Processed: %s\n", result.ProcessedPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&o.names, "location", "l", nil, "Location name to resolve (repeatable)")
	cmd.Flags().StringSliceVar(&o.ids, "id", nil, "DataPoint site id to fetch directly (repeatable)")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "Directory for the CSV snapshots")
	cmd.Flags().StringVar(&o.categories, "categories", "", "Weather type category set (grouped, detailed)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on weather type codes missing from the category set")
	cmd.Flags().BoolVar(&skipUnresolved, "skip-unresolved", false, "Continue with the locations that resolve")

	return cmd
}
