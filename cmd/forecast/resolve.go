package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newResolveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve NAME [NAME...]",
		Short:   "Resolve location names to DataPoint site ids",
		Example: `  forecast resolve London "Ben Nevis Summit"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					c.logger.Error("failed to close services", "error", err)
				}
			}()

			// Sites that resolve are printed even when others are missing
			sites, resolveErr := svc.locations.ResolveAll(cmd.Context(), args)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tLATITUDE\tLONGITUDE\tREGION\tAREA")
			for _, s := range sites {
				fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%s\t%s\n",
					s.Name, s.ID, s.Latitude, s.Longitude, s.Region, s.UnitaryAuthArea)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			return resolveErr
		},
	}
}
