package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"datapoint-forecast/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

var errLedgerDisabled = errors.New("run ledger is disabled (set storage.enabled)")

func newRunsCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [RUN_ID]",
		Short: "Show recorded pipeline runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.Storage.Enabled {
				return errLedgerDisabled
			}

			storage, err := sqlite.NewRunStorage(c.cfg.Storage.Path, c.logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			var runs []*sqlite.RunRecord
			if len(args) == 1 {
				run, err := storage.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				runs = append(runs, run)
			} else {
				runs, err = storage.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tROWS\tLOCATIONS\tERROR")
			for _, r := range runs {
				var failure string
				if r.Status == sqlite.RunStatusFailed {
					failure = fmt.Sprintf("%s/%s: %s", r.FailedStage, r.ErrorKind, r.ErrorMessage)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					r.ID,
					r.StartedAt.Local().Format(time.DateTime),
					r.Status,
					r.Rows,
					strings.Join(r.LocationIDs, ","),
					failure,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")

	return cmd
}
