package main

import (
	"fmt"
	"text/tabwriter"

	"datapoint-forecast/internal/mapping"

	"github.com/spf13/cobra"
)

func newCodesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List DataPoint weather type codes and their categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings, err := mapping.Load(c.cfg.Pipeline.MappingsFile)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "# mappings version %s\n", mappings.Version)
			fmt.Fprintln(w, "CODE\tDESCRIPTION\tGROUP")
			for _, info := range mappings.Codes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Code, info.Description, info.Group)
			}
			return w.Flush()
		},
	}
}
