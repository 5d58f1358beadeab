package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Formulary/internal/calc"
)

func newListCmd(reg *calc.Registry) *cobra.Command {
	var usage bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range reg.All() {
				if usage {
					fmt.Fprintf(tw, "%s\t%s\n", d.Title, calc.Usage(d))
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Slug, d.Category, d.Title)
			}
			return tw.Flush()
		},
	}
	c.Flags().BoolVarP(&usage, "usage", "u", false, "show argument usage for every calculator")
	return c
}
