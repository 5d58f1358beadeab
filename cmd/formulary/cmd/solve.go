package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"Formulary/internal/calc"
)

func newSolveCmd(reg *calc.Registry) *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "solve <calculator> [name=value[@unit]...]",
		Short: "Solve one calculation and print the steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, req, err := request(reg, args[0], args[1:])
			if err != nil {
				return err
			}
			res, err := reg.Solve(d.Slug, req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), calc.Text(d, res))
			return err
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return c
}
