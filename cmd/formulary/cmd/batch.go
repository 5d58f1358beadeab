package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Formulary/internal/calc"
	"Formulary/internal/calc/batch"
	"Formulary/internal/calc/importer"
)

func newBatchCmd(reg *calc.Registry) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "batch <file.xlsx>",
		Short: "Run every row of a workbook through its calculator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			items, err := importer.Read(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			results, err := batch.Calculate(cmd.Context(), reg, items)
			if err != nil {
				return err
			}

			sum := batch.Summarize(results)
			for _, o := range results {
				if o.OK() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", o.ID, o.Calculator, o.Result.Formatted)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\terror: %s\n", o.ID, o.Calculator, o.Error.Message)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows, %d failed\n", sum.Count, sum.Failed)

			if out == "" {
				return nil
			}
			wb, err := importer.Export(results)
			if err != nil {
				return err
			}
			defer wb.Close()
			return wb.SaveAs(out)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "write the results workbook to this .xlsx file")
	return c
}
