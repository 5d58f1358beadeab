package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Formulary/internal/calc"
	"Formulary/internal/calc/report"
)

func newReportCmd(reg *calc.Registry) *cobra.Command {
	var out, title, project, author string
	c := &cobra.Command{
		Use:   "report <calculator> [name=value[@unit]...]",
		Short: "Solve one calculation and write a PDF report",
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
			if out == "" {
				out = d.Slug + "-report.pdf"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			in := report.Input{
				Title:      title,
				Project:    project,
				Author:     author,
				Calculator: d.Title,
				Fields:     d.Fields,
				Request:    req,
				Result:     res,
			}
			if err := report.Render(f, in); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default <calculator>-report.pdf)")
	c.Flags().StringVar(&title, "title", "", "report title")
	c.Flags().StringVar(&project, "project", "", "project name")
	c.Flags().StringVar(&author, "author", "", "author")
	return c
}
