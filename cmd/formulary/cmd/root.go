// Package cmd is the formulary command line: list calculators, solve one,
// run an xlsx batch or render a PDF report.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"Formulary/internal/calc"
	"Formulary/internal/formula"
)

func NewRootCmd(reg *calc.Registry) *cobra.Command {
	root := &cobra.Command{
		Use:   "formulary",
		Short: "Formulary - step-by-step calculators",
		Long: `Formulary solves everyday math and physics formulas and shows every step.

Arguments use name=value pairs, with an optional unit after @:
  formulary solve electrical-power voltage=5@mV current=2
  formulary solve gcf 12 18 24
  formulary solve percentage mode=percentage_change value1=50 value2=75`,
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(reg), newSolveCmd(reg), newBatchCmd(reg), newReportCmd(reg))
	return root
}

func Execute() error {
	return NewRootCmd(calc.Default).Execute()
}

// request resolves a slug and parses its arguments.
func request(reg *calc.Registry, slug string, args []string) (formula.Definition, formula.Request, error) {
	d, ok := reg.Lookup(slug)
	if !ok {
		return d, formula.Request{}, fmt.Errorf("unknown calculator %q, see 'formulary list'", slug)
	}
	req, err := calc.ParseArgs(d, args)
	return d, req, err
}
