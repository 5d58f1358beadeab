// Package diamond solves the diamond problem: two numbers from their sum and product.
package diamond

import (
	"math"

	"Formulary/internal/formula"
)

var Definition = formula.Definition{
	Slug:        "diamond",
	Title:       "Diamond Problem Calculator",
	Category:    "math",
	Description: "Find x and y with x + y = S and x·y = P by solving x² − Sx + P = 0.",
	Color:       "#3399CC",
	Fields: []formula.Field{
		{Name: "sum", Label: "Sum", Symbol: "S"},
		{Name: "product", Label: "Product", Symbol: "P"},
	},
	Solve: solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

// Solve returns the roots of x² − Sx + P = 0, smaller first. The root with
// the larger magnitude comes from the quadratic formula and the other from
// P divided by it, so x·y stays P when |S| dwarfs P.
func Solve(sum, product float64) (x, y float64, err error) {
	disc := sum*sum - 4*product
	if math.IsInf(disc, 0) || math.IsNaN(disc) {
		return 0, 0, formula.Domainf("sum", "Sum and product are too large to solve")
	}
	if disc < 0 {
		return 0, 0, formula.NoRealSolutionf("No real numbers have sum %s and product %s", n(sum), n(product))
	}
	root := math.Sqrt(disc)
	if disc == 0 {
		return sum / 2, sum / 2, nil
	}
	big := (sum + math.Copysign(root, sum)) / 2
	small := product / big
	return min(big, small), max(big, small), nil
}

func n(v float64) string { return formula.FormatNumber(v) }

func solve(req formula.Request) (formula.Result, error) {
	s, err := formula.ParseFloat("sum", "Sum", req.Raw("sum"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	p, err := formula.ParseFloat("product", "Product", req.Raw("product"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}

	disc := s*s - 4*p
	var steps formula.Steps
	steps.Numbered("x and y are the roots of x² − Sx + P = 0: x² − %s·x + %s = 0", n(s), n(p))
	steps.Numbered("Discriminant: S² − 4P = %s² − 4 × %s = %s", n(s), n(p), n(disc))

	x, y, err := Solve(s, p)
	if err != nil {
		return formula.Result{}, err
	}
	steps.Numbered("x = (S − √(S² − 4P)) / 2 = (%s − %s) / 2 = %s", n(s), formula.FormatValue(math.Sqrt(disc)), formula.FormatValue(x))
	steps.Numbered("y = (S + √(S² − 4P)) / 2 = (%s + %s) / 2 = %s", n(s), formula.FormatValue(math.Sqrt(disc)), formula.FormatValue(y))
	steps.Numbered("Check: %s + %s = %s and %s × %s = %s", formula.FormatValue(x), formula.FormatValue(y), formula.FormatValue(x+y),
		formula.FormatValue(x), formula.FormatValue(y), formula.FormatValue(x*y))

	res := formula.NewResult(&steps,
		formula.NewOutput("x", "First number", x, ""),
		formula.NewOutput("y", "Second number", y, ""),
	)
	if disc == 0 {
		res.Notes = "The discriminant is zero, so both numbers are equal."
	}
	return res, nil
}
