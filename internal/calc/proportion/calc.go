package proportion

import (
	"strings"

	"Formulary/internal/formula"
)

func denominator(target, den string, eval func(v formula.Values) float64) func(v formula.Values) (float64, error) {
	return func(v formula.Values) (float64, error) {
		if v[den] == 0 {
			return 0, formula.Domainf(den, "%s cannot be zero when solving for %s", strings.ToUpper(den), strings.ToUpper(target))
		}
		x := eval(v)
		if x == 0 {
			return 0, formula.Domainf(target, "%s would be zero, which is not a valid denominator", strings.ToUpper(target))
		}
		return x, nil
	}
}

func numerator(eval func(v formula.Values) float64) func(v formula.Values) (float64, error) {
	return func(v formula.Values) (float64, error) { return eval(v), nil }
}

// a/b = c/d, solved by cross multiplication.
var Relation = formula.NewRelation("proportion",
	[]formula.Variable{
		{Name: "a", Label: "A", Symbol: "A"},
		{Name: "b", Label: "B", Symbol: "B", Constraint: formula.NonZero},
		{Name: "c", Label: "C", Symbol: "C"},
		{Name: "d", Label: "D", Symbol: "D", Constraint: formula.NonZero},
	},
	formula.Solve(formula.Derivation{
		Target:     "a",
		Describe:   "Cross-multiply A/B = C/D: A × D = B × C",
		Formula:    "A = (B × C) / D",
		Eval:       numerator(func(v formula.Values) float64 { return v["b"] * v["c"] / v["d"] }),
		Substitute: func(q formula.Quote) string { return "(" + q("b") + " × " + q("c") + ") / " + q("d") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "b",
		Describe:   "Cross-multiply A/B = C/D: A × D = B × C",
		Formula:    "B = (A × D) / C",
		Eval:       denominator("b", "c", func(v formula.Values) float64 { return v["a"] * v["d"] / v["c"] }),
		Substitute: func(q formula.Quote) string { return "(" + q("a") + " × " + q("d") + ") / " + q("c") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "c",
		Describe:   "Cross-multiply A/B = C/D: A × D = B × C",
		Formula:    "C = (A × D) / B",
		Eval:       numerator(func(v formula.Values) float64 { return v["a"] * v["d"] / v["b"] }),
		Substitute: func(q formula.Quote) string { return "(" + q("a") + " × " + q("d") + ") / " + q("b") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "d",
		Describe:   "Cross-multiply A/B = C/D: A × D = B × C",
		Formula:    "D = (B × C) / A",
		Eval:       denominator("d", "a", func(v formula.Values) float64 { return v["b"] * v["c"] / v["a"] }),
		Substitute: func(q formula.Quote) string { return "(" + q("b") + " × " + q("c") + ") / " + q("a") },
	}),
)

var Definition = formula.Definition{
	Slug:        "proportion",
	Title:       "Proportion Calculator",
	Category:    "math",
	Description: "Solve A/B = C/D for the one empty value.",
	Color:       "#3399CC",
	Fields:      Relation.Fields(),
	Solve:       Relation.Evaluate,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}
