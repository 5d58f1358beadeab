package force

import "Formulary/internal/formula"

var Relation = formula.NewRelation("force",
	[]formula.Variable{
		{Name: "force", Label: "Force", Symbol: "F", Quantity: formula.Force, DefaultUnit: "N", Constraint: formula.Positive},
		{Name: "mass", Label: "Mass", Symbol: "m", Quantity: formula.Mass, DefaultUnit: "kg", Constraint: formula.Positive},
		{Name: "acceleration", Label: "Acceleration", Symbol: "a", Quantity: formula.Acceleration, DefaultUnit: "m/s²", Constraint: formula.Positive},
	},
	formula.Solve(formula.Derivation{
		Target:     "force",
		Describe:   "Newton's second law: Force = Mass × Acceleration",
		Formula:    "F = m × a",
		Eval:       func(v formula.Values) (float64, error) { return v["mass"] * v["acceleration"], nil },
		Substitute: func(q formula.Quote) string { return q("mass") + " × " + q("acceleration") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "mass",
		Describe:   "Mass = Force / Acceleration",
		Formula:    "m = F / a",
		Eval:       func(v formula.Values) (float64, error) { return v["force"] / v["acceleration"], nil },
		Substitute: func(q formula.Quote) string { return q("force") + " / " + q("acceleration") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "acceleration",
		Describe:   "Acceleration = Force / Mass",
		Formula:    "a = F / m",
		Eval:       func(v formula.Values) (float64, error) { return v["force"] / v["mass"], nil },
		Substitute: func(q formula.Quote) string { return q("force") + " / " + q("mass") },
	}),
)

var Definition = formula.Definition{
	Slug:        "force",
	Title:       "Force Calculator",
	Category:    "physics",
	Description: "Solve F = ma for force, mass or acceleration.",
	Color:       "#820ECC",
	Fields:      Relation.Fields(),
	Solve:       Relation.Evaluate,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}
