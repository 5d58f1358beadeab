package capacitance

import "Formulary/internal/formula"

var Relation = formula.NewRelation("capacitance",
	[]formula.Variable{
		{Name: "capacitance", Label: "Capacitance", Symbol: "C", Quantity: formula.Capacitance, DefaultUnit: "μF", Constraint: formula.Positive},
		{Name: "charge", Label: "Charge", Symbol: "Q", Quantity: formula.Charge, DefaultUnit: "μC", Constraint: formula.NonZero},
		{Name: "voltage", Label: "Voltage", Symbol: "V", Quantity: formula.Voltage, DefaultUnit: "V", Constraint: formula.NonZero},
	},
	formula.Solve(formula.Derivation{
		Target:     "capacitance",
		Describe:   "Capacitance (C) = Charge (Q) / Voltage (V)",
		Formula:    "C = Q / V",
		Eval:       func(v formula.Values) (float64, error) { return v["charge"] / v["voltage"], nil },
		Substitute: func(q formula.Quote) string { return q("charge") + " / " + q("voltage") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "charge",
		Describe:   "Charge (Q) = Capacitance (C) × Voltage (V)",
		Formula:    "Q = C × V",
		Eval:       func(v formula.Values) (float64, error) { return v["capacitance"] * v["voltage"], nil },
		Substitute: func(q formula.Quote) string { return q("capacitance") + " × " + q("voltage") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "voltage",
		Describe:   "Voltage (V) = Charge (Q) / Capacitance (C)",
		Formula:    "V = Q / C",
		Eval:       func(v formula.Values) (float64, error) { return v["charge"] / v["capacitance"], nil },
		Substitute: func(q formula.Quote) string { return q("charge") + " / " + q("capacitance") },
	}),
)

var Definition = formula.Definition{
	Slug:        "capacitance",
	Title:       "Capacitance Calculator",
	Category:    "physics",
	Description: "Solve C = Q/V for capacitance, charge or voltage.",
	Color:       "#820ECC",
	Fields:      Relation.Fields(),
	Solve:       Relation.Evaluate,
}

// Calculate leaves the one empty field to be computed.
func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}
