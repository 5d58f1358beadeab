package power

import (
	"math"

	"Formulary/internal/formula"
)

func d(target, describe, f string, eval func(v formula.Values) float64, sub func(q formula.Quote) string) formula.Derivation {
	return formula.Derivation{
		Target:     target,
		Describe:   describe,
		Formula:    f,
		Eval:       func(v formula.Values) (float64, error) { return eval(v), nil },
		Substitute: sub,
	}
}

var Relation = formula.NewRelation("electrical-power",
	[]formula.Variable{
		{Name: "power", Label: "Power", Symbol: "P", Quantity: formula.Power, DefaultUnit: "W", Constraint: formula.Positive},
		{Name: "voltage", Label: "Voltage", Symbol: "V", Quantity: formula.Voltage, DefaultUnit: "V", Constraint: formula.Positive},
		{Name: "current", Label: "Current", Symbol: "I", Quantity: formula.Current, DefaultUnit: "A", Constraint: formula.Positive},
		{Name: "resistance", Label: "Resistance", Symbol: "R", Quantity: formula.Resistance, DefaultUnit: "Ω", Constraint: formula.Positive},
	},
	formula.Case{Known: []string{"voltage", "current"}, Outputs: []formula.Derivation{
		d("power", "Power = Voltage × Current", "P = V × I",
			func(v formula.Values) float64 { return v["voltage"] * v["current"] },
			func(q formula.Quote) string { return q("voltage") + " × " + q("current") }),
		d("resistance", "Resistance = Voltage ÷ Current", "R = V / I",
			func(v formula.Values) float64 { return v["voltage"] / v["current"] },
			func(q formula.Quote) string { return q("voltage") + " ÷ " + q("current") }),
	}},
	formula.Case{Known: []string{"voltage", "resistance"}, Outputs: []formula.Derivation{
		d("power", "Power = Voltage² ÷ Resistance", "P = V² / R",
			func(v formula.Values) float64 { return v["voltage"] * v["voltage"] / v["resistance"] },
			func(q formula.Quote) string { return "(" + q("voltage") + ")² ÷ " + q("resistance") }),
		d("current", "Current = Voltage ÷ Resistance", "I = V / R",
			func(v formula.Values) float64 { return v["voltage"] / v["resistance"] },
			func(q formula.Quote) string { return q("voltage") + " ÷ " + q("resistance") }),
	}},
	formula.Case{Known: []string{"current", "resistance"}, Outputs: []formula.Derivation{
		d("power", "Power = Current² × Resistance", "P = I² × R",
			func(v formula.Values) float64 { return v["current"] * v["current"] * v["resistance"] },
			func(q formula.Quote) string { return "(" + q("current") + ")² × " + q("resistance") }),
		d("voltage", "Voltage = Current × Resistance", "V = I × R",
			func(v formula.Values) float64 { return v["current"] * v["resistance"] },
			func(q formula.Quote) string { return q("current") + " × " + q("resistance") }),
	}},
	formula.Case{Known: []string{"power", "current"}, Outputs: []formula.Derivation{
		d("voltage", "Voltage = Power ÷ Current", "V = P / I",
			func(v formula.Values) float64 { return v["power"] / v["current"] },
			func(q formula.Quote) string { return q("power") + " ÷ " + q("current") }),
		d("resistance", "Resistance = Power ÷ Current²", "R = P / I²",
			func(v formula.Values) float64 { return v["power"] / (v["current"] * v["current"]) },
			func(q formula.Quote) string { return q("power") + " ÷ (" + q("current") + ")²" }),
	}},
	formula.Case{Known: []string{"power", "resistance"}, Outputs: []formula.Derivation{
		d("voltage", "Voltage = √(Power × Resistance)", "V = √(P × R)",
			func(v formula.Values) float64 { return math.Sqrt(v["power"] * v["resistance"]) },
			func(q formula.Quote) string { return "√(" + q("power") + " × " + q("resistance") + ")" }),
		d("current", "Current = √(Power ÷ Resistance)", "I = √(P / R)",
			func(v formula.Values) float64 { return math.Sqrt(v["power"] / v["resistance"]) },
			func(q formula.Quote) string { return "√(" + q("power") + " ÷ " + q("resistance") + ")" }),
	}},
	formula.Case{Known: []string{"power", "voltage"}, Outputs: []formula.Derivation{
		d("current", "Current = Power ÷ Voltage", "I = P / V",
			func(v formula.Values) float64 { return v["power"] / v["voltage"] },
			func(q formula.Quote) string { return q("power") + " ÷ " + q("voltage") }),
		d("resistance", "Resistance = Voltage² ÷ Power", "R = V² / P",
			func(v formula.Values) float64 { return v["voltage"] * v["voltage"] / v["power"] },
			func(q formula.Quote) string { return "(" + q("voltage") + ")² ÷ " + q("power") }),
	}},
)

var Definition = formula.Definition{
	Slug:        "electrical-power",
	Title:       "Electrical Power Calculator",
	Category:    "physics",
	Description: "Enter any two of power, voltage, current and resistance.",
	Color:       "#820ECC",
	Fields:      Relation.Fields(),
	Solve:       Relation.Evaluate,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}
