package photon

import "Formulary/internal/formula"

var hc = formula.Planck * formula.SpeedOfLight

var constants = "(" + formula.FormatExp(formula.Planck, 4) + " J·s × " + formula.FormatExp(formula.SpeedOfLight, 4) + " m/s)"

var Relation = formula.NewRelation("wavelength-energy",
	[]formula.Variable{
		{Name: "wavelength", Label: "Wavelength", Symbol: "λ", Quantity: formula.Wavelength, DefaultUnit: "nm", Constraint: formula.Positive},
		{Name: "energy", Label: "Energy", Symbol: "E", Quantity: formula.Energy, DefaultUnit: "eV", Constraint: formula.Positive},
	},
	formula.Solve(formula.Derivation{
		Target:     "energy",
		Describe:   "Energy (E) = (Planck's constant × Speed of light) / Wavelength",
		Formula:    "E = hc / λ",
		Eval:       func(v formula.Values) (float64, error) { return hc / v["wavelength"], nil },
		Substitute: func(q formula.Quote) string { return constants + " / " + q("wavelength") },
	}),
	formula.Solve(formula.Derivation{
		Target:     "wavelength",
		Describe:   "Wavelength (λ) = (Planck's constant × Speed of light) / Energy",
		Formula:    "λ = hc / E",
		Eval:       func(v formula.Values) (float64, error) { return hc / v["energy"], nil },
		Substitute: func(q formula.Quote) string { return constants + " / " + q("energy") },
	}),
)

var Definition = formula.Definition{
	Slug:        "wavelength-energy",
	Title:       "Wavelength to Energy Calculator",
	Category:    "physics",
	Description: "Convert between photon wavelength and energy using E = hc/λ.",
	Color:       "#820ECC",
	Fields:      Relation.Fields(),
	Solve:       Relation.Evaluate,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}
