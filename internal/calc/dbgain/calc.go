// Package dbgain converts between decibel gain and power or voltage ratios.
package dbgain

import (
	"math"

	"Formulary/internal/formula"
)

const (
	ModeDBFromPower   = "db-from-power"
	ModeDBFromVoltage = "db-from-voltage"
	ModePowerFromDB   = "power-from-db"
	ModeVoltageFromDB = "voltage-from-db"
)

var (
	inputPower    = formula.Variable{Name: "input_power", Label: "Input power", Symbol: "P₁", Quantity: formula.Power, DefaultUnit: "W", Constraint: formula.Positive}
	outputPower   = formula.Variable{Name: "output_power", Label: "Output power", Symbol: "P₂", Quantity: formula.Power, DefaultUnit: "W", Constraint: formula.Positive}
	inputVoltage  = formula.Variable{Name: "input_voltage", Label: "Input voltage", Symbol: "V₁", Quantity: formula.Voltage, DefaultUnit: "V", Constraint: formula.Positive}
	outputVoltage = formula.Variable{Name: "output_voltage", Label: "Output voltage", Symbol: "V₂", Quantity: formula.Voltage, DefaultUnit: "V", Constraint: formula.Positive}
	gain          = formula.Variable{Name: "gain", Label: "dB gain", Symbol: "dB", Constraint: formula.Any}
)

// kind is a power quantity (scale 10) or a field quantity (scale 20).
type kind struct {
	scale     float64
	in, out   formula.Variable
	ratioName string
	ratioSym  string
}

var (
	power   = kind{10, inputPower, outputPower, "Power Ratio", "P₂/P₁"}
	voltage = kind{20, inputVoltage, outputVoltage, "Voltage Ratio", "V₂/V₁"}
)

var Definition = formula.Definition{
	Slug:        "db-gain",
	Title:       "dB Gain Calculator",
	Category:    "physics",
	Description: "Decibel gain from power (10·log₁₀) or voltage (20·log₁₀) ratios, and the ratios from a gain.",
	Color:       "#820ECC",
	Modes:       []string{ModeDBFromPower, ModeDBFromVoltage, ModePowerFromDB, ModeVoltageFromDB},
	Fields: []formula.Field{
		inputPower.Field(), outputPower.Field(),
		inputVoltage.Field(), outputVoltage.Field(),
		gain.Field(),
	},
	Solve: solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

// Gain returns scale·log₁₀(out/in).
func Gain(scale, in, out float64) float64 {
	return scale * math.Log10(out/in)
}

// Ratio returns 10^(db/scale).
func Ratio(scale, db float64) float64 {
	return math.Pow(10, db/scale)
}

func fmtv(v float64) string { return formula.FormatValue(v) }

func solve(req formula.Request) (formula.Result, error) {
	switch req.Mode {
	case ModeDBFromPower:
		return fromRatio(req, power)
	case ModeDBFromVoltage:
		return fromRatio(req, voltage)
	case ModePowerFromDB:
		return toRatio(req, power)
	case ModeVoltageFromDB:
		return toRatio(req, voltage)
	}
	return formula.Result{}, formula.Unsupportedf("mode %q is not supported", req.Mode)
}

func fromRatio(req formula.Request, k kind) (formula.Result, error) {
	in, err := k.in.Parse(req)
	if err != nil {
		return formula.Result{}, err
	}
	out, err := k.out.Parse(req)
	if err != nil {
		return formula.Result{}, err
	}
	ratio := out / in
	db := Gain(k.scale, in, out)
	s := formula.FormatNumber(k.scale)

	var steps formula.Steps
	steps.Add("dB = %s × log₁₀(%s)", s, k.ratioSym)
	steps.Add("dB = %s × log₁₀(%s / %s)", s, fmtv(out), fmtv(in))
	steps.Add("dB = %s × log₁₀(%s)", s, fmtv(ratio))
	steps.Add("dB = %s × %s", s, fmtv(math.Log10(ratio)))
	steps.Add("dB = %s dB", fmtv(db))

	res := formula.NewResult(&steps,
		formula.NewOutput("gain", "dB Gain", db, "dB"),
		formula.NewOutput("ratio", k.ratioName+" ("+k.ratioSym+")", ratio, ""),
	)
	res.Notes = note(db)
	return res, nil
}

func toRatio(req formula.Request, k kind) (formula.Result, error) {
	db, err := gain.Parse(req)
	if err != nil {
		return formula.Result{}, err
	}
	ratio := Ratio(k.scale, db)
	if math.IsInf(ratio, 0) || ratio == 0 {
		return formula.Result{}, formula.Domainf("gain", "dB gain is out of range")
	}
	s := formula.FormatNumber(k.scale)

	var steps formula.Steps
	steps.Add("%s = 10^(dB/%s)", k.ratioSym, s)
	steps.Add("%s = 10^(%s / %s)", k.ratioSym, fmtv(db), s)
	steps.Add("%s = 10^%s", k.ratioSym, fmtv(db/k.scale))
	steps.Add("%s = %s", k.ratioSym, fmtv(ratio))

	outputs := []formula.Output{formula.NewOutput("ratio", k.ratioName+" ("+k.ratioSym+")", ratio, "")}
	if req.Known(k.in.Name) {
		in, err := k.in.Parse(req)
		if err != nil {
			return formula.Result{}, err
		}
		out := in * ratio
		base := k.in.Quantity.Base()
		steps.Add("%s = %s × %s = %s %s", k.out.Symbol, fmtv(in), fmtv(ratio), fmtv(out), base)
		outputs = append(outputs, formula.NewOutput(k.out.Name, k.out.Label, out, base))
	}
	res := formula.NewResult(&steps, outputs...)
	res.Notes = note(db)
	return res, nil
}

func note(db float64) string {
	switch {
	case db > 0:
		return "A positive dB value means amplification."
	case db < 0:
		return "A negative dB value means attenuation."
	}
	return "0 dB means the output equals the input."
}
