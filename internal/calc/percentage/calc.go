package percentage

import "Formulary/internal/formula"

const (
	ModeOf       = "percentage_of"
	ModeChange   = "percentage_change"
	ModeIncrease = "percentage_increase"
	ModeDecrease = "percentage_decrease"
	ModeFind     = "find_percentage"
)

var Definition = formula.Definition{
	Slug:        "percentage",
	Title:       "Percentage Calculator",
	Category:    "math",
	Description: "What percent one value is of another, percentage change, increase, decrease and percent of a number.",
	Color:       "#3399CC",
	Modes:       []string{ModeOf, ModeChange, ModeIncrease, ModeDecrease, ModeFind},
	Fields: []formula.Field{
		{Name: "value1", Label: "First value", Hint: "part, old value or percentage depending on mode"},
		{Name: "value2", Label: "Second value", Hint: "whole, new value or number depending on mode"},
	},
	Solve: solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

func n(v float64) string  { return formula.FormatNumber(v) }
func f6(v float64) string { return formula.FormatFixed(v, 6) }
func f2(v float64) string { return formula.FormatFixed(v, 2) }

func solve(req formula.Request) (formula.Result, error) {
	v1, err := formula.ParseFloat("value1", "First value", req.Raw("value1"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	v2, err := formula.ParseFloat("value2", "Second value", req.Raw("value2"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}

	var (
		steps formula.Steps
		out   formula.Output
	)
	switch req.Mode {
	case ModeOf:
		if v2 == 0 {
			return formula.Result{}, formula.Domainf("value2", "Cannot calculate percentage of zero")
		}
		r := v1 / v2 * 100
		steps.Numbered("Divide the part by the whole.")
		steps.Add("Part ÷ Whole = %s ÷ %s = %s", n(v1), n(v2), f6(v1/v2))
		steps.Numbered("Multiply by 100 to get percentage.")
		steps.Add("%s × 100 = %s%%", f6(v1/v2), f2(r))
		out = formula.NewOutput("percentage", n(v1)+" is "+f2(r)+"% of "+n(v2), r, "%")
	case ModeChange, ModeIncrease, ModeDecrease:
		if v1 == 0 {
			return formula.Result{}, formula.Domainf("value1", "Cannot calculate %s from zero", phrase(req.Mode))
		}
		word, diff := "Difference", v2-v1
		switch req.Mode {
		case ModeChange:
			steps.Numbered("Find the difference between new and old values.")
			steps.Add("Difference = %s - %s = %s", n(v2), n(v1), f6(diff))
		case ModeIncrease:
			word = "Increase"
			steps.Numbered("Find the increase amount.")
			steps.Add("Increase = %s - %s = %s", n(v2), n(v1), f6(diff))
		case ModeDecrease:
			word, diff = "Decrease", v1-v2
			steps.Numbered("Find the decrease amount.")
			steps.Add("Decrease = %s - %s = %s", n(v1), n(v2), f6(diff))
		}
		ratio := diff / v1
		r := ratio * 100
		steps.Numbered("Divide by the original value.")
		steps.Add("%s ÷ Original = %s ÷ %s = %s", word, f6(diff), n(v1), f6(ratio))
		steps.Numbered("Multiply by 100 to get percentage.")
		steps.Add("%s × 100 = %s%%", f6(ratio), f2(r))
		label := capitalize(phrase(req.Mode)) + " from " + n(v1) + " to " + n(v2) + " is " + f2(r) + "%"
		out = formula.NewOutput("percentage", label, r, "%")
	case ModeFind:
		if v2 == 0 {
			return formula.Result{}, formula.Domainf("value2", "Cannot find percentage of zero")
		}
		r := v1 / 100 * v2
		steps.Numbered("Convert percentage to decimal.")
		steps.Add("%s%% = %s ÷ 100 = %s", n(v1), n(v1), f6(v1/100))
		steps.Numbered("Multiply by the number.")
		steps.Add("%s × %s = %s", f6(v1/100), n(v2), f6(r))
		out = formula.NewOutput("result", n(v1)+"% of "+n(v2)+" is "+f6(r), r, "")
	default:
		return formula.Result{}, formula.Unsupportedf("mode %q is not supported", req.Mode)
	}
	res := formula.NewResult(&steps, out)
	res.Notes = notes[req.Mode]
	return res, nil
}

func phrase(mode string) string {
	switch mode {
	case ModeIncrease:
		return "percentage increase"
	case ModeDecrease:
		return "percentage decrease"
	}
	return "percentage change"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

var notes = map[string]string{
	ModeOf:       "Percentage = (Part ÷ Whole) × 100.",
	ModeChange:   "Percentage change is calculated as ((New Value - Old Value) / Old Value) × 100.",
	ModeIncrease: "Percentage increase is calculated as ((New Value - Original Value) / Original Value) × 100.",
	ModeDecrease: "Percentage decrease is calculated as ((Original Value - New Value) / Original Value) × 100.",
	ModeFind:     "Percent of a number = (Percentage ÷ 100) × Number.",
}
