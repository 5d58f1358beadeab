// Package fraction reduces fractions to lowest terms and rewrites lists of
// fractions over their least common denominator.
package fraction

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"Formulary/internal/calc/gcf"
	"Formulary/internal/calc/lcm"
	"Formulary/internal/formula"
)

const (
	ModeSimplify          = "simplify"
	ModeCommonDenominator = "common-denominator"

	MaxFractions = 10
)

// Fraction is Num/Den with the sign carried by Num.
type Fraction struct {
	Num int64 `json:"numerator"`
	Den int64 `json:"denominator"`
}

// New normalises the sign onto the numerator. den must be non-zero.
func New(num, den int64) Fraction {
	if den < 0 {
		num, den = -num, -den
	}
	return Fraction{Num: num, Den: den}
}

func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.FormatInt(f.Num, 10)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

func (f Fraction) Float() float64 { return float64(f.Num) / float64(f.Den) }

// Reduce divides both parts by their GCD and returns it.
func (f Fraction) Reduce() (Fraction, int64) {
	g := gcf.GCD(f.Num, f.Den)
	if g == 0 {
		return f, 1
	}
	return Fraction{Num: f.Num / g, Den: f.Den / g}, g
}

var Definition = formula.Definition{
	Slug:        "simplify-fraction",
	Title:       "Simplify Fractions Calculator",
	Category:    "math",
	Description: "Reduce a fraction to lowest terms using the GCD, or rewrite several fractions over their least common denominator.",
	Color:       "#3399CC",
	Modes:       []string{ModeSimplify, ModeCommonDenominator},
	Fields: []formula.Field{
		{Name: "numerator", Label: "Numerator"},
		{Name: "denominator", Label: "Denominator"},
		{Name: "fractions", Label: "Fractions", Hint: "common-denominator mode, e.g. 1/2, 3/4, 5/6"},
	},
	ListField: "fractions",
	Solve:     solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

func solve(req formula.Request) (formula.Result, error) {
	switch req.Mode {
	case ModeSimplify:
		num, err := formula.ParseInt("numerator", "Numerator", req.Raw("numerator"), formula.Integer)
		if err != nil {
			return formula.Result{}, err
		}
		den, err := formula.ParseInt("denominator", "Denominator", req.Raw("denominator"), formula.NonZeroInteger)
		if err != nil {
			return formula.Result{}, err
		}
		return Simplify(New(num, den)), nil
	case ModeCommonDenominator:
		fs, err := ParseList("fractions", req.Raw("fractions"))
		if err != nil {
			return formula.Result{}, err
		}
		return CommonDenominator(fs)
	}
	return formula.Result{}, formula.Unsupportedf("mode %q is not supported", req.Mode)
}

// Simplify explains reducing f to lowest terms.
func Simplify(f Fraction) formula.Result {
	r, g := f.Reduce()

	var steps formula.Steps
	steps.Numbered("Find the GCD of %d and %d: %d", abs(f.Num), f.Den, g)
	if g == 1 {
		steps.Numbered("The GCD is 1, so %s is already in lowest terms", f)
	} else {
		steps.Numbered("Divide the numerator and the denominator by %d: %d ÷ %d = %d, %d ÷ %d = %d", g, f.Num, g, r.Num, f.Den, g, r.Den)
	}
	steps.Numbered("Simplified fraction: %s", r)

	out := formula.NewOutput("fraction", "Simplified fraction", r.Float(), "")
	out.Formatted = r.String()
	res := formula.NewResult(&steps,
		out,
		formula.NewOutput("gcd", "Greatest common divisor", float64(g), ""),
		formula.NewOutput("decimal", "Decimal", r.Float(), ""),
	)
	if whole := r.Num / r.Den; whole != 0 && r.Den != 1 {
		rem := abs(r.Num % r.Den)
		res.Notes = fmt.Sprintf("As a mixed number: %d %d/%d.", whole, rem, r.Den)
	}
	res.Details = r
	return res
}

// Rewritten is one fraction expressed over the common denominator.
type Rewritten struct {
	Original   Fraction `json:"original"`
	Multiplier int64    `json:"multiplier"`
	Result     Fraction `json:"result"`
}

// CommonDenominator rewrites fs over the LCM of their denominators.
func CommonDenominator(fs []Fraction) (formula.Result, error) {
	dens := make([]int64, len(fs))
	parts := make([]string, len(fs))
	for i, f := range fs {
		dens[i] = f.Den
		parts[i] = strconv.FormatInt(f.Den, 10)
	}
	lcd, ok := lcm.LCMAll(dens...)
	if !ok {
		return formula.Result{}, formula.Domainf("fractions", "The common denominator is too large to compute exactly")
	}

	var steps formula.Steps
	list := strings.Join(parts, ", ")
	steps.Numbered("Denominators: %s", list)
	steps.Numbered("LCD = LCM(%s) = %d", list, lcd)
	out := make([]Rewritten, len(fs))
	results := make([]string, len(fs))
	for i, f := range fs {
		m := lcd / f.Den
		if abs(f.Num) > lcm.Max/m {
			return formula.Result{}, formula.Domainf("fractions", "%d/%d rewritten over %d is too large to compute exactly", f.Num, f.Den, lcd)
		}
		out[i] = Rewritten{Original: f, Multiplier: m, Result: Fraction{Num: f.Num * m, Den: lcd}}
		results[i] = fmt.Sprintf("%d/%d", out[i].Result.Num, lcd)
		steps.Numbered("%d/%d = (%d × %d)/(%d × %d) = %s", f.Num, f.Den, f.Num, m, f.Den, m, results[i])
	}

	o := formula.NewOutput("lcd", "Least common denominator", float64(lcd), "")
	res := formula.NewResult(&steps, o)
	res.Notes = "Rewritten fractions: " + strings.Join(results, ", ")
	res.Details = out
	return res, nil
}

// ParseList reads fractions such as "1/2, -3/4 5" separated by commas,
// semicolons or whitespace. A bare integer n is n/1.
func ParseList(field, raw string) ([]Fraction, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(parts) < 2 {
		return nil, formula.InvalidRequestf(field, "Please enter at least 2 fractions")
	}
	if len(parts) > MaxFractions {
		return nil, formula.InvalidRequestf(field, "Please enter no more than %d fractions", MaxFractions)
	}
	out := make([]Fraction, 0, len(parts))
	for _, p := range parts {
		ns, ds, hasDen := strings.Cut(p, "/")
		num, err := formula.ParseInt(field, "Numerator", ns, formula.Integer)
		if err != nil {
			return nil, formula.InvalidNumberf(field, "%q is not a valid fraction", p)
		}
		den := int64(1)
		if hasDen {
			if den, err = formula.ParseInt(field, "Denominator", ds, formula.Integer); err != nil {
				return nil, formula.InvalidNumberf(field, "%q is not a valid fraction", p)
			}
			if den == 0 {
				return nil, formula.Domainf(field, "Denominator cannot be zero in %q", p)
			}
		}
		out = append(out, New(num, den))
	}
	return out, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
