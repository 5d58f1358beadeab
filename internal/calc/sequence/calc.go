// Package sequence solves arithmetic and geometric progressions.
package sequence

import (
	"math"
	"strconv"

	"Formulary/internal/formula"
)

const (
	ModeNthTerm = "nth_term"
	ModeSum     = "sum"
	ModeBoth    = "both"

	// MaxListed is how many leading terms a result lists.
	MaxListed = 10
)

var modes = []string{ModeBoth, ModeNthTerm, ModeSum}

// Details is attached to every sequence result.
type Details struct {
	NthTerm   float64   `json:"nth_term"`
	Sum       float64   `json:"sum"`
	Terms     []float64 `json:"terms"`
	Converges *bool     `json:"converges,omitempty"`
}

var Geometric = formula.Definition{
	Slug:        "geometric-sequence",
	Title:       "Geometric Sequence Calculator",
	Category:    "math",
	Description: "nth term aₙ = a₁·r^(n−1) and sum Sₙ = a₁(1−rⁿ)/(1−r) of a geometric sequence.",
	Color:       "#3399CC",
	Modes:       modes,
	Fields: []formula.Field{
		{Name: "first", Label: "First term", Symbol: "a₁"},
		{Name: "ratio", Label: "Common ratio", Symbol: "r"},
		{Name: "n", Label: "Term number", Symbol: "n"},
	},
	Solve: solveGeometric,
}

var Arithmetic = formula.Definition{
	Slug:        "arithmetic-sequence",
	Title:       "Arithmetic Sequence Calculator",
	Category:    "math",
	Description: "nth term aₙ = a₁ + (n−1)d and sum Sₙ = n(a₁+aₙ)/2 of an arithmetic sequence.",
	Color:       "#3399CC",
	Modes:       modes,
	Fields: []formula.Field{
		{Name: "first", Label: "First term", Symbol: "a₁"},
		{Name: "difference", Label: "Common difference", Symbol: "d"},
		{Name: "n", Label: "Term number", Symbol: "n"},
	},
	Solve: solveArithmetic,
}

// GeometricTerm returns a₁·r^(n−1).
func GeometricTerm(a1, r float64, n int64) float64 {
	return a1 * math.Pow(r, float64(n-1))
}

// GeometricSum returns the sum of the first n terms.
func GeometricSum(a1, r float64, n int64) float64 {
	if r == 1 {
		return a1 * float64(n)
	}
	return a1 * (1 - math.Pow(r, float64(n))) / (1 - r)
}

func ArithmeticTerm(a1, d float64, n int64) float64 {
	return a1 + float64(n-1)*d
}

func ArithmeticSum(a1, d float64, n int64) float64 {
	return float64(n) * (a1 + ArithmeticTerm(a1, d, n)) / 2
}

func num(v float64) string { return formula.FormatTrimmed(v, 6) }

func ordinal(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n%100 >= 11 && n%100 <= 13 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	}
	return s + "th"
}

func parseN(req formula.Request) (int64, error) {
	return formula.ParseInt("n", "Term number", req.Raw("n"), formula.PositiveInteger)
}

func solveGeometric(req formula.Request) (formula.Result, error) {
	a1, err := formula.ParseFloat("first", "First term", req.Raw("first"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	r, err := formula.ParseFloat("ratio", "Common ratio", req.Raw("ratio"), formula.NonZero)
	if err != nil {
		return formula.Result{}, err
	}
	n, err := parseN(req)
	if err != nil {
		return formula.Result{}, err
	}

	term, sum := GeometricTerm(a1, r, n), GeometricSum(a1, r, n)
	if !finite(term) || !finite(sum) {
		return formula.Result{}, formula.Domainf("n", "The sequence grows too large to compute for n = %d", n)
	}

	var steps formula.Steps
	steps.Add("Given: First term (a₁) = %s, Common ratio (r) = %s, Term number (n) = %d", num(a1), num(r), n)
	if req.Mode != ModeSum {
		steps.Numbered("Calculate the %s term using aₙ = a₁ × r^(n-1)", ordinal(n))
		steps.Numbered("a_%d = %s × %s^(%d-1) = %s × %s^%d", n, num(a1), num(r), n, num(a1), num(r), n-1)
		steps.Numbered("a_%d = %s × %s = %s", n, num(a1), num(math.Pow(r, float64(n-1))), num(term))
	}
	if req.Mode != ModeNthTerm {
		if r == 1 {
			steps.Numbered("Calculate sum using Sₙ = a₁ × n (since r = 1)")
			steps.Numbered("S_%d = %s × %d = %s", n, num(a1), n, num(sum))
		} else {
			rn := math.Pow(r, float64(n))
			steps.Numbered("Calculate sum using Sₙ = a₁ × (1 - rⁿ) / (1 - r)")
			steps.Numbered("S_%d = %s × (1 - %s^%d) / (1 - %s)", n, num(a1), num(r), n, num(r))
			steps.Numbered("S_%d = %s × (1 - %s) / (1 - %s)", n, num(a1), num(rn), num(r))
			steps.Numbered("S_%d = %s × %s / %s = %s", n, num(a1), num(1-rn), num(1-r), num(sum))
		}
	}

	converges := math.Abs(r) < 1
	d := Details{NthTerm: term, Sum: sum, Converges: &converges}
	for i := int64(1); i <= n && i <= MaxListed; i++ {
		d.Terms = append(d.Terms, GeometricTerm(a1, r, i))
	}
	res := result(req.Mode, &steps, n, term, sum)
	if converges {
		res.Notes = "|r| < 1, so the infinite series converges to " + num(a1/(1-r)) + "."
	} else {
		res.Notes = "|r| ≥ 1, so the infinite series diverges."
	}
	res.Details = d
	return res, nil
}

func solveArithmetic(req formula.Request) (formula.Result, error) {
	a1, err := formula.ParseFloat("first", "First term", req.Raw("first"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	diff, err := formula.ParseFloat("difference", "Common difference", req.Raw("difference"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	n, err := parseN(req)
	if err != nil {
		return formula.Result{}, err
	}

	term, sum := ArithmeticTerm(a1, diff, n), ArithmeticSum(a1, diff, n)
	if !finite(term) || !finite(sum) {
		return formula.Result{}, formula.Domainf("n", "The sequence grows too large to compute for n = %d", n)
	}

	var steps formula.Steps
	steps.Add("Given: First term (a₁) = %s, Common difference (d) = %s, Term number (n) = %d", num(a1), num(diff), n)
	if req.Mode != ModeSum {
		steps.Numbered("Calculate the %s term using aₙ = a₁ + (n-1) × d", ordinal(n))
		steps.Numbered("a_%d = %s + (%d-1) × %s = %s + %d × %s", n, num(a1), n, num(diff), num(a1), n-1, num(diff))
		steps.Numbered("a_%d = %s + %s = %s", n, num(a1), num(float64(n-1)*diff), num(term))
	}
	if req.Mode != ModeNthTerm {
		steps.Numbered("Calculate sum using Sₙ = n/2 × (2a₁ + (n-1)d)")
		steps.Numbered("S_%d = %d/2 × (2 × %s + (%d-1) × %s)", n, n, num(a1), n, num(diff))
		steps.Numbered("S_%d = %d/2 × (%s + %s)", n, n, num(2*a1), num(float64(n-1)*diff))
		steps.Numbered("S_%d = %d/2 × %s = %s", n, n, num(2*a1+float64(n-1)*diff), num(sum))
	}

	d := Details{NthTerm: term, Sum: sum}
	for i := int64(1); i <= n && i <= MaxListed; i++ {
		d.Terms = append(d.Terms, ArithmeticTerm(a1, diff, i))
	}
	res := result(req.Mode, &steps, n, term, sum)
	res.Details = d
	return res, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func result(mode string, steps *formula.Steps, n int64, term, sum float64) formula.Result {
	nth := formula.NewOutput("nth_term", "The "+ordinal(n)+" term", term, "")
	total := formula.NewOutput("sum", "Sum of the first "+strconv.FormatInt(n, 10)+" terms", sum, "")
	switch mode {
	case ModeNthTerm:
		return formula.NewResult(steps, nth)
	case ModeSum:
		return formula.NewResult(steps, total)
	}
	return formula.NewResult(steps, nth, total)
}
