package lcm

import (
	"math"

	"Formulary/internal/calc/gcf"
	"Formulary/internal/formula"
)

// Max keeps every LCM exactly representable as a float64 result.
const Max = 1 << 53

// LCM returns a*b/GCF(a,b) and false if that exceeds Max.
func LCM(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	q := a / gcf.GCD(a, b)
	if q > math.MaxInt64/b || q*b > Max {
		return 0, false
	}
	return q * b, true
}

// LCMAll folds LCM over nums from the left.
func LCMAll(nums ...int64) (int64, bool) {
	if len(nums) == 0 {
		return 0, true
	}
	l := nums[0]
	for _, n := range nums[1:] {
		var ok bool
		if l, ok = LCM(l, n); !ok {
			return 0, false
		}
	}
	return l, true
}

var Definition = formula.Definition{
	Slug:        "lcm",
	Title:       "LCM Calculator",
	Category:    "math",
	Description: "Least common multiple of up to 10 positive integers via LCM(a,b) = a×b / GCF(a,b).",
	Color:       "#820ECC",
	Fields: []formula.Field{
		{Name: "numbers", Label: "Numbers", Hint: "comma or space separated, e.g. 4, 6, 8"},
	},
	ListField: "numbers",
	Solve:     solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

func solve(req formula.Request) (formula.Result, error) {
	nums, err := gcf.ParseNumbers(req)
	if err != nil {
		return formula.Result{}, err
	}
	var steps formula.Steps
	l := nums[0]
	if len(nums) == 1 {
		steps.Numbered("The LCM of a single number is the number itself: %d", l)
	}
	for _, n := range nums[1:] {
		g := gcf.GCD(l, n)
		next, ok := LCM(l, n)
		if !ok {
			return formula.Result{}, formula.Domainf("numbers", "The least common multiple is too large to compute exactly")
		}
		steps.Numbered("GCF(%d, %d) = %d", l, n, g)
		steps.Numbered("LCM(%d, %d) = (%d × %d) / %d = %d", l, n, l, n, g, next)
		l = next
	}
	res := formula.NewResult(&steps, formula.NewOutput("lcm", "Least Common Multiple", float64(l), ""))
	res.Notes = "The least common multiple is the smallest positive integer divisible by every number."
	return res, nil
}
