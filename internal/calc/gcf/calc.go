package gcf

import (
	"strconv"
	"strings"

	"Formulary/internal/formula"
)

const (
	MaxNumbers = 10
	MaxValue   = 1_000_000_000_000
)

// Division is one round of the Euclidean algorithm: A = Quotient×B + Remainder.
type Division struct {
	A, B, Quotient, Remainder int64
}

// Euclid runs the Euclidean algorithm on a and b, replacing (a, b) with
// (b, a mod b) until b is zero, and returns every division performed.
func Euclid(a, b int64) (int64, []Division) {
	a, b = abs(a), abs(b)
	var divs []Division
	for b != 0 {
		r := a % b
		divs = append(divs, Division{A: a, B: b, Quotient: a / b, Remainder: r})
		a, b = b, r
	}
	return a, divs
}

func GCD(a, b int64) int64 {
	g, _ := Euclid(a, b)
	return g
}

// GCDAll folds GCD over nums from the left. GCDAll() is 0.
func GCDAll(nums ...int64) int64 {
	var g int64
	for _, n := range nums {
		g = GCD(g, n)
	}
	return g
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Factors returns every divisor of n in ascending order.
func Factors(n int64) []int64 {
	n = abs(n)
	var low, high []int64
	for i := int64(1); i*i <= n; i++ {
		if n%i == 0 {
			low = append(low, i)
			if i != n/i {
				high = append(high, n/i)
			}
		}
	}
	for i := len(high) - 1; i >= 0; i-- {
		low = append(low, high[i])
	}
	return low
}

// PrimeFactors returns the prime factorisation of n with multiplicity.
func PrimeFactors(n int64) []int64 {
	n = abs(n)
	var out []int64
	for d := int64(2); d*d <= n; d++ {
		for n%d == 0 {
			out = append(out, d)
			n /= d
		}
	}
	if n > 1 {
		out = append(out, n)
	}
	return out
}

type Details struct {
	Numbers      []int64           `json:"numbers"`
	Factors      map[int64][]int64 `json:"factors"`
	PrimeFactors map[int64][]int64 `json:"prime_factors"`
	Coprime      bool              `json:"coprime"`
}

var Definition = formula.Definition{
	Slug:        "gcf",
	Title:       "GCF Calculator",
	Category:    "math",
	Description: "Greatest common factor of up to 10 positive integers with the Euclidean algorithm.",
	Color:       "#820ECC",
	Fields: []formula.Field{
		{Name: "numbers", Label: "Numbers", Hint: "comma or space separated, e.g. 12, 18, 24"},
	},
	ListField: "numbers",
	Solve:     solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

func solve(req formula.Request) (formula.Result, error) {
	nums, err := ParseNumbers(req)
	if err != nil {
		return formula.Result{}, err
	}
	return Compute(nums), nil
}

// ParseNumbers reads the "numbers" field shared by the GCF and LCM calculators.
func ParseNumbers(req formula.Request) ([]int64, error) {
	nums, err := formula.ParseIntList("numbers", "Numbers", req.Raw("numbers"), 1, MaxNumbers)
	if err != nil {
		return nil, err
	}
	for _, n := range nums {
		if n > MaxValue {
			return nil, formula.Domainf("numbers", "Numbers must not exceed %d", int64(MaxValue))
		}
	}
	return nums, nil
}

func Compute(nums []int64) formula.Result {
	g := GCDAll(nums...)

	var steps formula.Steps
	switch len(nums) {
	case 1:
		steps.Numbered("The GCF of a single number is the number itself: %d", g)
	case 2:
		steps.Numbered("Use the Euclidean algorithm to find GCF of %d and %d", nums[0], nums[1])
		_, divs := Euclid(nums[0], nums[1])
		for _, d := range divs {
			steps.Numbered("%d ÷ %d = %d remainder %d", d.A, d.B, d.Quotient, d.Remainder)
		}
		steps.Numbered("Since the remainder is 0, the GCF is %d", g)
	default:
		steps.Numbered("Find GCF of first two numbers: %d and %d", nums[0], nums[1])
		cur := GCD(nums[0], nums[1])
		steps.Numbered("GCF(%d, %d) = %d", nums[0], nums[1], cur)
		for _, n := range nums[2:] {
			prev := cur
			cur = GCD(cur, n)
			steps.Numbered("GCF(%d, %d) = %d", prev, n, cur)
		}
	}

	details := Details{
		Numbers:      append([]int64(nil), nums...),
		Factors:      make(map[int64][]int64, len(nums)),
		PrimeFactors: make(map[int64][]int64, len(nums)),
		Coprime:      g == 1,
	}
	for _, n := range nums {
		details.Factors[n] = Factors(n)
		details.PrimeFactors[n] = PrimeFactors(n)
	}

	list := join(nums)
	res := formula.NewResult(&steps, formula.NewOutput("gcf", "Greatest Common Factor", float64(g), ""))
	if g == 1 && len(nums) > 1 {
		res.Notes = "The numbers " + list + " are relatively prime (coprime), meaning their greatest common factor is 1."
	} else {
		res.Notes = "The greatest common factor of " + list + " is " + strconv.FormatInt(g, 10) + ". This means " + strconv.FormatInt(g, 10) + " is the largest number that divides all of these numbers evenly."
	}
	res.Details = details
	return res
}

func join(nums []int64) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.FormatInt(n, 10)
	}
	return strings.Join(parts, ", ")
}
