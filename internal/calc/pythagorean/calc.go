package pythagorean

import (
	"math"
	"strings"

	"Formulary/internal/formula"
)

// Triangle is a solved right triangle; angles are in degrees, A opposite a.
type Triangle struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	C         float64 `json:"c"`
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
	AngleA    float64 `json:"angle_a"`
	AngleB    float64 `json:"angle_b"`
	Isosceles bool    `json:"isosceles"`
}

var sides = []formula.Field{
	{Name: "a", Label: "Side a", Symbol: "a"},
	{Name: "b", Label: "Side b", Symbol: "b"},
	{Name: "c", Label: "Hypotenuse c", Symbol: "c"},
}

var Definition = formula.Definition{
	Slug:        "pythagorean",
	Title:       "Pythagorean Theorem Calculator",
	Category:    "math",
	Description: "Find the missing side of a right triangle from a² + b² = c², with area, perimeter and angles.",
	Color:       "#3399CC",
	Fields:      sides,
	Solve:       solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

const tolerance = 1e-9

func n(v float64) string  { return formula.FormatNumber(v) }
func f6(v float64) string { return formula.FormatFixed(v, 6) }

func solve(req formula.Request) (formula.Result, error) {
	var missing []string
	vals := map[string]float64{}
	for _, s := range sides {
		if !req.Known(s.Name) {
			missing = append(missing, s.Name)
			continue
		}
		v, err := formula.ParseFloat(s.Name, s.Label, req.Raw(s.Name), formula.Positive)
		if err != nil {
			return formula.Result{}, err
		}
		vals[s.Name] = v
	}
	if len(missing) != 1 {
		return formula.Result{}, formula.InvalidRequestf("", "Enter exactly two of: a, b, c, and leave the rest empty")
	}

	a, b, c := vals["a"], vals["b"], vals["c"]
	var steps formula.Steps
	target := missing[0]
	switch target {
	case "a", "b":
		leg, legName := b, "b"
		if target == "b" {
			leg, legName = a, "a"
		}
		if c <= leg {
			return formula.Result{}, formula.Domainf("c", "Invalid triangle: the hypotenuse must be longer than side %s", legName)
		}
		sq := c*c - leg*leg
		x := math.Sqrt(sq)
		steps.Add("Given: Side %s = %s, Side c (hypotenuse) = %s", legName, n(leg), n(c))
		steps.Numbered("Use Pythagorean theorem: a² + b² = c²")
		steps.Numbered("Solve for %s: %s² = c² - %s²", target, target, legName)
		steps.Numbered("%s² = %s² - %s² = %s - %s = %s", target, n(c), n(leg), n(c*c), n(leg*leg), n(sq))
		steps.Numbered("%s = √%s = %s", target, n(sq), f6(x))
		if target == "a" {
			a = x
		} else {
			b = x
		}
	case "c":
		sq := a*a + b*b
		c = math.Sqrt(sq)
		steps.Add("Given: Side a = %s, Side b = %s", n(a), n(b))
		steps.Numbered("Use Pythagorean theorem: a² + b² = c²")
		steps.Numbered("c² = a² + b²")
		steps.Numbered("c² = %s² + %s² = %s + %s = %s", n(a), n(b), n(a*a), n(b*b), n(sq))
		steps.Numbered("c = √%s = %s", n(sq), f6(c))
	}

	t := Solve(a, b, c)
	if math.IsInf(t.C, 0) || math.IsInf(t.Area, 0) {
		return formula.Result{}, formula.Domainf(target, "The sides are too large to compute")
	}
	labels := map[string]string{"a": "Side a", "b": "Side b", "c": "Hypotenuse c"}
	res := formula.NewResult(&steps,
		formula.NewOutput(target, labels[target], map[string]float64{"a": t.A, "b": t.B, "c": t.C}[target], ""),
		formula.NewOutput("area", "Area", t.Area, "square units"),
		formula.NewOutput("perimeter", "Perimeter", t.Perimeter, "units"),
		formula.NewOutput("angle_a", "Angle A", t.AngleA, "°"),
		formula.NewOutput("angle_b", "Angle B", t.AngleB, "°"),
	)
	var notes []string
	if t.Isosceles {
		notes = append(notes, "This is an isosceles right triangle (45-45-90 triangle) with two equal legs of length "+f6(t.A)+".")
	}
	if isTriple(t) {
		notes = append(notes, "The sides form a Pythagorean triple.")
	}
	res.Notes = strings.Join(notes, " ")
	res.Details = t
	return res, nil
}

// Solve derives the properties of the right triangle with legs a, b and hypotenuse c.
func Solve(a, b, c float64) Triangle {
	return Triangle{
		A:         a,
		B:         b,
		C:         c,
		Area:      a * b / 2,
		Perimeter: a + b + c,
		AngleA:    math.Asin(a/c) * 180 / math.Pi,
		AngleB:    math.Asin(b/c) * 180 / math.Pi,
		Isosceles: math.Abs(a-b) < tolerance*math.Max(a, b),
	}
}

func isTriple(t Triangle) bool {
	for _, v := range []float64{t.A, t.B, t.C} {
		if v != math.Trunc(v) || v > 1<<26 {
			return false
		}
	}
	return t.A*t.A+t.B*t.B == t.C*t.C
}
