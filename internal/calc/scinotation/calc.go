// Package scinotation converts numbers to scientific notation and evaluates
// arithmetic written in it.
package scinotation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"

	"Formulary/internal/formula"
)

const (
	ModeConvert    = "convert"
	ModeArithmetic = "arithmetic"
	ModeExpression = "expression"
)

// Notation is a number written as Coefficient × 10^Exponent with 1 ≤ |Coefficient| < 10.
type Notation struct {
	Coefficient float64 `json:"coefficient"`
	Exponent    int     `json:"exponent"`
}

func Of(v float64) Notation {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Notation{Coefficient: v}
	}
	exp := int(math.Floor(math.Log10(math.Abs(v))))
	coef := v / math.Pow(10, float64(exp))
	// log10 can land one short or over near powers of ten
	switch a := math.Abs(coef); {
	case a >= 10:
		coef /= 10
		exp++
	case a < 1:
		coef *= 10
		exp--
	}
	return Notation{Coefficient: coef, Exponent: exp}
}

func (n Notation) String() string {
	if n.Coefficient == 0 {
		return "0"
	}
	return fmt.Sprintf("%s × 10^%d", formula.FormatTrimmed(n.Coefficient, 10), n.Exponent)
}

func (n Notation) Value() float64 {
	return n.Coefficient * math.Pow(10, float64(n.Exponent))
}

var Definition = formula.Definition{
	Slug:        "scientific-notation",
	Title:       "Scientific Notation Calculator",
	Category:    "math",
	Description: "Convert numbers to scientific notation and add, subtract, multiply, divide or evaluate expressions written in it.",
	Color:       "#820ECC",
	Modes:       []string{ModeConvert, ModeArithmetic, ModeExpression},
	Fields: []formula.Field{
		{Name: "number", Label: "Number", Hint: "e.g. 1500000 or 0.000045"},
		{Name: "number1", Label: "First number", Hint: "e.g. 2.5e6"},
		{Name: "operation", Label: "Operation", Hint: "add, subtract, multiply or divide"},
		{Name: "number2", Label: "Second number"},
		{Name: "expression", Label: "Expression", Hint: "e.g. (3×10^8) ÷ 2.5e-3"},
	},
	ListField: "expression",
	Solve:     solve,
}

func Calculate(req formula.Request) (formula.Result, error) {
	return Definition.Calculate(req)
}

func solve(req formula.Request) (formula.Result, error) {
	switch req.Mode {
	case ModeConvert:
		return convert(req)
	case ModeArithmetic:
		return arithmetic(req)
	case ModeExpression:
		return expression(req)
	}
	return formula.Result{}, formula.Unsupportedf("mode %q is not supported", req.Mode)
}

func output(name, label string, v float64) formula.Output {
	o := formula.NewOutput(name, label, v, "")
	o.Formatted = Of(v).String()
	return o
}

func convert(req formula.Request) (formula.Result, error) {
	v, err := formula.ParseFloat("number", "Number", req.Raw("number"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	n := Of(v)
	var (
		steps formula.Steps
		res   formula.Result
	)
	if v == 0 {
		steps.Add("Zero in scientific notation is simply 0")
		res = formula.NewResult(&steps, output("notation", "Scientific notation", v))
		res.Notes = "Zero is represented as 0 in scientific notation."
	} else {
		coef := formula.FormatTrimmed(n.Coefficient, 10)
		steps.Add("Original number: %s", formula.FormatNumber(v))
		steps.Add("Find the exponent by determining where to place the decimal point: 10^%d", n.Exponent)
		steps.Add("Calculate coefficient: %s ÷ 10^%d = %s", formula.FormatNumber(math.Abs(v)), n.Exponent, formula.FormatTrimmed(math.Abs(n.Coefficient), 10))
		steps.Add("Scientific notation: %s", n)
		res = formula.NewResult(&steps,
			output("notation", "Scientific notation", v),
			formula.NewOutput("coefficient", "Coefficient", n.Coefficient, ""),
			formula.NewOutput("exponent", "Exponent", float64(n.Exponent), ""),
		)
		res.Notes = fmt.Sprintf("The number %s in scientific notation is %s. This means the coefficient %s multiplied by 10 raised to the power %d.",
			formula.FormatNumber(v), n, coef, n.Exponent)
	}
	res.Details = n
	return res, nil
}

var operations = map[string]struct {
	name, symbol string
	apply        func(a, b float64) float64
}{
	"add":      {"Add", "+", func(a, b float64) float64 { return a + b }},
	"subtract": {"Subtract", "-", func(a, b float64) float64 { return a - b }},
	"multiply": {"Multiply", "×", func(a, b float64) float64 { return a * b }},
	"divide":   {"Divide", "÷", func(a, b float64) float64 { return a / b }},
}

var opAliases = map[string]string{
	"+": "add", "-": "subtract", "−": "subtract",
	"*": "multiply", "×": "multiply", "x": "multiply",
	"/": "divide", "÷": "divide",
}

func arithmetic(req formula.Request) (formula.Result, error) {
	a, err := formula.ParseFloat("number1", "First number", req.Raw("number1"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	b, err := formula.ParseFloat("number2", "Second number", req.Raw("number2"), formula.Any)
	if err != nil {
		return formula.Result{}, err
	}
	name := strings.ToLower(req.Raw("operation"))
	if name == "" {
		name = "add"
	}
	if alias, ok := opAliases[name]; ok {
		name = alias
	}
	op, ok := operations[name]
	if !ok {
		return formula.Result{}, formula.InvalidRequestf("operation", "Unknown operation %q, use add, subtract, multiply or divide", req.Raw("operation"))
	}
	if name == "divide" && b == 0 {
		return formula.Result{}, formula.Domainf("number2", "Cannot divide by zero")
	}
	r := op.apply(a, b)
	if math.IsInf(r, 0) {
		return formula.Result{}, formula.Domainf("", "The result is too large to represent")
	}

	var steps formula.Steps
	steps.Add("Number 1: %s", Of(a))
	steps.Add("Number 2: %s", Of(b))
	steps.Add("Operation: %s", op.name)
	steps.Add("Calculation: %s %s %s = %s", formula.FormatNumber(a), op.symbol, formula.FormatNumber(b), formula.FormatNumber(r))
	steps.Add("Result in scientific notation: %s", Of(r))

	res := formula.NewResult(&steps, output("result", "Result", r))
	res.Notes = fmt.Sprintf("When performing %s with numbers in scientific notation: %s %s %s = %s. The result is %s.",
		name, Of(a), op.symbol, Of(b), Of(r), formula.FormatNumber(r))
	res.Details = Of(r)
	return res, nil
}

var (
	// 2.5e-3, 4E8, .5e2
	eLiteral = regexp.MustCompile(`(\d+\.?\d*|\.\d+)[eE]([+-]?\d+)`)
	symbols  = strings.NewReplacer("×", "*", "·", "*", "÷", "/", "−", "-", "^", "**")
)

// Normalize rewrites the notations people type into govaluate syntax:
// ×, ÷ and ^ become *, / and **, and e-notation literals become products.
func Normalize(expr string) string {
	expr = symbols.Replace(expr)
	return eLiteral.ReplaceAllString(expr, "($1*10**($2))")
}

// Evaluate computes a numeric expression without variables.
func Evaluate(expr string) (float64, error) {
	e, err := govaluate.NewEvaluableExpression(Normalize(expr))
	if err != nil {
		return 0, formula.InvalidNumberf("expression", "Could not parse the expression: %v", err)
	}
	if vars := e.Vars(); len(vars) > 0 {
		return 0, formula.InvalidNumberf("expression", "Unknown name %q in the expression", vars[0])
	}
	out, err := e.Evaluate(nil)
	if err != nil {
		return 0, formula.InvalidNumberf("expression", "Could not evaluate the expression: %v", err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, formula.InvalidNumberf("expression", "The expression does not produce a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, formula.Domainf("expression", "The expression has no finite value")
	}
	return v, nil
}

func expression(req formula.Request) (formula.Result, error) {
	raw := req.Raw("expression")
	if raw == "" {
		return formula.Result{}, formula.InvalidRequestf("expression", "Please enter an expression")
	}
	v, err := Evaluate(raw)
	if err != nil {
		return formula.Result{}, err
	}
	var steps formula.Steps
	steps.Add("Expression: %s", raw)
	if norm := Normalize(raw); norm != raw {
		steps.Add("Rewritten: %s", norm)
	}
	steps.Add("Value: %s", formula.FormatNumber(v))
	steps.Add("Result in scientific notation: %s", Of(v))
	res := formula.NewResult(&steps, output("result", "Result", v))
	res.Details = Of(v)
	return res, nil
}
