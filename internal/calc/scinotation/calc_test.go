package scinotation

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	tests := []struct {
		in   float64
		coef float64
		exp  int
		str  string
	}{
		{1500000, 1.5, 6, "1.5 × 10^6"},
		{0.000045, 4.5, -5, "4.5 × 10^-5"},
		{-320, -3.2, 2, "-3.2 × 10^2"},
		{1000, 1, 3, "1 × 10^3"},
		{7, 7, 0, "7 × 10^0"},
		{0, 0, 0, "0"},
	}
	for _, tt := range tests {
		n := Of(tt.in)
		assert.InDelta(t, tt.coef, n.Coefficient, 1e-12, "%v", tt.in)
		assert.Equal(t, tt.exp, n.Exponent, "%v", tt.in)
		assert.Equal(t, tt.str, n.String())
		assert.InDelta(t, tt.in, n.Value(), 1e-9*(1+tt.in*tt.in))
	}
}

func TestConvert(t *testing.T) {
	res, err := Calculate(formula.Request{Values: map[string]string{"number": "1500000"}})
	require.NoError(t, err)
	assert.Equal(t, "1.5 × 10^6", res.Formatted)
	assert.Equal(t, []string{
		"Original number: 1500000",
		"Find the exponent by determining where to place the decimal point: 10^6",
		"Calculate coefficient: 1500000 ÷ 10^6 = 1.5",
		"Scientific notation: 1.5 × 10^6",
	}, res.Steps)
	exp, ok := res.Output("exponent")
	require.True(t, ok)
	assert.Equal(t, 6.0, exp.Value)

	res, err = Calculate(formula.Request{Values: map[string]string{"number": "0"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zero in scientific notation is simply 0"}, res.Steps)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   string
		want float64
	}{
		{"add", 2.5e6 + 4e5},
		{"subtract", 2.5e6 - 4e5},
		{"×", 1e12},
		{"/", 6.25},
		{"", 2.9e6},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res, err := Calculate(formula.Request{Mode: ModeArithmetic, Values: map[string]string{
				"number1": "2.5e6", "number2": "4e5", "operation": tt.op,
			}})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Value, 1e-6)
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := Calculate(formula.Request{Mode: ModeArithmetic, Values: map[string]string{"number1": "1", "number2": "0", "operation": "divide"}})
	assert.ErrorIs(t, err, formula.ErrDomain)
	_, err = Calculate(formula.Request{Mode: ModeArithmetic, Values: map[string]string{"number1": "1", "number2": "2", "operation": "modulo"}})
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "(3*10**8) / (2.5*10**(-3))", Normalize("(3×10^8) ÷ 2.5e-3"))
	assert.Equal(t, "(.5*10**(2)) + 1", Normalize(".5e2 + 1"))
}

func TestExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"(3×10^8) ÷ 2.5e-3", 1.2e11},
		{"6.02e23 * 2", 1.204e24},
		{"2^10 - 24", 1000},
		{"(1.5e3 + 500) / 4", 500},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := Calculate(formula.Request{Mode: ModeExpression, Values: map[string]string{"expression": tt.expr}})
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, res.Value, 1e-12)
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := map[string]error{
		"":       formula.ErrInvalidRequest,
		"1 / 0":  formula.ErrDomain,
		"2 * x":  formula.ErrInvalidNumber,
		"(1 + 2": formula.ErrInvalidNumber,
		"1 > 2":  formula.ErrInvalidNumber,
	}
	for expr, want := range tests {
		_, err := Calculate(formula.Request{Mode: ModeExpression, Values: map[string]string{"expression": expr}})
		assert.ErrorIs(t, err, want, expr)
	}
}
