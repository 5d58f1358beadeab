package percentage

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calc(mode, v1, v2 string) (formula.Result, error) {
	return Calculate(formula.Request{Mode: mode, Values: map[string]string{"value1": v1, "value2": v2}})
}

func TestModes(t *testing.T) {
	tests := []struct {
		mode   string
		v1, v2 string
		want   float64
		label  string
	}{
		{"", "25", "200", 12.5, "25 is 12.50% of 200"},
		{ModeChange, "80", "100", 25, "Percentage change from 80 to 100 is 25.00%"},
		{ModeChange, "100", "80", -20, "Percentage change from 100 to 80 is -20.00%"},
		{ModeIncrease, "50", "75", 50, "Percentage increase from 50 to 75 is 50.00%"},
		{ModeDecrease, "200", "150", 25, "Percentage decrease from 200 to 150 is 25.00%"},
		{ModeFind, "15", "80", 12, "15% of 80 is 12.000000"},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			res, err := calc(tt.mode, tt.v1, tt.v2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Value, 1e-9)
			assert.Equal(t, tt.label, res.Label)
			assert.NotEmpty(t, res.Notes)
		})
	}
}

func TestSteps(t *testing.T) {
	res, err := calc(ModeOf, "1", "8")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Step 1: Divide the part by the whole.",
		"Part ÷ Whole = 1 ÷ 8 = 0.125000",
		"Step 2: Multiply by 100 to get percentage.",
		"0.125000 × 100 = 12.50%",
	}, res.Steps)
}

func TestZeroBase(t *testing.T) {
	for _, mode := range Definition.Modes {
		_, err := calc(mode, "0", "0")
		assert.ErrorIs(t, err, formula.ErrDomain, mode)
	}
	_, err := calc(ModeIncrease, "0", "5")
	require.Error(t, err)
	assert.Equal(t, "Cannot calculate percentage increase from zero", err.(*formula.Error).Message)
}

func TestInvalidInput(t *testing.T) {
	_, err := calc(ModeOf, "abc", "5")
	assert.ErrorIs(t, err, formula.ErrInvalidNumber)
	_, err = calc(ModeOf, "", "5")
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)
}
