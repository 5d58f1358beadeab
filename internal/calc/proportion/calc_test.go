package proportion

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportion(t *testing.T) {
	// 3/4 = 6/8
	tests := []struct {
		missing string
		want    float64
	}{
		{"a", 3}, {"b", 4}, {"c", 6}, {"d", 8},
	}
	full := map[string]string{"a": "3", "b": "4", "c": "6", "d": "8"}
	for _, tt := range tests {
		t.Run(tt.missing, func(t *testing.T) {
			values := map[string]string{}
			for k, v := range full {
				if k != tt.missing {
					values[k] = v
				}
			}
			res, err := Calculate(formula.Request{Values: values})
			require.NoError(t, err)
			assert.Equal(t, tt.missing, res.Outputs[0].Name)
			assert.InDelta(t, tt.want, res.Value, 1e-12)
		})
	}
}

func TestEmptyProportionIsAnError(t *testing.T) {
	_, err := Calculate(formula.Request{})
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)
}

func TestDegenerateDenominators(t *testing.T) {
	_, err := Calculate(formula.Request{Values: map[string]string{"a": "0", "c": "5", "d": "2"}})
	assert.ErrorIs(t, err, formula.ErrDomain, "zero numerator makes B zero")

	_, err = Calculate(formula.Request{Values: map[string]string{"a": "1", "c": "0", "d": "2"}})
	assert.ErrorIs(t, err, formula.ErrDomain)

	_, err = Calculate(formula.Request{Values: map[string]string{"a": "1", "b": "0", "c": "2"}})
	assert.ErrorIs(t, err, formula.ErrDomain)
}
