package power

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryPairSolvesTheOtherTwo(t *testing.T) {
	// 12 V across 4 Ω: 3 A, 36 W
	full := map[string]float64{"power": 36, "voltage": 12, "current": 3, "resistance": 4}
	names := []string{"power", "voltage", "current", "resistance"}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			t.Run(a+"+"+b, func(t *testing.T) {
				res, err := Calculate(formula.Request{Values: map[string]string{
					a: formula.FormatNumber(full[a]),
					b: formula.FormatNumber(full[b]),
				}})
				require.NoError(t, err)
				require.Len(t, res.Outputs, 2)
				for _, o := range res.Outputs {
					assert.InDelta(t, full[o.Name], o.Value, 1e-9, o.Name)
				}
			})
		}
	}
}

func TestPowerNeedsExactlyTwo(t *testing.T) {
	_, err := Calculate(formula.Request{Values: map[string]string{"voltage": "12", "current": "3", "power": "36"}})
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)

	_, err = Calculate(formula.Request{Values: map[string]string{"voltage": "-12", "current": "3"}})
	assert.ErrorIs(t, err, formula.ErrDomain)
}

func TestPowerInKilowatts(t *testing.T) {
	res, err := Calculate(formula.Request{
		Values: map[string]string{"voltage": "230", "current": "10"},
		Units:  map[string]string{"power": "kW"},
	})
	require.NoError(t, err)
	assert.Equal(t, "kW", res.Unit)
	assert.InDelta(t, 2.3, res.Value, 1e-12)
}
