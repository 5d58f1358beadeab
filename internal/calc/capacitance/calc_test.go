package capacitance

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacitanceFromChargeAndVoltage(t *testing.T) {
	res, err := Calculate(formula.Request{
		Values: map[string]string{"charge": "50", "voltage": "5"},
		Units:  map[string]string{"charge": "μC", "voltage": "V", "capacitance": "μF"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Capacitance", res.Label)
	assert.Equal(t, "μF", res.Unit)
	assert.InDelta(t, 10, res.Value, 1e-9)
	assert.Equal(t, "10", res.Formatted)
	assert.Equal(t, "C = Q / V", res.Steps[1])
	assert.Contains(t, res.Steps[len(res.Steps)-1], "= 10 μF")
}

func TestChargeAndVoltage(t *testing.T) {
	res, err := Calculate(formula.Request{
		Values: map[string]string{"capacitance": "10", "voltage": "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Charge", res.Label)
	assert.InDelta(t, 50, res.Value, 1e-9)

	res, err = Calculate(formula.Request{
		Values: map[string]string{"capacitance": "10", "charge": "50"},
		Units:  map[string]string{"voltage": "mV"},
	})
	require.NoError(t, err)
	assert.Equal(t, "mV", res.Unit)
	assert.InDelta(t, 5000, res.Value, 1e-6)
}

func TestValidation(t *testing.T) {
	_, err := Calculate(formula.Request{Values: map[string]string{"charge": "50", "voltage": "0"}})
	assert.ErrorIs(t, err, formula.ErrDomain)
	assert.EqualError(t, err, "Voltage must be a valid non-zero number")

	_, err = Calculate(formula.Request{Values: map[string]string{"capacitance": "-1", "voltage": "2"}})
	assert.ErrorIs(t, err, formula.ErrDomain)

	_, err = Calculate(formula.Request{Values: map[string]string{"charge": "50"}})
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)
}
