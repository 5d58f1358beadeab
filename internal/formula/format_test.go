package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{10.000000000000002, "10"},
		{2.5, "2.5"},
		{0.0001, "0.0001"},
		{0.00005, "5.0000e-5"},
		{1234567, "1.2346e+6"},
		{999999.5, "999999.5"},
		{-0.25, "-0.25"},
		{1.23456789, "1.2346"},
		{math.NaN(), "Invalid"},
		{math.Inf(1), "Invalid"},
		{math.Inf(-1), "Invalid"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "%v", tt.in)
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "6.626e-34", FormatExp(Planck, 3))
	assert.Equal(t, "0.500000", FormatFixed(0.5, 6))
	assert.Equal(t, "0.00", FormatFixed(-0.001, 2))
	assert.Equal(t, "0.333333", FormatTrimmed(1.0/3, 6))
	assert.Equal(t, "2", FormatTrimmed(2.0000001, 6))
	assert.Equal(t, "12.5", FormatNumber(12.5))
	assert.Equal(t, "1500000", FormatNumber(1.5e6))
	assert.Equal(t, "0.000045", FormatNumber(4.5e-5))
	assert.Equal(t, "3.97e-19", FormatNumber(3.97e-19))
	assert.Equal(t, "1e+21", FormatNumber(1e21))
}
