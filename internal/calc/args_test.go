package calc

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		slug string
		args []string
		want formula.Request
	}{
		{
			slug: "capacitance",
			args: []string{"charge=50@μC", "voltage=5", "voltage_unit=mV"},
			want: formula.Request{
				Values: map[string]string{"charge": "50", "voltage": "5"},
				Units:  map[string]string{"charge": "μC", "voltage": "mV"},
			},
		},
		{
			slug: "gcf",
			args: []string{"12", "18", "24"},
			want: formula.Request{
				Values: map[string]string{"numbers": "12 18 24"},
				Units:  map[string]string{},
			},
		},
		{
			slug: "scientific-notation",
			args: []string{"mode=expression", "2e3", "*", "4"},
			want: formula.Request{
				Mode:   "expression",
				Values: map[string]string{"expression": "2e3 * 4"},
				Units:  map[string]string{},
			},
		},
		{
			slug: "geometric-sequence",
			args: []string{"mode=sum", "first=2", "ratio=3", "n=4"},
			want: formula.Request{
				Mode:   "sum",
				Values: map[string]string{"first": "2", "ratio": "3", "n": "4"},
				Units:  map[string]string{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			d, ok := Default.Lookup(tt.slug)
			require.True(t, ok)
			got, err := ParseArgs(d, tt.args)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("request (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	d, _ := Default.Lookup("force")
	_, err := ParseArgs(d, []string{"speed=5"})
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)
	_, err = ParseArgs(d, []string{"5"})
	assert.ErrorIs(t, err, formula.ErrInvalidRequest)
}

func TestParseArgsSolve(t *testing.T) {
	d, _ := Default.Lookup("lcm")
	req, err := ParseArgs(d, []string{"4,", "6"})
	require.NoError(t, err)
	res, err := d.Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 12.0, res.Value)
}
