package sequence

import (
	"testing"

	"Formulary/internal/formula"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func req(mode string, kv ...string) formula.Request {
	r := formula.Request{Mode: mode, Values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Values[kv[i]] = kv[i+1]
	}
	return r
}

func TestGeometric(t *testing.T) {
	res, err := Geometric.Calculate(req("", "first", "2", "ratio", "3", "n", "4"))
	require.NoError(t, err)

	nth, ok := res.Output("nth_term")
	require.True(t, ok)
	assert.Equal(t, 54.0, nth.Value)
	sum, ok := res.Output("sum")
	require.True(t, ok)
	assert.Equal(t, 80.0, sum.Value)

	d := res.Details.(Details)
	if diff := cmp.Diff([]float64{2, 6, 18, 54}, d.Terms); diff != "" {
		t.Errorf("terms (-want +got):\n%s", diff)
	}
	assert.False(t, *d.Converges)
	assert.Equal(t, "Given: First term (a₁) = 2, Common ratio (r) = 3, Term number (n) = 4", res.Steps[0])
	assert.Equal(t, "Step 7: S_4 = 2 × -80 / -2 = 80", res.Steps[len(res.Steps)-1])
}

func TestGeometricRatioOne(t *testing.T) {
	res, err := Geometric.Calculate(req(ModeSum, "first", "5", "ratio", "1", "n", "7"))
	require.NoError(t, err)
	assert.Equal(t, 35.0, res.Value)
	assert.Len(t, res.Outputs, 1)
	assert.Equal(t, "Step 2: S_7 = 5 × 7 = 35", res.Steps[len(res.Steps)-1])
}

func TestGeometricConverges(t *testing.T) {
	res, err := Geometric.Calculate(req(ModeNthTerm, "first", "8", "ratio", "0.5", "n", "20"))
	require.NoError(t, err)
	d := res.Details.(Details)
	assert.True(t, *d.Converges)
	assert.Len(t, d.Terms, MaxListed)
	assert.Contains(t, res.Notes, "converges to 16")
}

func TestGeometricErrors(t *testing.T) {
	tests := []struct {
		name string
		req  formula.Request
		want error
	}{
		{"zero ratio", req("", "first", "1", "ratio", "0", "n", "3"), formula.ErrDomain},
		{"n zero", req("", "first", "1", "ratio", "2", "n", "0"), formula.ErrDomain},
		{"n fractional", req("", "first", "1", "ratio", "2", "n", "2.5"), formula.ErrInvalidNumber},
		{"missing first", req("", "ratio", "2", "n", "3"), formula.ErrInvalidRequest},
		{"overflow", req("", "first", "1", "ratio", "10", "n", "400"), formula.ErrDomain},
		{"bad mode", req("median", "first", "1", "ratio", "2", "n", "3"), formula.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Geometric.Calculate(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestArithmetic(t *testing.T) {
	res, err := Arithmetic.Calculate(req(ModeBoth, "first", "3", "difference", "4", "n", "5"))
	require.NoError(t, err)
	assert.Equal(t, 19.0, res.Value)
	sum, _ := res.Output("sum")
	assert.Equal(t, 55.0, sum.Value)
	assert.Equal(t, []string{
		"Given: First term (a₁) = 3, Common difference (d) = 4, Term number (n) = 5",
		"Step 1: Calculate the 5th term using aₙ = a₁ + (n-1) × d",
		"Step 2: a_5 = 3 + (5-1) × 4 = 3 + 4 × 4",
		"Step 3: a_5 = 3 + 16 = 19",
		"Step 4: Calculate sum using Sₙ = n/2 × (2a₁ + (n-1)d)",
		"Step 5: S_5 = 5/2 × (2 × 3 + (5-1) × 4)",
		"Step 6: S_5 = 5/2 × (6 + 16)",
		"Step 7: S_5 = 5/2 × 22 = 55",
	}, res.Steps)
	assert.Nil(t, res.Details.(Details).Converges)
}

func TestArithmeticSumOnlyNumbersFromOne(t *testing.T) {
	res, err := Arithmetic.Calculate(req(ModeSum, "first", "10", "difference", "-2.5", "n", "3"))
	require.NoError(t, err)
	assert.Equal(t, 22.5, res.Value)
	assert.Equal(t, "Step 1: Calculate sum using Sₙ = n/2 × (2a₁ + (n-1)d)", res.Steps[1])
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int64]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 112: "112th"} {
		assert.Equal(t, want, ordinal(n))
	}
}
