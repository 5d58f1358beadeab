package formula

import (
	"math"
	"strconv"
	"strings"
)

const Invalid = "Invalid"

// FormatValue renders v for display: exponential notation when |v| is outside
// [1e-4, 1e6), fixed point with trailing zeros trimmed otherwise.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid
	}
	if v == 0 {
		return "0"
	}
	if a := math.Abs(v); a < 1e-4 || a >= 1e6 {
		return FormatExp(v, 4)
	}
	return trimZeros(strconv.FormatFloat(v, 'f', 4, 64))
}

// FormatExp formats v as d.dddde±x, without the zero padding Go puts on the exponent.
func FormatExp(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid
	}
	s := strconv.FormatFloat(v, 'e', digits, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

// FormatFixed formats v with the given number of decimals.
func FormatFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid
	}
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

// FormatTrimmed formats v with up to digits decimals and no trailing zeros.
func FormatTrimmed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid
	}
	s := trimZeros(strconv.FormatFloat(v, 'f', digits, 64))
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatNumber prints v the way a user would type it: the shortest
// representation, in plain decimals between 1e-7 and 1e21.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid
	}
	if v == 0 {
		return "0"
	}
	if a := math.Abs(v); a < 1e-7 || a >= 1e21 {
		return FormatExp(v, -1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
