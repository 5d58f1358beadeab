package formula

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

type Constraint int

const (
	Any Constraint = iota
	NonZero
	Positive
	NonNegative
	Integer
	PositiveInteger
	NonZeroInteger
)

func (c Constraint) integral() bool {
	return c == Integer || c == PositiveInteger || c == NonZeroInteger
}

func (c Constraint) check(v float64) bool {
	switch c {
	case NonZero, NonZeroInteger:
		return v != 0
	case Positive, PositiveInteger:
		return v > 0
	case NonNegative:
		return v >= 0
	default:
		return true
	}
}

func (c Constraint) describe() string {
	switch c {
	case NonZero:
		return "a valid non-zero number"
	case Positive:
		return "a valid positive number"
	case NonNegative:
		return "zero or a positive number"
	case Integer:
		return "a whole number"
	case PositiveInteger:
		return "a positive integer"
	case NonZeroInteger:
		return "a non-zero integer"
	default:
		return "a valid number"
	}
}

// ParseFloat parses raw for the named field and checks it against c.
// label is used in messages and falls back to name.
func ParseFloat(name, label, raw string, c Constraint) (float64, error) {
	if label == "" {
		label = name
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, InvalidRequestf(name, "Please enter %s", strings.ToLower(label))
	}
	if !numeric(s) {
		return 0, InvalidNumberf(name, "%s must be %s", label, c.describe())
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, InvalidNumberf(name, "%s must be %s", label, c.describe())
	}
	if c.integral() && v != math.Trunc(v) {
		return 0, InvalidNumberf(name, "%s must be %s", label, c.describe())
	}
	if !c.check(v) {
		return 0, Domainf(name, "%s must be %s", label, c.describe())
	}
	return v, nil
}

// ParseInt is ParseFloat for integral fields. "4.0" is accepted as 4.
func ParseInt(name, label, raw string, c Constraint) (int64, error) {
	if !c.integral() {
		c = Integer
	}
	v, err := ParseFloat(name, label, raw, c)
	if err != nil {
		return 0, err
	}
	if math.Abs(v) > 1<<53 {
		return 0, Domainf(name, "%s is too large", labelOr(name, label))
	}
	return int64(v), nil
}

// ParseIntList splits raw on commas, semicolons and whitespace and parses
// every entry as a positive integer.
func ParseIntList(name, label, raw string, min, max int) ([]int64, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(parts) < min {
		if min == 1 {
			return nil, InvalidRequestf(name, "Please enter at least one valid number")
		}
		return nil, InvalidRequestf(name, "Please enter at least %d numbers", min)
	}
	if max > 0 && len(parts) > max {
		return nil, InvalidRequestf(name, "Please enter no more than %d numbers", max)
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := ParseInt(name, label, p, PositiveInteger)
		if err != nil {
			if fe, ok := AsError(err); ok && fe.Kind == KindDomain {
				return nil, Domainf(name, "Please enter only positive numbers")
			}
			return nil, InvalidNumberf(name, "%q is not a whole number", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func numeric(s string) bool {
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case r == '+' || r == '-':
			if i != 0 && s[i-1] != 'e' && s[i-1] != 'E' {
				return false
			}
		case r == 'e' || r == 'E':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func labelOr(name, label string) string {
	if label == "" {
		return name
	}
	return label
}
