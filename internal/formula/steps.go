package formula

import "fmt"

// Steps accumulates the human-readable derivation of a calculation.
type Steps struct {
	lines []string
	n     int
}

// Add appends a line verbatim.
func (s *Steps) Add(format string, args ...any) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

// Numbered appends "Step N: ..." with N counting only numbered lines.
func (s *Steps) Numbered(format string, args ...any) {
	s.n++
	s.lines = append(s.lines, fmt.Sprintf("Step %d: ", s.n)+fmt.Sprintf(format, args...))
}

func (s *Steps) Len() int { return len(s.lines) }

// Lines returns a copy, so results never alias the builder.
func (s *Steps) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
