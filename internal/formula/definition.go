package formula

import (
	"math"
	"strings"
)

// Field describes one input of a calculator.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Symbol      string `json:"symbol,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	DefaultUnit string `json:"default_unit,omitempty"`
	Units       []Unit `json:"units,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Definition is a calculator: its metadata and its pure entry point.
type Definition struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Modes       []string `json:"modes,omitempty"`
	Fields      []Field  `json:"fields"`
	// ListField names the field that takes a free-form list or expression.
	ListField string `json:"list_field,omitempty"`

	Solve func(Request) (Result, error) `json:"-"`
}

// Calculate checks the mode of req, defaulting it to the first mode, and solves.
func (d Definition) Calculate(req Request) (Result, error) {
	if len(d.Modes) > 0 {
		mode := strings.TrimSpace(req.Mode)
		if mode == "" {
			mode = d.Modes[0]
		} else if !d.HasMode(mode) {
			return Result{}, InvalidRequestf("mode", "Unknown mode %q, use one of: %s", mode, strings.Join(d.Modes, ", "))
		}
		req = req.Clone()
		req.Mode = mode
	}
	if req.Values == nil {
		req.Values = map[string]string{}
	}
	res, err := d.Solve(req)
	if err != nil {
		return Result{}, err
	}
	if err := checkFinite(res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// checkFinite rejects results that overflowed or are undefined; they have no
// JSON encoding and no meaningful answer.
func checkFinite(res Result) error {
	for _, o := range res.Outputs {
		if !finite(o.Value) {
			return Domainf(o.Name, "%s cannot be computed from these values", nonEmpty(o.Label, o.Name))
		}
	}
	if !finite(res.Value) {
		return Domainf("", "%s cannot be computed from these values", nonEmpty(res.Label, "The result"))
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (d Definition) HasMode(mode string) bool {
	for _, m := range d.Modes {
		if m == mode {
			return true
		}
	}
	return false
}
