package formula

import "strings"

// Request is one calculation attempt: raw field values as typed, the unit
// chosen for each field and an optional mode for calculators that have them.
// An empty or missing value means the field is unknown.
type Request struct {
	Mode   string            `json:"mode,omitempty"`
	Values map[string]string `json:"values"`
	Units  map[string]string `json:"units,omitempty"`
}

func (r Request) Raw(name string) string {
	return strings.TrimSpace(r.Values[name])
}

func (r Request) Known(name string) bool {
	return r.Raw(name) != ""
}

// Unit returns the unit chosen for name, or def.
func (r Request) Unit(name, def string) string {
	if u := strings.TrimSpace(r.Units[name]); u != "" {
		return u
	}
	return def
}

func (r Request) Clone() Request {
	out := Request{Mode: r.Mode, Values: make(map[string]string, len(r.Values))}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	if r.Units != nil {
		out.Units = make(map[string]string, len(r.Units))
		for k, v := range r.Units {
			out.Units[k] = v
		}
	}
	return out
}

// Var is a variable that is either Known with a value or Unknown.
type Var struct {
	value float64
	known bool
}

func Known(v float64) Var { return Var{value: v, known: true} }
func Unknown() Var        { return Var{} }

func (v Var) IsKnown() bool { return v.known }

// Value panics on an unknown variable; solvers only read what their case declared known.
func (v Var) Value() float64 {
	if !v.known {
		panic("formula: value of unknown variable")
	}
	return v.value
}
