package formula

// Output is one computed quantity.
type Output struct {
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
	Formatted string  `json:"formatted"`
}

// Result is the outcome of a successful calculation. The primary value is
// the first output; Details carries calculator-specific extras.
type Result struct {
	Label     string   `json:"label"`
	Value     float64  `json:"value"`
	Unit      string   `json:"unit,omitempty"`
	Formatted string   `json:"formatted"`
	Outputs   []Output `json:"outputs"`
	Steps     []string `json:"steps"`
	Notes     string   `json:"notes,omitempty"`
	Details   any      `json:"details,omitempty"`
}

func NewOutput(name, label string, v float64, unit string) Output {
	return Output{Name: name, Label: label, Value: v, Unit: unit, Formatted: FormatValue(v)}
}

func NewResult(steps *Steps, outputs ...Output) Result {
	r := Result{Outputs: outputs}
	if len(outputs) > 0 {
		r.Label = outputs[0].Label
		r.Value = outputs[0].Value
		r.Unit = outputs[0].Unit
		r.Formatted = outputs[0].Formatted
	}
	if steps != nil {
		r.Steps = steps.Lines()
	}
	return r
}

// Output returns the output with the given name.
func (r Result) Output(name string) (Output, bool) {
	for _, o := range r.Outputs {
		if o.Name == name {
			return o, true
		}
	}
	return Output{}, false
}
