package calc

import (
	"fmt"
	"strings"

	"Formulary/internal/formula"
)

// Text renders a result for terminals and chat: title, outputs, numbered steps, notes.
func Text(d formula.Definition, res formula.Result) string {
	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteString("\n")
	for _, o := range res.Outputs {
		fmt.Fprintf(&b, "%s: %s", o.Label, o.Formatted)
		if o.Unit != "" {
			b.WriteString(" " + o.Unit)
		}
		b.WriteString("\n")
	}
	if len(res.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range res.Steps {
			b.WriteString("  " + s + "\n")
		}
	}
	if res.Notes != "" {
		b.WriteString("\n" + res.Notes + "\n")
	}
	return b.String()
}

// Usage is the one-line argument summary of d.
func Usage(d formula.Definition) string {
	parts := []string{d.Slug}
	if len(d.Modes) > 0 {
		parts = append(parts, "[mode="+strings.Join(d.Modes, "|")+"]")
	}
	for _, f := range d.Fields {
		if f.Name == d.ListField {
			parts = append(parts, f.Name+"...")
			continue
		}
		parts = append(parts, f.Name+"=")
	}
	return strings.Join(parts, " ")
}
