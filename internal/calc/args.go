package calc

import (
	"strings"

	"Formulary/internal/formula"
)

// ParseArgs turns command-line style tokens into a request for d:
//
//	voltage=5  voltage=5@mV  voltage_unit=mV  mode=sum
//
// Tokens that are not assignments are joined, space separated, into d's
// list field, so "gcf 12 18 24" and "scientific-notation mode=expression 2e3 * 4" work.
func ParseArgs(d formula.Definition, args []string) (formula.Request, error) {
	req := formula.Request{Values: map[string]string{}, Units: map[string]string{}}
	fields := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		fields[f.Name] = true
	}

	var list []string
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		switch {
		case ok && name == "mode":
			req.Mode = strings.TrimSpace(value)
		case ok && fields[name]:
			if v, unit, hasUnit := strings.Cut(value, "@"); hasUnit {
				value = v
				req.Units[name] = strings.TrimSpace(unit)
			}
			req.Values[name] = strings.TrimSpace(value)
		case ok && strings.HasSuffix(name, "_unit") && fields[strings.TrimSuffix(name, "_unit")]:
			req.Units[strings.TrimSuffix(name, "_unit")] = strings.TrimSpace(value)
		case d.ListField != "":
			list = append(list, arg)
		case ok:
			return formula.Request{}, formula.InvalidRequestf(name, "%s has no field %q", d.Slug, name)
		default:
			return formula.Request{}, formula.InvalidRequestf("", "Unexpected argument %q, use name=value", arg)
		}
	}
	if len(list) > 0 {
		if prev := req.Values[d.ListField]; prev != "" {
			list = append([]string{prev}, list...)
		}
		req.Values[d.ListField] = strings.Join(list, " ")
	}
	return req, nil
}
