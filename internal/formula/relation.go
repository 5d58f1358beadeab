package formula

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Variable is one named quantity of a closed-form relation.
type Variable struct {
	Name        string
	Label       string
	Symbol      string
	Quantity    *Quantity
	DefaultUnit string
	Constraint  Constraint
}

func (v Variable) base() string {
	if v.Quantity == nil {
		return ""
	}
	return v.Quantity.Base()
}

func (v Variable) unit(req Request) (string, error) {
	if v.Quantity == nil {
		return "", nil
	}
	sym := req.Unit(v.Name, v.DefaultUnit)
	u, err := v.Quantity.Lookup(sym)
	if err != nil {
		return "", UnknownUnitf(v.Name, "Unknown unit %q for %s", sym, strings.ToLower(v.Label))
	}
	return u.Symbol, nil
}

// Field describes v as a form input.
func (v Variable) Field() Field {
	f := Field{Name: v.Name, Label: v.Label, Symbol: v.Symbol, DefaultUnit: v.DefaultUnit}
	if v.Quantity != nil {
		f.Quantity = v.Quantity.Name()
		f.Units = v.Quantity.Units()
	}
	return f
}

// Parse reads v from req, checks its constraint and converts it to base units.
func (v Variable) Parse(req Request) (float64, error) {
	unit, err := v.unit(req)
	if err != nil {
		return 0, err
	}
	x, err := ParseFloat(v.Name, v.Label, req.Raw(v.Name), v.Constraint)
	if err != nil || v.Quantity == nil {
		return x, err
	}
	return v.Quantity.ToBase(x, unit)
}

// Values holds the known variables of a request, converted to base units.
type Values map[string]float64

// Quote renders a known variable in base units for substitution lines, e.g. "5.0000e-5 C".
type Quote func(name string) string

// Derivation computes one unknown from the known variables.
type Derivation struct {
	Target     string
	Describe   string
	Formula    string
	Eval       func(v Values) (float64, error)
	Substitute func(q Quote) string
}

// Case maps one subset of known variables to the derivations it allows.
type Case struct {
	Known   []string
	Outputs []Derivation
}

// Solve is the usual single-unknown case: every variable but d.Target is known.
func Solve(d Derivation) Case {
	return Case{Outputs: []Derivation{d}}
}

// Relation is a closed-form relation between named variables together with
// its dispatch table of supported known-variable subsets.
type Relation struct {
	name     string
	vars     []Variable
	byName   map[string]int
	cases    map[string]Case
	required int
}

// NewRelation panics on a malformed table, the same way regexp.MustCompile does.
func NewRelation(name string, vars []Variable, cases ...Case) *Relation {
	r := &Relation{
		name:     name,
		vars:     vars,
		byName:   make(map[string]int, len(vars)),
		cases:    make(map[string]Case, len(cases)),
		required: -1,
	}
	for i, v := range vars {
		r.byName[v.Name] = i
	}
	for _, c := range cases {
		if len(c.Outputs) == 0 {
			panic(fmt.Sprintf("formula: %s: case without outputs", name))
		}
		if c.Known == nil {
			for _, v := range vars {
				if v.Name != c.Outputs[0].Target {
					c.Known = append(c.Known, v.Name)
				}
			}
		}
		for _, k := range c.Known {
			if _, ok := r.byName[k]; !ok {
				panic(fmt.Sprintf("formula: %s: undeclared variable %q", name, k))
			}
		}
		for _, d := range c.Outputs {
			if _, ok := r.byName[d.Target]; !ok {
				panic(fmt.Sprintf("formula: %s: undeclared target %q", name, d.Target))
			}
		}
		if r.required >= 0 && len(c.Known) != r.required {
			panic(fmt.Sprintf("formula: %s: cases disagree on the number of known variables", name))
		}
		r.required = len(c.Known)
		key := keyOf(c.Known)
		if _, dup := r.cases[key]; dup {
			panic(fmt.Sprintf("formula: %s: duplicate case %s", name, key))
		}
		r.cases[key] = c
	}
	return r
}

func keyOf(names []string) string {
	s := append([]string(nil), names...)
	sort.Strings(s)
	return strings.Join(s, ",")
}

func (r *Relation) Name() string { return r.name }

func (r *Relation) Variables() []Variable {
	return append([]Variable(nil), r.vars...)
}

// Fields describes the relation's inputs for forms and metadata.
func (r *Relation) Fields() []Field {
	out := make([]Field, 0, len(r.vars))
	for _, v := range r.vars {
		out = append(out, v.Field())
	}
	return out
}

// Bind parses every variable of req into a Known or Unknown Var in base units.
func (r *Relation) Bind(req Request) (map[string]Var, error) {
	out := make(map[string]Var, len(r.vars))
	for _, v := range r.vars {
		if _, err := v.unit(req); err != nil {
			return nil, err
		}
		if !req.Known(v.Name) {
			out[v.Name] = Unknown()
			continue
		}
		x, err := v.Parse(req)
		if err != nil {
			return nil, err
		}
		out[v.Name] = Known(x)
	}
	return out, nil
}

func (r *Relation) labels() string {
	names := make([]string, len(r.vars))
	for i, v := range r.vars {
		names[i] = strings.ToLower(v.Label)
	}
	return strings.Join(names, ", ")
}

// Evaluate selects the case matching the known variables of req and solves it.
func (r *Relation) Evaluate(req Request) (Result, error) {
	bound, err := r.Bind(req)
	if err != nil {
		return Result{}, err
	}
	var known []string
	vals := make(Values, len(bound))
	for _, v := range r.vars {
		if b := bound[v.Name]; b.IsKnown() {
			known = append(known, v.Name)
			vals[v.Name] = b.Value()
		}
	}
	c, ok := r.cases[keyOf(known)]
	if !ok {
		if len(known) != r.required {
			return Result{}, InvalidRequestf("", "Enter exactly %d of: %s, and leave the rest empty", r.required, r.labels())
		}
		return Result{}, Unsupportedf("This combination of known values cannot be solved")
	}

	quote := func(name string) string {
		v := r.vars[r.byName[name]]
		s := FormatValue(vals[name])
		if b := v.base(); b != "" {
			s += " " + b
		}
		return s
	}

	var steps Steps
	outputs := make([]Output, 0, len(c.Outputs))
	for i, d := range c.Outputs {
		tv := r.vars[r.byName[d.Target]]
		base, err := d.Eval(vals)
		if err != nil {
			return Result{}, err
		}
		if math.IsNaN(base) || math.IsInf(base, 0) {
			return Result{}, Domainf(d.Target, "%s cannot be computed from these values", tv.Label)
		}
		unit, _ := tv.unit(req)
		value := base
		if tv.Quantity != nil {
			value, _ = tv.Quantity.FromBase(base, unit)
		}
		if !finite(value) {
			return Result{}, Domainf(d.Target, "%s is too large to express in %s", tv.Label, unit)
		}

		if d.Describe != "" {
			steps.Add("%s", d.Describe)
		}
		if d.Formula != "" {
			steps.Add("%s", d.Formula)
		}
		if i == 0 {
			for _, name := range known {
				kv := r.vars[r.byName[name]]
				if kv.Quantity == nil {
					steps.Add("%s = %s", kv.Symbol, FormatValue(vals[name]))
					continue
				}
				u, _ := kv.unit(req)
				typed, _ := kv.Quantity.FromBase(vals[name], u)
				steps.Add("%s = %s %s = %s", kv.Symbol, FormatValue(typed), u, quote(name))
			}
		}
		line := tv.Symbol + " = "
		if d.Substitute != nil {
			line += d.Substitute(quote) + " = "
		}
		if tv.Quantity == nil {
			line += FormatValue(value)
		} else if unit == tv.base() {
			line += FormatValue(value) + " " + unit
		} else {
			line += FormatValue(base) + " " + tv.base() + " = " + FormatValue(value) + " " + unit
		}
		steps.Add("%s", line)
		outputs = append(outputs, NewOutput(d.Target, tv.Label, value, unit))
	}
	return NewResult(&steps, outputs...), nil
}
