// Package calc wires the individual calculators into a registry and serves
// them over HTTP.
package calc

import (
	"errors"
	"fmt"
	"sort"

	"Formulary/internal/calc/capacitance"
	"Formulary/internal/calc/dbgain"
	"Formulary/internal/calc/diamond"
	"Formulary/internal/calc/force"
	"Formulary/internal/calc/fraction"
	"Formulary/internal/calc/gcf"
	"Formulary/internal/calc/lcm"
	"Formulary/internal/calc/percentage"
	"Formulary/internal/calc/photon"
	"Formulary/internal/calc/power"
	"Formulary/internal/calc/proportion"
	"Formulary/internal/calc/pythagorean"
	"Formulary/internal/calc/scinotation"
	"Formulary/internal/calc/sequence"
	"Formulary/internal/formula"
)

var ErrUnknownCalculator = errors.New("unknown calculator")

// Registry is an immutable set of calculators ordered by category, then title.
type Registry struct {
	defs   []formula.Definition
	bySlug map[string]int
}

// NewRegistry panics on duplicate or empty slugs.
func NewRegistry(defs ...formula.Definition) *Registry {
	r := &Registry{defs: append([]formula.Definition(nil), defs...), bySlug: make(map[string]int, len(defs))}
	sort.SliceStable(r.defs, func(i, j int) bool {
		if r.defs[i].Category != r.defs[j].Category {
			return r.defs[i].Category < r.defs[j].Category
		}
		return r.defs[i].Title < r.defs[j].Title
	})
	for i, d := range r.defs {
		if d.Slug == "" || d.Solve == nil {
			panic(fmt.Sprintf("calc: incomplete definition %q", d.Title))
		}
		if _, dup := r.bySlug[d.Slug]; dup {
			panic("calc: duplicate calculator " + d.Slug)
		}
		r.bySlug[d.Slug] = i
	}
	return r
}

var Default = NewRegistry(
	capacitance.Definition,
	force.Definition,
	power.Definition,
	photon.Definition,
	proportion.Definition,
	gcf.Definition,
	lcm.Definition,
	fraction.Definition,
	diamond.Definition,
	sequence.Geometric,
	sequence.Arithmetic,
	percentage.Definition,
	pythagorean.Definition,
	dbgain.Definition,
	scinotation.Definition,
)

func (r *Registry) Lookup(slug string) (formula.Definition, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return formula.Definition{}, false
	}
	return r.defs[i], true
}

func (r *Registry) All() []formula.Definition {
	return append([]formula.Definition(nil), r.defs...)
}

// Solve runs the calculator named slug. Calculation failures are *formula.Error.
func (r *Registry) Solve(slug string, req formula.Request) (formula.Result, error) {
	d, ok := r.Lookup(slug)
	if !ok {
		return formula.Result{}, unknown(slug)
	}
	return d.Calculate(req)
}

func unknown(slug string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCalculator, slug)
}
