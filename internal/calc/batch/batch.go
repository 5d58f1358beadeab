// Package batch evaluates many calculations in one request.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"Formulary/internal/calc"
	"Formulary/internal/formula"
)

const MaxItems = 500

var (
	ErrEmpty    = errors.New("batch: no items")
	ErrTooLarge = fmt.Errorf("batch: more than %d items", MaxItems)
)

type Item struct {
	ID         string          `json:"id,omitempty"`
	Calculator string          `json:"calculator"`
	Request    formula.Request `json:"request"`
}

// Outcome is the result or the error of one item, never both.
type Outcome struct {
	ID         string          `json:"id"`
	Calculator string          `json:"calculator"`
	Request    formula.Request `json:"request"`
	Result     *formula.Result `json:"result,omitempty"`
	Error      *calc.ErrorBody `json:"error,omitempty"`
}

func (o Outcome) OK() bool { return o.Error == nil }

type Summary struct {
	Count   int       `json:"count"`
	Failed  int       `json:"failed"`
	Results []Outcome `json:"results"`
}

func Summarize(out []Outcome) Summary {
	s := Summary{Count: len(out), Results: out}
	for _, o := range out {
		if !o.OK() {
			s.Failed++
		}
	}
	return s
}

// Calculate solves every item with at most GOMAXPROCS workers. Failing items
// only fail their own Outcome; the returned error is for the batch as a whole.
func Calculate(ctx context.Context, reg *calc.Registry, items []Item) ([]Outcome, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	if len(items) > MaxItems {
		return nil, ErrTooLarge
	}

	out := make([]Outcome, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = solve(reg, it)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func solve(reg *calc.Registry, it Item) Outcome {
	o := Outcome{ID: it.ID, Calculator: it.Calculator, Request: it.Request}
	res, err := reg.Solve(it.Calculator, it.Request)
	if err != nil {
		o.Error = errorBody(err)
		return o
	}
	o.Result = &res
	return o
}

func errorBody(err error) *calc.ErrorBody {
	if fe, ok := formula.AsError(err); ok {
		return &calc.ErrorBody{Error: string(fe.Kind), Field: fe.Field, Message: fe.Message}
	}
	if errors.Is(err, calc.ErrUnknownCalculator) {
		return &calc.ErrorBody{Error: "unknown_calculator", Message: err.Error()}
	}
	return &calc.ErrorBody{Error: "internal", Message: err.Error()}
}
