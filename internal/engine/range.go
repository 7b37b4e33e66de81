package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

// ErrInvalidRangeExpression marks entry-range bounds that fail to parse or
// do not evaluate to a number.
var ErrInvalidRangeExpression = errors.New("invalid entry range expression")

// resolveEntryRange produces the concrete [min, max] entry price interval
// for a request.
//
// Empty bounds default to spot±EntrySpan with the lower bound clamped at
// zero. Non-empty bounds are evaluated with the resolved spot bound to the
// `spot` variable. An explicit bound that resolves negative, or a resolved
// range with min >= max, is rejected rather than silently adjusted.
func (e *Engine) resolveEntryRange(req Request, spot float64) (minEntry, maxEntry float64, err error) {
	minEntry = math.Max(0, spot-e.cfg.EntrySpan)
	maxEntry = spot + e.cfg.EntrySpan

	if req.MinEntry != "" {
		minEntry, err = evalBound(req.MinEntry, spot)
		if err != nil {
			return 0, 0, err
		}
	}
	if req.MaxEntry != "" {
		maxEntry, err = evalBound(req.MaxEntry, spot)
		if err != nil {
			return 0, 0, err
		}
	}

	if minEntry < 0 {
		return 0, 0, fmt.Errorf("%w: entry prices must be non-negative, got %v", pricing.ErrInvalidInput, minEntry)
	}
	if minEntry >= maxEntry {
		return 0, 0, fmt.Errorf("%w: resolved entry range [%v, %v] is empty", pricing.ErrInvalidInput, minEntry, maxEntry)
	}
	return minEntry, maxEntry, nil
}

// evalBound evaluates one range bound expression with spot in scope.
func evalBound(expr string, spot float64) (float64, error) {
	evalExpr, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidRangeExpression, expr, err)
	}

	result, err := evalExpr.Evaluate(map[string]interface{}{"spot": spot})
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidRangeExpression, expr, err)
	}

	f, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q does not evaluate to a number", ErrInvalidRangeExpression, expr)
	}
	return f, nil
}
