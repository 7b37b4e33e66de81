package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// OptionType identifies which side of the contract a profit query concerns.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ProfitLoss computes the profit or loss of holding one option, given its
// theoretical fair value and a hypothetical entry price, with the underlying
// at spot.
//
// For a call: profit = optionValue - (max(0, spot-strike) - entryPrice).
// For a put:  profit = (max(0, strike-spot) - entryPrice) - optionValue.
//
// The sign convention intentionally differs between the two branches;
// downstream curve rendering depends on it, so both expressions stay exactly
// as written.
func ProfitLoss(typ OptionType, optionValue, spot, strike, entryPrice float64) (float64, error) {
	switch typ {
	case Call:
		intrinsic := math.Max(0, spot-strike)
		return optionValue - (intrinsic - entryPrice), nil
	case Put:
		intrinsic := math.Max(0, strike-spot)
		return (intrinsic - entryPrice) - optionValue, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOptionType, string(typ))
}

// ProfitPoint is one sample of a profit curve.
type ProfitPoint struct {
	EntryPrice float64 `json:"entry_price"`
	Profit     float64 `json:"profit"`
}

// SweepProfits evaluates ProfitLoss at samples equally spaced entry prices
// over the closed interval [minPrice, maxPrice], both endpoints included.
//
// The option value is fixed for the whole sweep: it is priced once by the
// caller and only the entry price varies. The returned curve is strictly
// ascending in entry price and carries no state, so the same arguments
// always reproduce the same curve.
//
// Returns ErrInvalidInput if samples < 2 or minPrice >= maxPrice, and
// ErrInvalidOptionType for an unknown option type.
func SweepProfits(typ OptionType, optionValue, spot, strike, minPrice, maxPrice float64, samples int) ([]ProfitPoint, error) {
	if samples < 2 {
		return nil, fmt.Errorf("%w: sample count %d, need at least 2", ErrInvalidInput, samples)
	}
	if minPrice >= maxPrice {
		return nil, fmt.Errorf("%w: entry price range [%v, %v] is empty", ErrInvalidInput, minPrice, maxPrice)
	}

	grid := floats.Span(make([]float64, samples), minPrice, maxPrice)

	curve := make([]ProfitPoint, 0, samples)
	for _, entry := range grid {
		profit, err := ProfitLoss(typ, optionValue, spot, strike, entry)
		if err != nil {
			return nil, err
		}
		curve = append(curve, ProfitPoint{EntryPrice: entry, Profit: profit})
	}
	return curve, nil
}
