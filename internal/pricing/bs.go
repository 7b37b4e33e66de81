// Package pricing implements closed-form European option valuation under the
// Black-Scholes model and the profit/loss profiling built on top of it.
//
// Responsibilities:
//   - Price European calls and puts from spot, strike, rate, volatility, expiry
//   - Profile profit/loss of either option type across hypothetical entry prices
//   - Sweep a closed entry-price range into an ascending profit curve
//
// Design notes:
//   - Every operation is a pure function of its arguments
//   - Inputs outside the model domain fail with typed errors, never NaN
//   - The standard normal CDF is a single documented-precision primitive
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

//
// ==========================
// Error taxonomy
// ==========================
//

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrInvalidInput      = errors.New("invalid pricing input")
	ErrDegenerateInput   = errors.New("degenerate pricing input")
	ErrInvalidOptionType = errors.New("invalid option type")
)

//
// ==========================
// Valuation
// ==========================
//

// Inputs carries the market and contract parameters for one valuation.
//
// Rate and Volatility are annualized decimals (0.05 means 5%). Days is the
// time to expiry in calendar days and is converted to years internally.
type Inputs struct {
	Spot       float64 `json:"spot"`       // underlying price
	Strike     float64 `json:"strike"`     // option strike
	Rate       float64 `json:"rate"`       // annual risk-free rate, decimal form
	Volatility float64 `json:"volatility"` // annual volatility, decimal form
	Days       float64 `json:"days"`       // time to expiry in days
}

// OptionValues is the pair of fair values produced by one valuation,
// each rounded to three decimal places.
type OptionValues struct {
	Call float64 `json:"call"`
	Put  float64 `json:"put"`
}

// Price values a European call and put under the Black-Scholes model with
// continuous compounding.
//
// Time to expiry is converted to years as Days/365. Both results are rounded
// to three decimal places, half away from zero.
//
// Returns:
//
//	OptionValues on success. ErrInvalidInput if the spot is non-positive or
//	the strike, volatility, or expiry is negative. ErrDegenerateInput if the
//	volatility or expiry is exactly zero, which leaves d1 and d2 undefined;
//	the result is never silently replaced with an intrinsic value or NaN.
func Price(in Inputs) (OptionValues, error) {
	if err := in.validate(); err != nil {
		return OptionValues{}, err
	}

	call, put := blackScholes(in)
	return OptionValues{Call: round3(call), Put: round3(put)}, nil
}

func (in Inputs) validate() error {
	switch {
	case in.Spot <= 0:
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidInput, in.Spot)
	case in.Strike < 0:
		return fmt.Errorf("%w: strike must be non-negative, got %v", ErrInvalidInput, in.Strike)
	case in.Volatility < 0:
		return fmt.Errorf("%w: volatility must be non-negative, got %v", ErrInvalidInput, in.Volatility)
	case in.Days < 0:
		return fmt.Errorf("%w: days to expiry must be non-negative, got %v", ErrInvalidInput, in.Days)
	case in.Volatility == 0:
		return fmt.Errorf("%w: volatility is zero", ErrDegenerateInput)
	case in.Days == 0:
		return fmt.Errorf("%w: time to expiry is zero", ErrDegenerateInput)
	}
	return nil
}

// blackScholes evaluates the closed form and returns the unrounded pair.
// Inputs must already be validated: Spot > 0, Volatility > 0, Days > 0.
func blackScholes(in Inputs) (call, put float64) {
	tau := in.Days / 365
	sqrtTau := math.Sqrt(tau)

	d1 := (math.Log(in.Spot/in.Strike) + (in.Rate+0.5*in.Volatility*in.Volatility)*tau) / (in.Volatility * sqrtTau)
	d2 := d1 - in.Volatility*sqrtTau

	discount := math.Exp(-in.Rate * tau)
	call = in.Spot*normCDF(d1) - in.Strike*discount*normCDF(d2)
	put = in.Strike*discount*normCDF(-d2) - in.Spot*normCDF(-d1)
	return call, put
}

// round3 rounds to three decimal places, half away from zero.
func round3(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}
