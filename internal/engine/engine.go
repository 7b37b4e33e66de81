// Package engine orchestrates one option analysis end to end: resolve the
// spot price, resolve the entry price range, value the option pair once,
// and sweep both profit curves from that fixed pair.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/metrics"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// ErrQuoteLookup marks a failure to resolve a spot price through the data
// provider chain.
var ErrQuoteLookup = errors.New("quote lookup failed")

type Engine struct {
	cfg  *Config
	prov data.Provider
}

// Config struct
type Config struct {
	Samples   int     `json:"samples,omitempty"`    // default entry samples per curve
	EntrySpan float64 `json:"entry_span,omitempty"` // default half-width of the entry range around spot
}

// Request describes one analysis.
//
// Spot may be zero when Symbol is set; the engine then resolves the spot
// through its data provider. MinEntry and MaxEntry are optional arithmetic
// expressions over a `spot` variable (e.g. "spot-20", "spot*1.2"); when
// empty the range defaults to spot±EntrySpan, clamped at zero on the low
// side. Samples of zero means the configured default.
type Request struct {
	Symbol     string  `json:"symbol,omitempty"`
	Spot       float64 `json:"spot,omitempty"`
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"rate"`
	Volatility float64 `json:"volatility"`
	Days       float64 `json:"days"`

	MinEntry string `json:"min_entry,omitempty"`
	MaxEntry string `json:"max_entry,omitempty"`
	Samples  int    `json:"samples,omitempty"`
}

// Result carries one full analysis.
type Result struct {
	Inputs    pricing.Inputs        `json:"inputs"`
	Values    pricing.OptionValues  `json:"values"`
	CallCurve []pricing.ProfitPoint `json:"call_curve"`
	PutCurve  []pricing.ProfitPoint `json:"put_curve"`
	Quote     *data.Quote           `json:"quote,omitempty"`
}

// NewEngine constructs an Engine, filling config defaults: 100 samples per
// curve and an entry span of 20 around the spot. prov may be nil when every
// request carries an explicit spot.
func NewEngine(cfg *Config, prov data.Provider) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Samples == 0 {
		cfg.Samples = 100
	}
	if cfg.EntrySpan == 0 {
		cfg.EntrySpan = 20
	}
	return &Engine{cfg: cfg, prov: prov}
}

// Evaluate runs one analysis.
//
// The option pair is priced exactly once; both profit curves reuse that
// fixed pair while only the entry price varies.
func (e *Engine) Evaluate(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()

	in, quote, err := e.resolveInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	values, err := e.priceInputs(in)
	if err != nil {
		return nil, err
	}

	minEntry, maxEntry, err := e.resolveEntryRange(req, in.Spot)
	if err != nil {
		return nil, err
	}

	samples := req.Samples
	if samples == 0 {
		samples = e.cfg.Samples
	}

	callCurve, err := pricing.SweepProfits(pricing.Call, values.Call, in.Spot, req.Strike, minEntry, maxEntry, samples)
	if err != nil {
		return nil, err
	}
	putCurve, err := pricing.SweepProfits(pricing.Put, values.Put, in.Spot, req.Strike, minEntry, maxEntry, samples)
	if err != nil {
		return nil, err
	}

	metrics.SweepSamples.Observe(float64(samples))
	metrics.PricingDuration.Observe(time.Since(started).Seconds())
	logger.Debugf("event=analysis_done symbol=%s call=%.3f put=%.3f samples=%d range=[%.2f,%.2f]",
		req.Symbol, values.Call, values.Put, samples, minEntry, maxEntry)

	return &Result{Inputs: in, Values: values, CallCurve: callCurve, PutCurve: putCurve, Quote: quote}, nil
}

// Price values the option pair for a request without sweeping curves.
func (e *Engine) Price(ctx context.Context, req Request) (pricing.OptionValues, error) {
	in, _, err := e.resolveInputs(ctx, req)
	if err != nil {
		return pricing.OptionValues{}, err
	}
	return e.priceInputs(in)
}

// resolveInputs fills the pricing inputs for a request, looking the spot
// up by symbol when it is not given explicitly.
func (e *Engine) resolveInputs(ctx context.Context, req Request) (pricing.Inputs, *data.Quote, error) {
	spot := req.Spot
	var quote *data.Quote
	if spot == 0 && req.Symbol != "" {
		q, err := e.ResolveSpot(ctx, req.Symbol)
		if err != nil {
			return pricing.Inputs{}, nil, fmt.Errorf("resolve spot for %s: %w", req.Symbol, err)
		}
		spot = q.Price
		quote = &q
	}

	in := pricing.Inputs{Spot: spot, Strike: req.Strike, Rate: req.Rate, Volatility: req.Volatility, Days: req.Days}
	return in, quote, nil
}

func (e *Engine) priceInputs(in pricing.Inputs) (pricing.OptionValues, error) {
	values, err := pricing.Price(in)
	if err != nil {
		metrics.Pricings.WithLabelValues(outcomeLabel(err)).Inc()
		return pricing.OptionValues{}, err
	}
	metrics.Pricings.WithLabelValues("success").Inc()
	return values, nil
}

// ResolveSpot looks up the latest close for symbol through the data
// provider chain. Any failure, including a missing provider, is reported
// as ErrQuoteLookup so callers can map the whole category at once.
func (e *Engine) ResolveSpot(ctx context.Context, symbol string) (data.Quote, error) {
	if e.prov == nil {
		return data.Quote{}, fmt.Errorf("%w: no data provider configured for %q", ErrQuoteLookup, symbol)
	}

	q, err := e.prov.LastClose(ctx, symbol)
	if err != nil {
		metrics.QuoteLookups.WithLabelValues("error").Inc()
		return data.Quote{}, fmt.Errorf("%w: %v", ErrQuoteLookup, err)
	}
	metrics.QuoteLookups.WithLabelValues("success").Inc()
	logger.Infof("event=spot_resolved symbol=%s price=%.4f as_of=%s", q.Symbol, q.Price, q.AsOf.Format("2006-01-02"))
	return q, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, pricing.ErrDegenerateInput):
		return "degenerate"
	case errors.Is(err, pricing.ErrInvalidInput), errors.Is(err, pricing.ErrInvalidOptionType):
		return "invalid"
	}
	return "error"
}
