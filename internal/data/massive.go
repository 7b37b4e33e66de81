// Package data provides market data provider implementations.
//
// This file contains a Massive-backed Provider implementation that resolves
// the last daily close for a symbol through the official Massive SDK.
//
// Design notes:
//   - Uses the official Massive REST SDK for the previous-close endpoint
//   - Falls back to a secondary provider when the lookup fails
//   - Logging is intentionally verbose at Debug/Trace levels for diagnostics
package data

import (
	"context"
	"fmt"
	"time"

	massive "github.com/massive-com/client-go/v2/rest"
	"github.com/massive-com/client-go/v2/rest/models"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// massiveDataProvider implements the Provider interface using Massive APIs.
type massiveDataProvider struct {
	// Client is the Massive SDK client used to make API requests.
	Client *massive.Client

	// secondary is an optional fallback provider.
	secondary Provider
}

// NewMassiveDataProvider constructs a Massive-backed quote provider.
//
// Parameters:
//   - apiKey: Massive API key for authentication
//   - secondary: optional fallback provider tried when Massive fails
//
// Returns:
//   - *massiveDataProvider: initialized provider instance
func NewMassiveDataProvider(apiKey string, secondary Provider) *massiveDataProvider {
	logger.Infof("event=provider_init provider=massive")

	return &massiveDataProvider{
		Client:    massive.New(apiKey),
		secondary: secondary,
	}
}

// Secondary returns the configured secondary Provider, if any.
func (massiveDataProv *massiveDataProvider) Secondary() Provider {
	return massiveDataProv.secondary
}

// LastClose returns the previous trading day's adjusted close for the symbol.
//
// Behavior:
//   - Queries the adjusted previous-close aggregate via the SDK
//   - Delegates to the secondary provider when the lookup fails
//   - Never substitutes a default price on failure
//
// Parameters:
//   - ctx: request context, honored by the underlying HTTP call
//   - symbol: underlying ticker symbol
//
// Returns:
//   - Quote: symbol, close price, and the bar timestamp
//   - error: if every provider in the chain fails
func (massiveDataProv *massiveDataProvider) LastClose(ctx context.Context, symbol string) (Quote, error) {
	symbol = normalizeSymbol(symbol)
	logger.Debugf("event=last_close provider=massive symbol=%s", symbol)

	params := models.GetPreviousCloseAggParams{Ticker: symbol}.WithAdjusted(true)
	resp, err := massiveDataProv.Client.GetPreviousCloseAgg(ctx, params)
	if err != nil {
		return massiveDataProv.fallback(ctx, symbol, fmt.Errorf("massive previous close: %w", err))
	}
	if len(resp.Results) == 0 {
		return massiveDataProv.fallback(ctx, symbol, fmt.Errorf("%w: massive returned no bars for %s", ErrNoQuote, symbol))
	}

	agg := resp.Results[0]
	quote := Quote{
		Symbol: symbol,
		Price:  agg.Close,
		AsOf:   time.Time(agg.Timestamp).UTC(),
	}

	logger.Tracef("event=last_close_ok provider=massive symbol=%s price=%.4f", symbol, quote.Price)
	return quote, nil
}

func (massiveDataProv *massiveDataProvider) fallback(ctx context.Context, symbol string, cause error) (Quote, error) {
	if massiveDataProv.secondary == nil {
		return Quote{}, cause
	}
	logger.Debugf("event=quote_fallback provider=massive symbol=%s cause=%q", symbol, cause)
	return massiveDataProv.secondary.LastClose(ctx, symbol)
}
