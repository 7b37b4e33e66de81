package data

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNoQuote indicates that no provider in the chain could produce a price
// for the requested symbol.
var ErrNoQuote = errors.New("no quote available")

// Provider supplies market data
type Provider interface {
	// LastClose returns the most recent daily closing price for the symbol.
	LastClose(ctx context.Context, symbol string) (Quote, error)
	// Secondary returns the fallback provider, or nil when the provider is
	// the end of the chain.
	Secondary() Provider
}

// Quote is the last known close for one symbol.
type Quote struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	AsOf   time.Time `json:"as_of"`
}

// --------------------------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------------------------

// normalizeSymbol canonicalizes user-supplied tickers.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
