package data

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// synthDataProvider implements Data Provider generating synthetic quotes.
//
// The price for a symbol is derived from a seeded hash of the symbol name,
// so repeated lookups return the same quote. Intended for offline runs and
// tests where no API key is available.
type synthDataProvider struct {
	secondary Provider
}

func NewSyntheticProvider(secondary Provider) *synthDataProvider {
	return &synthDataProvider{secondary: secondary}
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) LastClose(ctx context.Context, symbol string) (Quote, error) {
	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.LastClose(ctx, symbol)
	}

	symbol = normalizeSymbol(symbol)
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := 20 + rng.Float64()*480
	price = math.Round(price*100) / 100
	return Quote{Symbol: symbol, Price: price, AsOf: time.Now().UTC()}, nil
}
