package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// localCSVProvider implements Data Provider from a local CSV file.
//
// The file holds one "symbol,price" row per line, optionally with a third
// ISO date column used as the quote timestamp. A header row is skipped.
type localCSVProvider struct {
	path      string
	secondary Provider

	loadOnce sync.Once
	loadErr  error
	quotes   map[string]Quote
}

// NewLocalCSVProvider convenience constructor.
func NewLocalCSVProvider(path string, secondary Provider) *localCSVProvider {
	return &localCSVProvider{path: path, secondary: secondary}
}

func (localCSVProv *localCSVProvider) Secondary() Provider {
	return localCSVProv.secondary
}

func (localCSVProv *localCSVProvider) LastClose(ctx context.Context, symbol string) (Quote, error) {
	symbol = normalizeSymbol(symbol)

	localCSVProv.loadOnce.Do(localCSVProv.load)
	if localCSVProv.loadErr != nil {
		return localCSVProv.fallback(ctx, symbol, localCSVProv.loadErr)
	}

	if quote, ok := localCSVProv.quotes[symbol]; ok {
		return quote, nil
	}
	return localCSVProv.fallback(ctx, symbol, fmt.Errorf("%w: %s not in %s", ErrNoQuote, symbol, localCSVProv.path))
}

// load reads the CSV once and caches it
func (localCSVProv *localCSVProvider) load() {
	f, err := os.Open(localCSVProv.path)
	if err != nil {
		localCSVProv.loadErr = fmt.Errorf("open quotes file: %w", err)
		return
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		localCSVProv.loadErr = fmt.Errorf("read quotes csv: %w", err)
		return
	}

	quotes := make(map[string]Quote, len(records))
	for _, row := range records {
		if len(row) < 2 {
			continue
		}

		symbol := normalizeSymbol(row[0])
		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			continue // skip header and malformed rows
		}

		var asOf time.Time
		if len(row) > 2 {
			if t, err := time.Parse("2006-01-02", strings.TrimSpace(row[2])); err == nil {
				asOf = t
			}
		}

		quotes[symbol] = Quote{Symbol: symbol, Price: price, AsOf: asOf}
	}

	localCSVProv.quotes = quotes
}

func (localCSVProv *localCSVProvider) fallback(ctx context.Context, symbol string, cause error) (Quote, error) {
	if localCSVProv.secondary == nil {
		return Quote{}, cause
	}
	return localCSVProv.secondary.LastClose(ctx, symbol)
}
