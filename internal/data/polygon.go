package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// polygonDataProvider implements Data Provider using Polygon.io API.
type polygonDataProvider struct {
	// APIKey used for authenticating requests with Polygon.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint (e.g., https://api.polygon.io).
	BaseURL string

	secondary Provider
}

func NewPolygonDataProvider(apiKey string, secondary Provider) *polygonDataProvider {
	return &polygonDataProvider{
		APIKey:    apiKey,
		Client:    &http.Client{Timeout: 30 * time.Second},
		BaseURL:   "https://api.polygon.io",
		secondary: secondary,
	}
}

func (polygonDataProv *polygonDataProvider) Secondary() Provider {
	return polygonDataProv.secondary
}

// LastClose returns the previous trading day's adjusted close for the symbol
// via the v2 previous-close aggregate endpoint.
func (polygonDataProv *polygonDataProvider) LastClose(ctx context.Context, symbol string) (Quote, error) {
	symbol = normalizeSymbol(symbol)
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/prev?adjusted=true&apiKey=%s",
		polygonDataProv.BaseURL, symbol, polygonDataProv.APIKey)

	resp, err := polygonDataProv.doGet(ctx, url)
	if err != nil {
		return polygonDataProv.fallback(ctx, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return polygonDataProv.fallback(ctx, symbol, fmt.Errorf("polygon prev close status %d", resp.StatusCode))
	}

	var body struct {
		Results []struct {
			Close float64 `json:"c"`
			Time  int64   `json:"t"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return polygonDataProv.fallback(ctx, symbol, fmt.Errorf("decode polygon prev close: %w", err))
	}
	if len(body.Results) == 0 {
		return polygonDataProv.fallback(ctx, symbol, fmt.Errorf("%w: polygon returned no bars for %s", ErrNoQuote, symbol))
	}

	r := body.Results[0]
	return Quote{Symbol: symbol, Price: r.Close, AsOf: time.UnixMilli(r.Time).UTC()}, nil
}

// doGet executes an HTTP GET request with rate-limit handling.
//
// Behavior:
//   - Retries once on HTTP 429, waiting out the advertised Retry-After
//   - Honors context cancellation while waiting
//   - Returns other responses to the caller unchanged
func (polygonDataProv *polygonDataProvider) doGet(ctx context.Context, url string) (*http.Response, error) {
	retried := false
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := polygonDataProv.Client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || retried {
			return resp, nil
		}
		resp.Body.Close()

		wait := retryWait(resp.Header.Get("Retry-After"))
		logger.Infof("event=rate_limited provider=polygon wait=%s", wait)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		retried = true
	}
}

func (polygonDataProv *polygonDataProvider) fallback(ctx context.Context, symbol string, cause error) (Quote, error) {
	if polygonDataProv.secondary == nil {
		return Quote{}, cause
	}
	logger.Debugf("event=quote_fallback provider=polygon symbol=%s cause=%q", symbol, cause)
	return polygonDataProv.secondary.LastClose(ctx, symbol)
}

// retryWait parses a Retry-After header in seconds, defaulting to a short pause.
func retryWait(header string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 2 * time.Second
}
