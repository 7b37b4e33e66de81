package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/engine"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

type stubProvider struct {
	quote data.Quote
	err   error
}

func (s *stubProvider) LastClose(ctx context.Context, symbol string) (data.Quote, error) {
	if s.err != nil {
		return data.Quote{}, s.err
	}
	return s.quote, nil
}

func (s *stubProvider) Secondary() data.Provider { return nil }

func newTestRouter(prov data.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(engine.NewEngine(nil, prov)).Router()
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPriceEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(router, "/api/v1/price",
		`{"spot": 100, "strike": 100, "rate": 0.05, "volatility": 0.2, "days": 30}`)
	require.Equal(t, http.StatusOK, w.Code)

	var values pricing.OptionValues
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &values))
	assert.InDelta(t, 2.493, values.Call, 1e-3)
	assert.InDelta(t, 2.083, values.Put, 1e-3)
}

func TestPriceEndpointResolvesSymbol(t *testing.T) {
	prov := &stubProvider{quote: data.Quote{Symbol: "AAPL", Price: 231.59}}
	router := newTestRouter(prov)

	w := postJSON(router, "/api/v1/price",
		`{"symbol": "AAPL", "strike": 230, "rate": 0.04, "volatility": 0.25, "days": 45}`)
	require.Equal(t, http.StatusOK, w.Code)

	var values pricing.OptionValues
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &values))
	assert.Greater(t, values.Call, 0.0)
	assert.Greater(t, values.Put, 0.0)
}

func TestCurveEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(router, "/api/v1/curve",
		`{"spot": 100, "strike": 100, "rate": 0.05, "volatility": 0.2, "days": 30, "samples": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res engine.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.CallCurve, 5)
	require.Len(t, res.PutCurve, 5)
	assert.Equal(t, 80.0, res.CallCurve[0].EntryPrice)
	assert.Equal(t, 120.0, res.CallCurve[4].EntryPrice)
	assert.InDelta(t, 2.493, res.Values.Call, 1e-3)
}

func TestQuoteEndpoint(t *testing.T) {
	prov := &stubProvider{quote: data.Quote{Symbol: "AAPL", Price: 231.59}}
	router := newTestRouter(prov)

	w := get(router, "/api/v1/quote/AAPL")
	require.Equal(t, http.StatusOK, w.Code)

	var q data.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 231.59, q.Price)
}

func TestQuoteEndpointUpstreamFailure(t *testing.T) {
	router := newTestRouter(&stubProvider{err: errors.New("feed down")})

	w := get(router, "/api/v1/quote/AAPL")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := get(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		path string
		prov data.Provider
		body string
		want int
	}{
		{
			name: "negative spot",
			path: "/api/v1/price",
			body: `{"spot": -5, "strike": 100, "rate": 0.05, "volatility": 0.2, "days": 30}`,
			want: http.StatusBadRequest,
		},
		{
			name: "zero volatility",
			path: "/api/v1/price",
			body: `{"spot": 100, "strike": 100, "rate": 0.05, "volatility": 0, "days": 30}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "zero expiry",
			path: "/api/v1/curve",
			body: `{"spot": 100, "strike": 100, "rate": 0.05, "volatility": 0.2, "days": 0}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "bad range expression",
			path: "/api/v1/curve",
			body: `{"spot": 100, "strike": 100, "rate": 0.05, "volatility": 0.2, "days": 30, "min_entry": "spot-"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "inverted range",
			path: "/api/v1/curve",
			body: `{"spot": 100, "strike": 100, "rate": 0.05, "volatility": 0.2, "days": 30, "min_entry": "spot+30", "max_entry": "spot-30"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "quote failure",
			path: "/api/v1/curve",
			prov: &stubProvider{err: errors.New("feed down")},
			body: `{"symbol": "SPY", "strike": 600, "rate": 0.05, "volatility": 0.2, "days": 30}`,
			want: http.StatusBadGateway,
		},
		{
			name: "malformed json",
			path: "/api/v1/price",
			body: `{"spot":`,
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(tc.prov)

			w := postJSON(router, tc.path, tc.body)
			require.Equal(t, tc.want, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
