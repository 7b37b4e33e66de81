package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pricing metrics
	Pricings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optionpricer_pricings_total",
			Help: "Total number of valuation requests",
		},
		[]string{"status"}, // status: success|invalid|degenerate
	)

	PricingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optionpricer_pricing_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	SweepSamples = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optionpricer_sweep_samples",
			Help:    "Entry price samples per profit curve",
			Buckets: []float64{2, 10, 50, 100, 250, 500, 1000},
		},
	)

	// Market data metrics
	QuoteLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optionpricer_quote_lookups_total",
			Help: "Total number of spot quote lookups",
		},
		[]string{"status"}, // status: success|error
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(Pricings)
	prometheus.MustRegister(PricingDuration)
	prometheus.MustRegister(SweepSamples)
	prometheus.MustRegister(QuoteLookups)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
