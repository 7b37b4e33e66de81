package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/engine"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/metrics"
	"github.com/contactkeval/option-pricer/internal/report"
	"github.com/contactkeval/option-pricer/internal/server"
)

func main() {
	symbol := flag.String("symbol", "", "ticker to resolve the spot from, e.g. AAPL")
	spot := flag.Float64("spot", 0, "underlying price; 0 resolves it via -symbol")
	strike := flag.Float64("strike", 0, "option strike price")
	rate := flag.Float64("rate", 0, "annual risk-free rate in percent, e.g. 5 for 5%")
	vol := flag.Float64("volatility", 0, "annual volatility in percent, e.g. 20 for 20%")
	days := flag.Float64("days", 0, "time to expiry in days")
	minEntry := flag.String("min-entry", "", "entry range lower bound, a number or an expression over spot, e.g. spot-20")
	maxEntry := flag.String("max-entry", "", "entry range upper bound, e.g. spot*1.2")
	samples := flag.Int("samples", 0, "entry prices per profit curve; 0 uses the configured default")
	outDir := flag.String("out", "", "report directory override")
	quotesCSV := flag.String("quotes-csv", "", "CSV of symbol,price rows consulted before any remote provider")
	rest := flag.Bool("rest", false, "run as REST server instead of a one-shot analysis")
	port := flag.String("port", "", "REST listen address override, e.g. :9090")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		logger.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	metrics.Init()

	prov := buildProvider(cfg, *quotesCSV)
	eng := engine.NewEngine(&engine.Config{
		Samples:   cfg.Defaults.Samples,
		EntrySpan: cfg.Defaults.EntrySpan,
	}, prov)

	if *rest {
		runServer(cfg, eng, *port)
		return
	}

	req := engine.Request{
		Symbol: *symbol,
		Spot:   *spot,
		Strike: *strike,
		// rate and volatility arrive in percent, the core wants decimals
		Rate:       *rate / 100,
		Volatility: *vol / 100,
		Days:       *days,
		MinEntry:   *minEntry,
		MaxEntry:   *maxEntry,
		Samples:    *samples,
	}

	start := time.Now()
	res, err := eng.Evaluate(context.Background(), req)
	if err != nil {
		logger.Fatalf("analysis failed: %v", err)
	}

	dir := cfg.Defaults.ReportDir
	if *outDir != "" {
		dir = *outDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Fatalf("creating report dir %s: %v", dir, err)
	}
	if err := report.WriteJSON(res, dir); err != nil {
		logger.Fatalf("writing JSON report: %v", err)
	}
	if err := report.WriteCSV(res, dir); err != nil {
		logger.Fatalf("writing CSV report: %v", err)
	}

	logger.Infof("event=done call=%.3f put=%.3f samples=%d dir=%s elapsed=%v",
		res.Values.Call, res.Values.Put, len(res.CallCurve), dir, time.Since(start))
}

// buildProvider assembles the provider chain: the local CSV file when given,
// then massive or polygon depending on which API key is configured, with the
// synthetic generator as the terminal fallback.
func buildProvider(cfg *config.Config, quotesCSV string) data.Provider {
	var prov data.Provider = data.NewSyntheticProvider(nil)

	switch {
	case cfg.Providers.MassiveAPIKey != "":
		prov = data.NewMassiveDataProvider(cfg.Providers.MassiveAPIKey, prov)
		logger.Infof("event=provider_enabled provider=massive")
	case cfg.Providers.PolygonAPIKey != "":
		prov = data.NewPolygonDataProvider(cfg.Providers.PolygonAPIKey, prov)
		logger.Infof("event=provider_enabled provider=polygon")
	default:
		logger.Infof("event=provider_enabled provider=synthetic")
	}

	if quotesCSV == "" {
		quotesCSV = cfg.Providers.QuotesCSV
	}
	if quotesCSV != "" {
		prov = data.NewLocalCSVProvider(quotesCSV, prov)
		logger.Infof("event=provider_enabled provider=localcsv path=%s", quotesCSV)
	}
	return prov
}

// runServer starts the REST server and blocks until SIGINT or SIGTERM.
func runServer(cfg *config.Config, eng *engine.Engine, portOverride string) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := cfg.Server.Addr()
	if portOverride != "" {
		addr = portOverride
	}

	srv := &http.Server{Addr: addr, Handler: server.NewHandler(eng).Router()}

	go func() {
		logger.Infof("event=server_start addr=%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("event=server_shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
}
