// ABOUTME: Entry point for the rainwater harvesting backend service
// ABOUTME: Loads the rainfall dataset and rate card, then serves the assessment API

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Eswari2225/DropSaviors/backend/cache"
	"github.com/Eswari2225/DropSaviors/backend/config"
	"github.com/Eswari2225/DropSaviors/backend/dataset"
	"github.com/Eswari2225/DropSaviors/backend/handlers"
	"github.com/Eswari2225/DropSaviors/backend/logger"
	"github.com/Eswari2225/DropSaviors/backend/metrics"
	"github.com/Eswari2225/DropSaviors/backend/middleware"
	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/ratecard"
	"github.com/Eswari2225/DropSaviors/backend/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize structured logging
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	slog.Info("Starting rainwater harvesting backend",
		"dataset_source", cfg.DatasetSource(),
		"forecast_start_year", cfg.ForecastStartYear,
		"forecast_end_year", cfg.ForecastEndYear,
	)

	card, err := ratecard.Load(cfg.RateCardPath)
	if err != nil {
		return err
	}
	if cfg.RateCardPath != "" {
		slog.Info("Rate card loaded", "path", cfg.RateCardPath)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// Initialize forecast cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	forecasts := cache.New[models.ForecastSeries](cacheTTL)
	defer forecasts.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	store := dataset.NewStore()
	source, err := newSource(cfg)
	if err != nil {
		return err
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}

	loaderOpts := dataset.LoaderOptions{
		MaxRetries: uint64(cfg.DatasetLoadRetries),
		Metrics:    rec,
		OnSwap: func(*dataset.Snapshot) {
			forecasts.Purge()
		},
	}
	loader := dataset.NewLoader(source, store, loaderOpts)
	if _, err := loader.LoadOnce(ctx); err != nil {
		if source.Name() == "sample" {
			return err
		}
		slog.Warn("Configured dataset unavailable, serving built-in sample", "source", source.Name(), "error", err)
		if _, err := dataset.NewLoader(dataset.NewSampleSource(), store, loaderOpts).LoadOnce(ctx); err != nil {
			return err
		}
	}
	go loader.Run(ctx, cfg.DatasetReloadInterval)

	assessor := services.NewAssessor(store, card, forecasts, services.AssessorOptions{
		StartYear:   cfg.ForecastStartYear,
		EndYear:     cfg.ForecastEndYear,
		Concurrency: cfg.OutlookConcurrency,
		Metrics:     rec,
	})
	h := handlers.NewHandler(cfg, store, assessor, card)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h, rec),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Shutdown complete")
	return nil
}

// newSource picks the rainfall source named by the configuration.
func newSource(cfg *config.Config) (dataset.Source, error) {
	switch cfg.DatasetSource() {
	case "postgres":
		return dataset.NewPostgresSource(cfg.DatabaseURL)
	case "csv":
		return dataset.NewCSVSource(cfg.DatasetPath), nil
	default:
		return dataset.NewSampleSource(), nil
	}
}

// newMux registers every API route behind logging, CORS, rate limiting and
// request metrics, plus a CORS preflight catch-all and /metrics.
func newMux(cfg *config.Config, h *handlers.Handler, rec *metrics.Recorder) *http.ServeMux {
	cors := middleware.CORSFor(cfg.CORSAllowedOrigins)

	var limit func(http.HandlerFunc) http.HandlerFunc
	if cfg.RateLimitEnabled {
		limit = middleware.ByMethod(
			middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute),
			middleware.NewRateLimiter(cfg.RateLimitWrite, time.Minute),
			middleware.ClientIP,
		)
		slog.Info("Rate limiting enabled", "read_per_minute", cfg.RateLimitDefault, "write_per_minute", cfg.RateLimitWrite)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			limit,
			middleware.Instrument(rec, route.Path),
		))
	}

	// Preflight requests stop in the CORS middleware
	mux.HandleFunc("OPTIONS /", middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, middleware.LogRequest, cors))

	// Scrapes log at Debug, see the quiet paths in LogRequest
	mux.HandleFunc("GET /metrics", middleware.Chain(rec.Handler().ServeHTTP, middleware.LogRequest))
	return mux
}
