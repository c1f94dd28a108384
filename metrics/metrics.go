// Package metrics exposes Prometheus counters for long-running analysis
// modes. The core packages stay pure; observations happen only at the
// analysis boundary.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the speccover metric instruments.
type Collector struct {
	DocumentsIngested     prometheus.Counter
	ScenariosParsed       prometheus.Counter
	SimilarityEvaluations prometheus.Counter
	AnalysesCompleted     prometheus.Counter
	AnalysisDuration      prometheus.Histogram

	registry *prometheus.Registry
}

// NewCollector creates a collector with its own registry, so parallel
// analyses and tests never collide on process-global metric state.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		DocumentsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "speccover_documents_ingested_total",
			Help: "Documents read and reduced to plain text.",
		}),
		ScenariosParsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "speccover_scenarios_parsed_total",
			Help: "Scenarios recovered by the parser.",
		}),
		SimilarityEvaluations: factory.NewCounter(prometheus.CounterOpts{
			Name: "speccover_similarity_evaluations_total",
			Help: "Pairwise similarity computations performed.",
		}),
		AnalysesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "speccover_analyses_completed_total",
			Help: "Full parse-match-cluster analysis runs completed.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "speccover_analysis_duration_seconds",
			Help:    "Wall time of full analysis runs.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: registry,
	}
}

// Handler returns the HTTP handler serving the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve runs a metrics endpoint on addr until the context is canceled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logger.Info("Metrics endpoint listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
