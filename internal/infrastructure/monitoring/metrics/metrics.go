// Package metrics exposes prometheus collectors for the resolution pipeline.
// Metrics are purely observational: nothing in the pipeline reads them back,
// and the batch outcome is identical whether or not a listener is running.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/logging"
)

const namespace = "chem2smiles"

// Outcome label values for ResolutionsTotal.
const (
	OutcomeResolved       = "resolved"
	OutcomeNotFound       = "not_found"
	OutcomeAmbiguousMatch = "ambiguous_match"
	OutcomeServiceError   = "service_error"
	OutcomeTimeout        = "timeout"
)

// Render outcome label values for RendersTotal.
const (
	RenderOK     = "ok"
	RenderFailed = "failed"
)

// Metrics bundles every collector used by the pipeline, registered on a
// private registry so repeated construction in tests never collides with
// the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	// ResolutionsTotal counts completed name resolutions by outcome.
	ResolutionsTotal *prometheus.CounterVec

	// ResolutionDuration observes wall-clock seconds per resolver call.
	ResolutionDuration prometheus.Histogram

	// RendersTotal counts structure-image render attempts by outcome.
	RendersTotal *prometheus.CounterVec

	// BatchSize observes the number of names per batch run.
	BatchSize prometheus.Histogram
}

// New constructs and registers all pipeline collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Completed name resolutions by outcome.",
	}, []string{"outcome"})

	m.ResolutionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resolution_duration_seconds",
		Help:      "Wall-clock duration of individual resolver calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})

	m.RendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renders_total",
		Help:      "Structure image render attempts by outcome.",
	}, []string{"outcome"})

	m.BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_size_names",
		Help:      "Number of input names per batch run.",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	m.registry.MustRegister(
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.RendersTotal,
		m.BatchSize,
	)
	return m
}

// ObserveResolution records one completed resolver call.
func (m *Metrics) ObserveResolution(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
	m.ResolutionDuration.Observe(elapsed.Seconds())
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(outcome string) {
	if m == nil {
		return
	}
	m.RendersTotal.WithLabelValues(outcome).Inc()
}

// ObserveBatch records the size of a batch run.
func (m *Metrics) ObserveBatch(size int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
}

// Handler returns an http.Handler serving the private registry in the
// prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts an HTTP listener exposing /metrics on addr, intended for
// long-running batch conversions.  It returns a shutdown function; errors
// from the listener (other than http.ErrServerClosed) are logged, never
// fatal — metrics are a convenience, not part of the deliverable.
func (m *Metrics) Serve(addr string, log logging.Logger) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Info("metrics listener started", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics listener failed", logging.Err(err))
		}
	}()
	return srv.Shutdown
}
