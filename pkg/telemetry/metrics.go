// Package telemetry exposes prometheus counters and histograms for backtrack
// count, propagation depth, and run duration, the server-side counterpart to
// the teacher pack's query-side Prometheus client in
// pkg/monitoring/prometheus. Metrics implements wfc.Recorder so an Engine can
// report directly to it via Engine.SetRecorder.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its own registry so a process can run several independent
// engines (e.g. under test) without colliding on the default global
// registerer.
type Metrics struct {
	registry *prometheus.Registry

	backtracksTotal  prometheus.Counter
	propagationDepth prometheus.Histogram
	runDuration      prometheus.Histogram
	runsTotal        *prometheus.CounterVec
}

// New registers and returns a fresh set of collectors under namespace
// "wfcgen", subsystem "engine".
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		backtracksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wfcgen",
			Subsystem: "engine",
			Name:      "backtracks_total",
			Help:      "Total backtracks performed across all runs.",
		}),
		propagationDepth: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wfcgen",
			Subsystem: "engine",
			Name:      "propagation_depth",
			Help:      "Cells visited per propagateFrom call.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wfcgen",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a single Run call.",
			Buckets:   prometheus.DefBuckets,
		}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wfcgen",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Completed runs, labeled by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveBacktrack implements wfc.Recorder.
func (m *Metrics) ObserveBacktrack() {
	m.backtracksTotal.Inc()
}

// ObservePropagationDepth implements wfc.Recorder.
func (m *Metrics) ObservePropagationDepth(depth int) {
	m.propagationDepth.Observe(float64(depth))
}

// ObserveRunDuration implements wfc.Recorder.
func (m *Metrics) ObserveRunDuration(d time.Duration, accepted bool) {
	m.runDuration.Observe(d.Seconds())
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the /metrics HTTP handler for m's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs an HTTP server exposing m on addr at /metrics until ctx is
// canceled, the same serve-until-canceled shape the teacher's long-running
// collectors use for their background loops.
func Serve(ctx context.Context, addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
