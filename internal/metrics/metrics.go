package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	lifecycleOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hypnoctl",
			Subsystem: "lifecycle",
			Name:      "operations_total",
			Help:      "Number of lifecycle operations invoked, by operation.",
		}, []string{"service", "op"},
	)
	lifecycleResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hypnoctl",
			Subsystem: "lifecycle",
			Name:      "results_total",
			Help:      "Number of lifecycle results observed, by operation and state.",
		}, []string{"service", "op", "state"},
	)
	lifecycleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hypnoctl",
			Subsystem: "lifecycle",
			Name:      "errors_total",
			Help:      "Number of lifecycle operations that failed with a fatal error.",
		}, []string{"service", "op"},
	)
	opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hypnoctl",
			Subsystem: "lifecycle",
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock time spent in lifecycle operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "op"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{lifecycleOps, lifecycleResults, lifecycleErrors, opDuration}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the DefaultGatherer.
// The caller is responsible for starting an HTTP server and wiring the route.
func Handler() http.Handler { return promhttp.Handler() }

// Below are lightweight helpers used by internal packages to record metrics.
// They no-op if Register hasn't been called.

func IncOp(service, op string) {
	if regOK.Load() {
		lifecycleOps.WithLabelValues(service, op).Inc()
	}
}

func IncResult(service, op, state string) {
	if regOK.Load() {
		lifecycleResults.WithLabelValues(service, op, state).Inc()
	}
}

func IncError(service, op string) {
	if regOK.Load() {
		lifecycleErrors.WithLabelValues(service, op).Inc()
	}
}

func ObserveDuration(service, op string, d time.Duration) {
	if regOK.Load() {
		opDuration.WithLabelValues(service, op).Observe(d.Seconds())
	}
}
