// Package metrics instruments quadrature and model evaluations with
// Prometheus collectors on a private registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dbsmedya/goinertia/internal/quad"
)

const namespace = "goinertia"

// Metrics owns the collectors of one run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	integrals        *prometheus.CounterVec
	integralFailures *prometheus.CounterVec
	evalsPerIntegral prometheus.Histogram
	evaluations      *prometheus.CounterVec
	batchDuration    *prometheus.HistogramVec
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		integrals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrals_total",
			Help:      "Number of quadratures performed, by quantity.",
		}, []string{"quantity"}),
		integralFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integral_failures_total",
			Help:      "Number of quadratures that failed to converge, by quantity.",
		}, []string{"quantity"}),
		evalsPerIntegral: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "integrand_evaluations",
			Help:      "Integrand evaluations per quadrature.",
			Buckets:   prometheus.ExponentialBuckets(15, 2, 8),
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Number of model evaluations, by operation.",
		}, []string{"operation"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of each analysis batch.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"batch"}),
	}

	m.registry.MustRegister(
		m.integrals,
		m.integralFailures,
		m.evalsPerIntegral,
		m.evaluations,
		m.batchDuration,
	)
	return m
}

// ObserveIntegral records one quadrature. It satisfies cosmology.Recorder.
func (m *Metrics) ObserveIntegral(quantity string, res quad.Result, err error) {
	if m == nil {
		return
	}
	m.integrals.WithLabelValues(quantity).Inc()
	if err != nil {
		m.integralFailures.WithLabelValues(quantity).Inc()
		return
	}
	m.evalsPerIntegral.Observe(float64(res.Evaluations))
}

// ObserveEvaluation counts one model evaluation.
func (m *Metrics) ObserveEvaluation(operation string) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(operation).Inc()
}

// ObserveBatch records how long a batch took.
func (m *Metrics) ObserveBatch(batch string, d time.Duration) {
	if m == nil {
		return
	}
	m.batchDuration.WithLabelValues(batch).Observe(d.Seconds())
}

// Registry returns the private registry, for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all collected metrics in the Prometheus text format,
// for pickup by a node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
