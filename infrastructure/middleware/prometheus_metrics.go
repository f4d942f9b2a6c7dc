// Package middleware provides cross-cutting concerns for the score
// aggregation engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/benchlens/benchlens/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements
// MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks compute-pass latency, scored-model throughput,
// and the current default-set size.
type PrometheusMetrics struct {
	computeLatency   *prometheus.HistogramVec
	modelsScored     *prometheus.CounterVec
	operationCounter *prometheus.CounterVec
	systemGauges     *prometheus.GaugeVec
	scoreHistogram   *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance registered in
// the default Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a PrometheusMetrics instance registered
// in the given registry. Tests use a private registry to avoid duplicate
// registration across cases.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		computeLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_compute_duration_seconds",
				Help:    "Execution time of score computation passes.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		modelsScored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_models_scored_total",
				Help: "Total number of models scored across all compute passes.",
			},
			[]string{"operation"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_operations_total",
				Help: "Total number of engine operations performed.",
			},
			[]string{"operation", "status"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "engine_system_state",
				Help: "Current system state values for the score engine.",
			},
			[]string{"metric"},
		),
		scoreHistogram: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_score_distribution",
				Help:    "Distribution of computed category and overall scores.",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.computeLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "models_scored_total":
		pm.modelsScored.WithLabelValues("compute").Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, "success").Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in the score distribution histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	pm.scoreHistogram.WithLabelValues(metric).Observe(value)
}
