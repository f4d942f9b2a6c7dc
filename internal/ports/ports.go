// Package ports defines the interfaces between the score aggregation
// engine and its infrastructure adapters.
package ports

import (
	"context"
	"time"

	"github.com/benchlens/benchlens/internal/domain"
)

// RecordSource supplies the finite, already-merged model collection the
// engine scores. Implementations read a static artifact produced by the
// upstream merge pipeline; the engine itself performs no I/O.
type RecordSource interface {
	// Load returns every model record. The returned slice is owned by the
	// caller; implementations must not retain or mutate it afterwards.
	// Ordering must be deterministic because default-set tie-breaking
	// preserves input order.
	Load(ctx context.Context) ([]domain.Model, error)
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations should integrate with observability platforms
// like Prometheus, OpenTelemetry, or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, useful for tracking
	// distributions like score spreads or pool sizes.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// PassObserver receives notifications around each engine compute pass
// (impute, normalize, aggregate, overall, select). Implementations add
// tracing or logging without the engine depending on any telemetry SDK.
type PassObserver interface {
	// PassStart is called before a pass runs. The returned context is
	// threaded into the pass and back into PassEnd, letting observers
	// carry span state.
	PassStart(ctx context.Context, pass string) context.Context

	// PassEnd is called after the pass completes with the number of
	// models it touched.
	PassEnd(ctx context.Context, pass string, models int)
}
