package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMetrics captures collector calls for assertions.
type recordingMetrics struct {
	counters map[string]float64
}

func (r *recordingMetrics) RecordLatency(string, time.Duration, map[string]string) {}

func (r *recordingMetrics) RecordCounter(metric string, value float64, _ map[string]string) {
	if r.counters == nil {
		r.counters = make(map[string]float64)
	}
	r.counters[metric] += value
}

func (r *recordingMetrics) RecordGauge(string, float64, map[string]string)     {}
func (r *recordingMetrics) RecordHistogram(string, float64, map[string]string) {}

func TestOTelPassObserver(t *testing.T) {
	metrics := &recordingMetrics{}
	observer := NewOTelPassObserver(metrics)

	ctx := observer.PassStart(context.Background(), "aggregate")
	require.NotNil(t, ctx)
	observer.PassEnd(ctx, "aggregate", 5)
	observer.PassEnd(observer.PassStart(ctx, "select"), "select", 5)

	assert.Equal(t, 1.0, metrics.counters["pass_aggregate"])
	assert.Equal(t, 1.0, metrics.counters["pass_select"])
}

func TestOTelPassObserverWithoutMetrics(t *testing.T) {
	observer := NewOTelPassObserver(nil)

	ctx := observer.PassStart(context.Background(), "impute")
	assert.NotPanics(t, func() { observer.PassEnd(ctx, "impute", 0) })
}
