package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatherNames collects the metric family names currently in the registry.
func gatherNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestPrometheusMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordLatency("engine_compute", 25*time.Millisecond, nil)
	pm.RecordCounter("models_scored_total", 12, nil)
	pm.RecordCounter("catalog_reload", 1, nil)
	pm.RecordGauge("default_models", 8, nil)
	pm.RecordHistogram("overall", 69.04, nil)

	names := gatherNames(t, reg)
	assert.True(t, names["engine_compute_duration_seconds"])
	assert.True(t, names["engine_models_scored_total"])
	assert.True(t, names["engine_operations_total"])
	assert.True(t, names["engine_system_state"])
	assert.True(t, names["engine_score_distribution"])
}

func TestPrometheusMetricsValues(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordCounter("models_scored_total", 5, nil)
	pm.RecordCounter("models_scored_total", 7, nil)
	pm.RecordGauge("default_models", 3, nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				byName[f.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				byName[f.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 12.0, byName["engine_models_scored_total"])
	assert.Equal(t, 3.0, byName["engine_system_state"])
}
