package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlens/benchlens/internal/domain"
)

func TestNewRelativeNormalizer(t *testing.T) {
	t.Run("scale 100", func(t *testing.T) {
		rn, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: 100})
		require.NoError(t, err)
		assert.Equal(t, 100.0, rn.Scale())
	})

	t.Run("scale 200", func(t *testing.T) {
		_, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: 200})
		require.NoError(t, err)
	})

	t.Run("other scales rejected", func(t *testing.T) {
		for _, scale := range []float64{0, 50, 150, 1000} {
			_, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: scale})
			assert.Error(t, err, "scale %g should be rejected", scale)
		}
	})

	t.Run("scale validation never panics", func(t *testing.T) {
		// Float fields must use float-safe validator tags; a bad scale is
		// an error return, never a panic.
		for _, scale := range []float64{100, 200, 150, -1} {
			assert.NotPanics(t, func() {
				_, _ = NewRelativeNormalizer(RelativeNormalizerConfig{Scale: scale})
			}, "scale %g", scale)
		}
	})
}

func TestRelativeNormalizerNormalize(t *testing.T) {
	rn, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: 100})
	require.NoError(t, err)

	t.Run("anchor model maps to half the scale", func(t *testing.T) {
		pool := measurements(1600, 1500)
		score, ok := rn.Normalize(domain.NewMeasurement(1600), pool)
		require.True(t, ok)
		assert.Equal(t, 50.0, score)
	})

	t.Run("hundred point gap", func(t *testing.T) {
		// 1/(1+10^(100/400)) = 0.359935..., scaled and rounded.
		pool := measurements(1600, 1500)
		score, ok := rn.Normalize(domain.NewMeasurement(1500), pool)
		require.True(t, ok)
		assert.Equal(t, 35.99, score)
	})

	t.Run("fifty point gap", func(t *testing.T) {
		// 1/(1+10^(50/400)) = 0.428539..., scaled and rounded.
		pool := measurements(1600, 1550)
		score, ok := rn.Normalize(domain.NewMeasurement(1550), pool)
		require.True(t, ok)
		assert.Equal(t, 42.85, score)
	})

	t.Run("no spread scores everyone 100", func(t *testing.T) {
		pool := measurements(1500, 1500, 1500)
		for _, m := range pool {
			score, ok := rn.Normalize(m, pool)
			require.True(t, ok)
			assert.Equal(t, 100.0, score)
		}
	})

	t.Run("missing rating propagates as missing", func(t *testing.T) {
		pool := measurements(1600, 1500)
		_, ok := rn.Normalize(domain.Measurement{}, pool)
		assert.False(t, ok)
	})

	t.Run("missing entries excluded from anchor search", func(t *testing.T) {
		pool := append(measurements(1600, 1500), domain.Measurement{})
		score, ok := rn.Normalize(domain.NewMeasurement(1600), pool)
		require.True(t, ok)
		assert.Equal(t, 50.0, score)
	})

	t.Run("empty valid pool scores zero", func(t *testing.T) {
		score, ok := rn.Normalize(domain.NewMeasurement(1500), []domain.Measurement{{}, {}})
		require.True(t, ok)
		assert.Equal(t, 0.0, score)
	})

	t.Run("anchor sensitivity: removing the top model shifts everyone", func(t *testing.T) {
		withTop := measurements(1700, 1600, 1500)
		withoutTop := measurements(1600, 1500)

		before, ok := rn.Normalize(domain.NewMeasurement(1600), withTop)
		require.True(t, ok)
		after, ok := rn.Normalize(domain.NewMeasurement(1600), withoutTop)
		require.True(t, ok)

		assert.Equal(t, 35.99, before)
		assert.Equal(t, 50.0, after)
		assert.NotEqual(t, before, after)
	})
}

func TestRelativeNormalizerScale200(t *testing.T) {
	rn, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: 200})
	require.NoError(t, err)

	pool := measurements(1600, 1500)

	top, ok := rn.Normalize(domain.NewMeasurement(1600), pool)
	require.True(t, ok)
	assert.Equal(t, 100.0, top)

	second, ok := rn.Normalize(domain.NewMeasurement(1500), pool)
	require.True(t, ok)
	assert.Equal(t, 71.99, second)
}

func TestRelativeNormalizerBoundedOutput(t *testing.T) {
	rn, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: 100})
	require.NoError(t, err)

	// Even an extreme negative outlier stays within [0, 100].
	pool := measurements(3000, 1500, 200, -500)
	for _, m := range pool {
		score, ok := rn.Normalize(m, pool)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
