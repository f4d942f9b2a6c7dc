package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benchlens/benchlens/internal/domain"
)

func TestWeightedMean(t *testing.T) {
	testCases := []struct {
		name          string
		contributions []Contribution
		want          float64
	}{
		{
			// Missing entries drop from numerator and denominator:
			// (80*2 + 60*1) / (2+1) = 73.333... -> 73.33.
			name: "missing value excluded entirely",
			contributions: []Contribution{
				{Value: domain.NewMeasurement(80), Weight: 2},
				{Value: domain.Measurement{}, Weight: 5},
				{Value: domain.NewMeasurement(60), Weight: 1},
			},
			want: 73.33,
		},
		{
			name: "all missing yields zero",
			contributions: []Contribution{
				{Value: domain.Measurement{}, Weight: 3},
				{Value: domain.Measurement{}, Weight: 1},
			},
			want: 0,
		},
		{
			name:          "no contributions yields zero",
			contributions: nil,
			want:          0,
		},
		{
			name: "single contribution returns its value",
			contributions: []Contribution{
				{Value: domain.NewMeasurement(87.5), Weight: 0.5},
			},
			want: 87.5,
		},
		{
			name: "weights need not sum to one",
			contributions: []Contribution{
				{Value: domain.NewMeasurement(90), Weight: 5},
				{Value: domain.NewMeasurement(42.85), Weight: 4},
			},
			// (450 + 171.4) / 9 = 69.0444... -> 69.04.
			want: 69.04,
		},
		{
			name: "equal weights is the plain mean",
			contributions: []Contribution{
				{Value: domain.NewMeasurement(70), Weight: 1},
				{Value: domain.NewMeasurement(80), Weight: 1},
			},
			want: 75,
		},
		{
			name: "result rounds to two decimals",
			contributions: []Contribution{
				{Value: domain.NewMeasurement(100), Weight: 1},
				{Value: domain.NewMeasurement(0.01), Weight: 2},
			},
			// 100.02/3 = 33.34 after rounding.
			want: 33.34,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeightedMean(tc.contributions))
		})
	}
}

func TestWeightedMeanBounded(t *testing.T) {
	// Contributions within [0, 100] cannot average outside it, whatever
	// the weights.
	contributions := []Contribution{
		{Value: domain.NewMeasurement(0), Weight: 0.1},
		{Value: domain.NewMeasurement(100), Weight: 9},
		{Value: domain.NewMeasurement(55.55), Weight: 3.3},
	}

	got := WeightedMean(contributions)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}
