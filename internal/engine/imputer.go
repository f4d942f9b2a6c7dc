package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/benchlens/benchlens/internal/domain"
)

// PercentileImputer computes one fallback value per benchmark from the
// distribution of valid values across all models, used to fill missing
// entries before normalization and aggregation.
//
// The fallback is the sorted valid value at rank floor(n*p), clamped to
// the last index. Choosing p below 0.5 for accuracy-like benchmarks (and
// above 0.5 for rate-like ones where lower is better) makes the fallback
// penalize missing data rather than reward it.
//
// Imputation runs once per compute pass per benchmark; categories that
// share a benchmark share its fallback. It depends only on which models
// have a valid value for that benchmark, never on category membership.
type PercentileImputer struct {
	config PercentileImputerConfig
}

// PercentileImputerConfig holds the percentile rank for one benchmark.
type PercentileImputerConfig struct {
	// Percentile is the rank p in [0, 1] used to pick the fallback from
	// the ascending-sorted valid values.
	Percentile float64 `yaml:"percentile" json:"percentile" validate:"min=0,max=1"`
}

// NewPercentileImputer creates a PercentileImputer with a validated
// percentile rank.
func NewPercentileImputer(config PercentileImputerConfig) (*PercentileImputer, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &PercentileImputer{config: config}, nil
}

// Percentile returns the configured percentile rank.
func (pi *PercentileImputer) Percentile() float64 { return pi.config.Percentile }

// Fallback computes the substitute value for a benchmark from the raw
// measurements of every model. Missing measurements are excluded from the
// distribution. With no valid values at all the fallback is 0.
func (pi *PercentileImputer) Fallback(measurements []domain.Measurement) float64 {
	valid := make([]float64, 0, len(measurements))
	for _, m := range measurements {
		if m.Valid {
			valid = append(valid, m.Value)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	sort.Float64s(valid)

	idx := int(math.Floor(float64(len(valid)) * pi.config.Percentile))
	if idx > len(valid)-1 {
		idx = len(valid) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return valid[idx]
}
