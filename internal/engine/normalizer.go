package engine

import (
	"fmt"
	"math"

	"github.com/benchlens/benchlens/internal/domain"
)

// RelativeNormalizer converts unbounded Elo-like ratings into bounded
// 0-100 scores using a pairwise win-probability model anchored to the
// best performer of the current candidate set:
//
//	winProbability = 1 / (1 + 10^((maxRating-rating)/400))
//	score          = round2(winProbability * scale)
//
// With scale 100 the anchor model (rating == maxRating) maps to 50; with
// scale 200 it maps to 100. The anchor depends on the candidate set, so
// results must be recomputed whenever the set changes. Results for one
// candidate set are never valid for another.
type RelativeNormalizer struct {
	config RelativeNormalizerConfig
}

// RelativeNormalizerConfig controls the win-probability multiplier.
type RelativeNormalizerConfig struct {
	// Scale multiplies the win probability. Only 100 and 200 are
	// supported; the value is fixed per deployment and documented, never
	// switched silently between runs.
	Scale float64 `yaml:"scale" json:"scale" validate:"eq=100|eq=200"`
}

// NewRelativeNormalizer creates a RelativeNormalizer with a validated
// scale.
func NewRelativeNormalizer(config RelativeNormalizerConfig) (*RelativeNormalizer, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RelativeNormalizer{config: config}, nil
}

// Scale returns the configured win-probability multiplier.
func (rn *RelativeNormalizer) Scale() float64 { return rn.config.Scale }

// Normalize converts one model's rating into a 0-100 score given the
// ratings of the whole candidate set (pool) for the same benchmark.
//
// A missing rating yields a missing result (ok == false), propagated as
// an absent contribution rather than zero. Degenerate pools resolve by
// policy, never by error: an empty valid pool scores 0 and a spread-less
// pool (max == min) scores 100 for every model.
func (rn *RelativeNormalizer) Normalize(rating domain.Measurement, pool []domain.Measurement) (float64, bool) {
	if !rating.Valid {
		return 0, false
	}

	maxRating := math.Inf(-1)
	minRating := math.Inf(1)
	validCount := 0
	for _, m := range pool {
		if !m.Valid {
			continue
		}
		validCount++
		if m.Value > maxRating {
			maxRating = m.Value
		}
		if m.Value < minRating {
			minRating = m.Value
		}
	}

	if validCount == 0 {
		return 0, true
	}
	if maxRating == minRating {
		return 100, true
	}

	winProbability := 1 / (1 + math.Pow(10, (maxRating-rating.Value)/400))
	return round2(winProbability * rn.config.Scale), true
}
