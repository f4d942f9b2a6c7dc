// Package engine implements the benchmark score aggregation passes:
// percentile imputation of missing measurements, Elo-style normalization
// of relative ratings, weighted category aggregation, overall averaging,
// and default-set selection. Every pass is a pure function of its input;
// repeated invocation with identical input is bit-for-bit deterministic
// on the rounded decimals.
package engine

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrNilCatalog is returned when an engine is built without categories.
var ErrNilCatalog = errors.New("catalog has no categories")

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// round2 rounds to two decimal places, half away from zero. All scores
// the engine emits pass through it exactly once, which is what makes
// repeated passes comparable bit-for-bit.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
