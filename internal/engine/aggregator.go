package engine

import "github.com/benchlens/benchlens/internal/domain"

// Contribution pairs one possibly-missing value with its weight for
// category aggregation. Values come from absolute benchmarks directly or
// from the RelativeNormalizer's output.
type Contribution struct {
	// Value is the 0-100 contribution. The missing measurement drops the
	// contribution from both numerator and denominator; it is never
	// counted as zero.
	Value domain.Measurement

	// Weight is the positive contribution weight from the category
	// definition. Non-positive weights are a configuration error rejected
	// at catalog load, so aggregation assumes they cannot occur.
	Weight float64
}

// WeightedMean combines contributions into a single 0-100 category score.
// Value*weight and weight are summed only over non-missing entries; if
// every contribution is missing the result is 0, otherwise
// round2(sum(value*weight) / sum(weight)).
//
// The function is generic: it runs once per category per model, fed a mix
// of absolute benchmark values and normalized relative scores.
func WeightedMean(contributions []Contribution) float64 {
	var weightedSum, totalWeight float64
	for _, c := range contributions {
		if !c.Value.Valid {
			continue
		}
		weightedSum += c.Value.Value * c.Weight
		totalWeight += c.Weight
	}

	if totalWeight == 0 {
		return 0
	}
	return round2(weightedSum / totalWeight)
}
