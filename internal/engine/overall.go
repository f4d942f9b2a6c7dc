package engine

import "github.com/benchlens/benchlens/internal/domain"

// OverallScore folds a model's category scores into one summary number:
// round2 of the plain mean over applicable categories.
//
// A category whose Requires capability the model lacks is dropped from
// the averaged list entirely for that model: it contributes to neither
// numerator nor denominator. With no applicable categories the result
// is 0.
func OverallScore(model domain.Model, categories []domain.Category, scores map[string]float64) float64 {
	var sum float64
	var count int
	for _, cat := range categories {
		if cat.Requires != "" && !model.Supports(cat.Requires) {
			continue
		}
		sum += scores[cat.ID]
		count++
	}

	if count == 0 {
		return 0
	}
	return round2(sum / float64(count))
}
