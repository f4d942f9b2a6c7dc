package engine

import (
	"fmt"
	"sort"

	"github.com/benchlens/benchlens/internal/domain"
)

// DefaultSelector marks a bounded subset of scored models for initial
// display: the highest-overall models, capped in total and per provider.
// Selection is recomputed from scratch whenever the candidate set or any
// score changes; nothing is persisted.
type DefaultSelector struct {
	config DefaultSelectorConfig
}

// DefaultSelectorConfig bounds the selected subset.
type DefaultSelectorConfig struct {
	// MaxModels caps the total number of selected models.
	MaxModels int `yaml:"max_models" json:"max_models" validate:"min=1"`

	// MaxPerProvider caps selected models sharing a provider.
	MaxPerProvider int `yaml:"max_per_provider" json:"max_per_provider" validate:"min=1"`
}

// NewDefaultSelector creates a DefaultSelector with validated caps.
func NewDefaultSelector(config DefaultSelectorConfig) (*DefaultSelector, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &DefaultSelector{config: config}, nil
}

// Select returns the ids of the models to mark as default. Models are
// ranked descending by overall score with a stable sort, so ties keep
// the input order. The ranked list is walked greedily: a model is
// selected while the running total is below MaxModels and its provider's
// running count is below MaxPerProvider; otherwise it is skipped and the
// walk continues, leaving it eligible for later manual selection.
func (ds *DefaultSelector) Select(models []domain.ScoredModel) map[string]bool {
	ranked := make([]int, len(models))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return models[ranked[a]].Scores[domain.OverallKey] > models[ranked[b]].Scores[domain.OverallKey]
	})

	selected := make(map[string]bool, ds.config.MaxModels)
	perProvider := make(map[string]int)
	for _, idx := range ranked {
		if len(selected) >= ds.config.MaxModels {
			break
		}
		m := models[idx]
		if perProvider[m.Provider] >= ds.config.MaxPerProvider {
			continue
		}
		selected[m.ID] = true
		perProvider[m.Provider]++
	}
	return selected
}
