package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlens/benchlens/internal/domain"
)

func scoredModel(id, provider string, overall float64) domain.ScoredModel {
	return domain.ScoredModel{
		Model:  domain.Model{ID: id, Name: id, Provider: provider},
		Scores: map[string]float64{domain.OverallKey: overall},
	}
}

func TestNewDefaultSelector(t *testing.T) {
	t.Run("valid caps", func(t *testing.T) {
		_, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 20, MaxPerProvider: 4})
		require.NoError(t, err)
	})

	t.Run("zero caps rejected", func(t *testing.T) {
		_, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 0, MaxPerProvider: 4})
		assert.Error(t, err)

		_, err = NewDefaultSelector(DefaultSelectorConfig{MaxModels: 20, MaxPerProvider: 0})
		assert.Error(t, err)
	})
}

func TestDefaultSelectorSelect(t *testing.T) {
	t.Run("per-provider cap binds regardless of rank", func(t *testing.T) {
		// Ten ProviderX models outrank everything else; only four may be
		// selected, the remaining slots go to lower-ranked providers.
		var models []domain.ScoredModel
		for i := 0; i < 10; i++ {
			models = append(models, scoredModel(fmt.Sprintf("x%d", i), "ProviderX", 99-float64(i)))
		}
		for i := 0; i < 5; i++ {
			models = append(models, scoredModel(fmt.Sprintf("y%d", i), "ProviderY", 50-float64(i)))
		}

		selector, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 8, MaxPerProvider: 4})
		require.NoError(t, err)
		selected := selector.Select(models)

		var xCount, yCount int
		for id := range selected {
			switch id[0] {
			case 'x':
				xCount++
			case 'y':
				yCount++
			}
		}
		assert.Equal(t, 4, xCount, "exactly four ProviderX models despite ten outranking everyone")
		assert.Equal(t, 4, yCount)

		// The four ProviderX slots go to its top-ranked models.
		for _, id := range []string{"x0", "x1", "x2", "x3"} {
			assert.True(t, selected[id], "expected %s selected", id)
		}
		assert.False(t, selected["x4"])
	})

	t.Run("total cap binds", func(t *testing.T) {
		models := []domain.ScoredModel{
			scoredModel("a", "P1", 90),
			scoredModel("b", "P2", 80),
			scoredModel("c", "P3", 70),
		}

		selector, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 2, MaxPerProvider: 4})
		require.NoError(t, err)
		selected := selector.Select(models)

		assert.Len(t, selected, 2)
		assert.True(t, selected["a"])
		assert.True(t, selected["b"])
	})

	t.Run("ties preserve input order", func(t *testing.T) {
		models := []domain.ScoredModel{
			scoredModel("first", "P1", 75),
			scoredModel("second", "P2", 75),
			scoredModel("third", "P3", 75),
		}

		selector, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 2, MaxPerProvider: 1})
		require.NoError(t, err)
		selected := selector.Select(models)

		assert.True(t, selected["first"])
		assert.True(t, selected["second"])
		assert.False(t, selected["third"])
	})

	t.Run("skipped models stay skipped, not shifted", func(t *testing.T) {
		// When a provider's cap is hit, its further models are skipped
		// but the walk continues with other providers.
		models := []domain.ScoredModel{
			scoredModel("p1a", "P1", 90),
			scoredModel("p1b", "P1", 89),
			scoredModel("p2a", "P2", 10),
		}

		selector, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 2, MaxPerProvider: 1})
		require.NoError(t, err)
		selected := selector.Select(models)

		assert.True(t, selected["p1a"])
		assert.False(t, selected["p1b"])
		assert.True(t, selected["p2a"])
	})

	t.Run("empty input", func(t *testing.T) {
		selector, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 5, MaxPerProvider: 2})
		require.NoError(t, err)
		assert.Empty(t, selector.Select(nil))
	})

	t.Run("input order not mutated", func(t *testing.T) {
		models := []domain.ScoredModel{
			scoredModel("low", "P1", 10),
			scoredModel("high", "P2", 90),
		}

		selector, err := NewDefaultSelector(DefaultSelectorConfig{MaxModels: 1, MaxPerProvider: 1})
		require.NoError(t, err)
		selector.Select(models)

		assert.Equal(t, "low", models[0].ID)
		assert.Equal(t, "high", models[1].ID)
	})
}
