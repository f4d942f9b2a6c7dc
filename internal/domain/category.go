package domain

import (
	"fmt"
	"math"
)

// BenchmarkKind distinguishes how a raw benchmark value is interpreted
// before category aggregation.
type BenchmarkKind string

const (
	// KindAbsolute marks benchmarks already expressed on a 0-100 scale;
	// their values feed the weighted average directly.
	KindAbsolute BenchmarkKind = "absolute"

	// KindRelative marks Elo-like ratings that are only comparable within
	// the same benchmark across models and must be normalized against the
	// current candidate set before aggregation.
	KindRelative BenchmarkKind = "relative"
)

// BenchmarkRef is one weighted contribution to a category score.
type BenchmarkRef struct {
	// Key names the benchmark in each model's BenchmarkRecord.
	Key string `json:"key"`

	// Weight is the contribution weight. Weights are positive and need
	// not sum to any fixed total.
	Weight float64 `json:"weight"`

	// Kind selects absolute or relative interpretation of the raw value.
	Kind BenchmarkKind `json:"kind"`
}

// Category is a named grouping of weighted benchmark contributions that
// produces one comparable 0-100 score per model.
type Category struct {
	// ID is the category's score key. It must be unique and must not be
	// OverallKey.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Benchmarks is the ordered contribution list.
	Benchmarks []BenchmarkRef `json:"benchmarks"`

	// Requires optionally names a capability a model must have for this
	// category to count toward its overall average. Empty means the
	// category applies to every model.
	Requires Capability `json:"requires,omitempty"`

	// Enabled and LowerIsBetter are presentation flags carried through
	// for the rendering layer; the engine's math ignores both.
	Enabled       bool `json:"enabled"`
	LowerIsBetter bool `json:"lower_is_better"`
}

// ImputationRule designates one benchmark whose missing values are filled
// from the percentile of its valid-value distribution. The percentile is
// chosen so the fallback penalizes missing data (low percentile for
// accuracy-like benchmarks, high for rate-like ones where lower is better).
type ImputationRule struct {
	// Benchmark is the benchmark key the rule applies to.
	Benchmark string `json:"benchmark"`

	// Percentile is the rank p in [0, 1]; the fallback is the sorted
	// valid value at index floor(n*p), clamped to the last index.
	Percentile float64 `json:"percentile"`
}

// SelectionPolicy bounds the default display subset.
type SelectionPolicy struct {
	// MaxModels caps the total number of auto-selected models.
	MaxModels int `json:"max_models"`

	// MaxPerProvider caps auto-selected models per provider.
	MaxPerProvider int `json:"max_per_provider"`
}

// ProviderStyle is presentation-only provider metadata (chart colors).
// The engine carries it for the rendering layer but never reads it.
type ProviderStyle struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Catalog is the engine's immutable configuration: the category set,
// imputation rules, normalization scale, and selection caps. It is loaded
// once at startup and passed explicitly into the engine; nothing mutates
// it at computation time.
type Catalog struct {
	// Categories defines every category score the engine produces.
	Categories []Category `json:"categories"`

	// Imputation lists the benchmarks that receive percentile fallbacks
	// for missing values before normalization and aggregation.
	Imputation []ImputationRule `json:"imputation,omitempty"`

	// Scale multiplies the pairwise win probability when normalizing
	// relative benchmarks. 100 maps the top-rated model to 50; 200 maps
	// it to 100.
	Scale float64 `json:"scale"`

	// Selection bounds the default display subset.
	Selection SelectionPolicy `json:"selection"`

	// Providers is presentation-only styling passed through to consumers.
	Providers []ProviderStyle `json:"providers,omitempty"`
}

// Validate checks the structural invariants the engine relies on at
// computation time: at least one category, unique ids, positive finite
// weights, known kinds and capabilities, a supported scale, sane
// percentiles, and positive selection caps. Configuration errors are
// rejected here, at load time, so they are never encountered during a
// compute pass.
func (c Catalog) Validate() error {
	verr := NewValidationError("catalog")

	if len(c.Categories) == 0 {
		verr.AddError("at least one category is required")
	}
	if c.Scale != 100 && c.Scale != 200 {
		verr.AddError(fmt.Sprintf("scale must be 100 or 200, got %g", c.Scale))
	}
	if c.Selection.MaxModels < 1 {
		verr.AddError("selection.max_models must be at least 1")
	}
	if c.Selection.MaxPerProvider < 1 {
		verr.AddError("selection.max_per_provider must be at least 1")
	}

	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		switch {
		case cat.ID == "":
			verr.AddError("category id cannot be empty")
		case cat.ID == OverallKey:
			verr.AddError(fmt.Sprintf("category id %q is reserved", OverallKey))
		case seen[cat.ID]:
			verr.AddError(fmt.Sprintf("duplicate category id %q", cat.ID))
		}
		seen[cat.ID] = true

		if len(cat.Benchmarks) == 0 {
			verr.AddError(fmt.Sprintf("category %q has no benchmark contributions", cat.ID))
		}
		for _, ref := range cat.Benchmarks {
			if ref.Key == "" {
				verr.AddError(fmt.Sprintf("category %q has a contribution with an empty key", cat.ID))
			}
			if ref.Weight <= 0 || math.IsNaN(ref.Weight) || math.IsInf(ref.Weight, 0) {
				verr.AddError(fmt.Sprintf("category %q benchmark %q has invalid weight %g", cat.ID, ref.Key, ref.Weight))
			}
			if ref.Kind != KindAbsolute && ref.Kind != KindRelative {
				verr.AddError(fmt.Sprintf("category %q benchmark %q has unknown kind %q", cat.ID, ref.Key, ref.Kind))
			}
		}

		if cat.Requires != "" && cat.Requires != CapabilityVision && cat.Requires != CapabilityReasoning {
			verr.AddError(fmt.Sprintf("category %q requires unknown capability %q", cat.ID, cat.Requires))
		}
	}

	seenRules := make(map[string]bool, len(c.Imputation))
	for _, rule := range c.Imputation {
		if rule.Benchmark == "" {
			verr.AddError("imputation rule with empty benchmark key")
		}
		if seenRules[rule.Benchmark] {
			verr.AddError(fmt.Sprintf("duplicate imputation rule for benchmark %q", rule.Benchmark))
		}
		seenRules[rule.Benchmark] = true

		if rule.Percentile < 0 || rule.Percentile > 1 || math.IsNaN(rule.Percentile) {
			verr.AddError(fmt.Sprintf("imputation rule for %q has percentile %g outside [0, 1]", rule.Benchmark, rule.Percentile))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// RelativeKeys returns the distinct relative benchmark keys referenced by
// any category, in first-reference order. The normalizer builds one rating
// pool per key.
func (c Catalog) RelativeKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		for _, ref := range cat.Benchmarks {
			if ref.Kind != KindRelative || seen[ref.Key] {
				continue
			}
			seen[ref.Key] = true
			keys = append(keys, ref.Key)
		}
	}
	return keys
}
