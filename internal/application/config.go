// Package application loads and validates catalog configuration,
// turning declarative YAML into the immutable domain.Catalog the engine
// consumes.
package application

import "github.com/benchlens/benchlens/internal/domain"

// CatalogConfig is the YAML representation of the category catalog and
// serves as the primary configuration entry point for the system. It is
// parsed and validated once at startup; the engine only ever sees the
// converted domain.Catalog.
type CatalogConfig struct {
	// Version specifies the configuration schema version.
	Version string `yaml:"version" validate:"required"`

	// Scale is the win-probability multiplier for relative-score
	// normalization. Supported values are 100 (top model maps to 50) and
	// 200 (top model maps to 100). The deployment picks one and holds it
	// fixed; changing it rescales every relative contribution.
	Scale float64 `yaml:"scale" validate:"required,eq=100|eq=200"`

	// Selection bounds the default display subset.
	Selection SelectionConfig `yaml:"selection" validate:"required"`

	// Imputation designates benchmarks whose missing values receive a
	// percentile fallback before scoring.
	Imputation []ImputationConfig `yaml:"imputation" validate:"dive"`

	// Categories defines the category scores the engine produces.
	Categories []CategoryConfig `yaml:"categories" validate:"required,min=1,dive"`

	// Providers carries presentation-only provider styling (chart
	// colors) through to consumers.
	Providers []ProviderConfig `yaml:"providers" validate:"dive"`
}

// SelectionConfig bounds the auto-selected default subset.
type SelectionConfig struct {
	// MaxModels caps the total number of default models.
	MaxModels int `yaml:"max_models" validate:"required,min=1"`

	// MaxPerProvider caps default models per provider.
	MaxPerProvider int `yaml:"max_per_provider" validate:"required,min=1"`
}

// ImputationConfig designates one benchmark for missing-value fallback.
type ImputationConfig struct {
	// Benchmark is the benchmark key the rule applies to.
	Benchmark string `yaml:"benchmark" validate:"required,benchkey"`

	// Percentile is the fallback rank in [0, 1]. Use a low percentile
	// for accuracy-like benchmarks and a high one for rate-like
	// benchmarks so missing data is penalized, not rewarded.
	Percentile float64 `yaml:"percentile" validate:"min=0,max=1"`
}

// CategoryConfig defines one category and its weighted contributions.
type CategoryConfig struct {
	// ID is the category's score key: lowercase alphanumerics and
	// underscores, unique across the catalog, never "overall".
	ID string `yaml:"id" validate:"required,catid,ne=overall"`

	// Name is the display name.
	Name string `yaml:"name" validate:"required,max=100"`

	// Requires optionally names the capability a model needs for this
	// category to count toward its overall average.
	Requires string `yaml:"requires" validate:"omitempty,oneof=vision reasoning"`

	// Enabled is a presentation flag; nil defaults to true. Disabled
	// categories are still scored, the rendering layer just hides them.
	Enabled *bool `yaml:"enabled"`

	// LowerIsBetter is a presentation-only reversal flag.
	LowerIsBetter bool `yaml:"lower_is_better"`

	// Benchmarks is the ordered contribution list.
	Benchmarks []BenchmarkRefConfig `yaml:"benchmarks" validate:"required,min=1,dive"`
}

// BenchmarkRefConfig is one weighted contribution inside a category.
type BenchmarkRefConfig struct {
	// Key names the benchmark in model records.
	Key string `yaml:"key" validate:"required,benchkey"`

	// Weight is the positive, finite contribution weight. Non-positive
	// weights are rejected here at load time and never reach the engine.
	Weight float64 `yaml:"weight" validate:"required,gt=0"`

	// Kind is "absolute" or "relative".
	Kind string `yaml:"kind" validate:"required,oneof=absolute relative"`
}

// ProviderConfig is presentation-only provider styling.
type ProviderConfig struct {
	// Name matches the provider string on model records.
	Name string `yaml:"name" validate:"required"`

	// Color is an optional hex color for charts.
	Color string `yaml:"color" validate:"omitempty,hexcolor"`
}

// ToDomain converts the validated configuration into the immutable
// catalog the engine consumes. Call only after validation has passed.
func (c CatalogConfig) ToDomain() domain.Catalog {
	categories := make([]domain.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		refs := make([]domain.BenchmarkRef, 0, len(cat.Benchmarks))
		for _, ref := range cat.Benchmarks {
			refs = append(refs, domain.BenchmarkRef{
				Key:    ref.Key,
				Weight: ref.Weight,
				Kind:   domain.BenchmarkKind(ref.Kind),
			})
		}

		enabled := true
		if cat.Enabled != nil {
			enabled = *cat.Enabled
		}
		categories = append(categories, domain.Category{
			ID:            cat.ID,
			Name:          cat.Name,
			Benchmarks:    refs,
			Requires:      domain.Capability(cat.Requires),
			Enabled:       enabled,
			LowerIsBetter: cat.LowerIsBetter,
		})
	}

	rules := make([]domain.ImputationRule, 0, len(c.Imputation))
	for _, rule := range c.Imputation {
		rules = append(rules, domain.ImputationRule{
			Benchmark:  rule.Benchmark,
			Percentile: rule.Percentile,
		})
	}

	providers := make([]domain.ProviderStyle, 0, len(c.Providers))
	for _, p := range c.Providers {
		providers = append(providers, domain.ProviderStyle{Name: p.Name, Color: p.Color})
	}

	return domain.Catalog{
		Categories: categories,
		Imputation: rules,
		Scale:      c.Scale,
		Selection: domain.SelectionPolicy{
			MaxModels:      c.Selection.MaxModels,
			MaxPerProvider: c.Selection.MaxPerProvider,
		},
		Providers: providers,
	}
}
