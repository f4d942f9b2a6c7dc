package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/benchlens/benchlens/internal/domain"
	"github.com/benchlens/benchlens/internal/ports"
)

// Pass names reported to observers and metrics, in execution order.
const (
	PassImpute    = "impute"
	PassNormalize = "normalize"
	PassAggregate = "aggregate"
	PassOverall   = "overall"
	PassSelect    = "select"
)

// Engine computes category scores, overall scores, and the default
// display subset for a candidate model set. An Engine is immutable after
// construction and safe for concurrent use: each Compute invocation is an
// independent, stateless pass with no cross-invocation cache, so
// normalization anchored to one candidate set can never leak into
// another.
type Engine struct {
	catalog    domain.Catalog
	imputers   map[string]*PercentileImputer
	normalizer *RelativeNormalizer
	selector   *DefaultSelector

	metrics  ports.MetricsCollector
	observer ports.PassObserver
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithMetrics attaches a metrics collector recording compute latency and
// result counts. Metrics are observational only; they never influence
// scores.
func WithMetrics(m ports.MetricsCollector) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithObserver attaches a pass observer, typically for tracing.
func WithObserver(o ports.PassObserver) Option {
	return func(e *Engine) { e.observer = o }
}

// NewEngine builds an engine from a validated catalog. All configuration
// errors (invalid weights, unknown kinds, bad percentiles, unsupported
// scale) are rejected here so compute passes cannot fail.
func NewEngine(catalog domain.Catalog, opts ...Option) (*Engine, error) {
	if len(catalog.Categories) == 0 {
		return nil, ErrNilCatalog
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	imputers := make(map[string]*PercentileImputer, len(catalog.Imputation))
	for _, rule := range catalog.Imputation {
		imp, err := NewPercentileImputer(PercentileImputerConfig{Percentile: rule.Percentile})
		if err != nil {
			return nil, fmt.Errorf("imputer for %q: %w", rule.Benchmark, err)
		}
		imputers[rule.Benchmark] = imp
	}

	normalizer, err := NewRelativeNormalizer(RelativeNormalizerConfig{Scale: catalog.Scale})
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}

	selector, err := NewDefaultSelector(DefaultSelectorConfig{
		MaxModels:      catalog.Selection.MaxModels,
		MaxPerProvider: catalog.Selection.MaxPerProvider,
	})
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}

	e := &Engine{
		catalog:    catalog,
		imputers:   imputers,
		normalizer: normalizer,
		selector:   selector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Catalog returns the immutable configuration the engine was built with.
func (e *Engine) Catalog() domain.Catalog { return e.catalog }

// Compute derives scores and default-set membership for the given
// candidate models. It runs the passes sequentially to completion:
// imputation fills designated missing benchmarks from the other models'
// distributions, normalization anchors relative ratings to the current
// set's best performer, aggregation folds weighted contributions into
// category scores, the overall pass averages applicable categories, and
// selection marks the capped default subset.
//
// The input is never mutated; the result is a fresh slice aligned with
// the input order. Repeated calls with identical input yield identical
// output, bit-for-bit on the rounded decimals.
func (e *Engine) Compute(ctx context.Context, models []domain.Model) []domain.ScoredModel {
	start := time.Now()

	filled := e.imputePass(ctx, models)
	pools := e.normalizePass(ctx, filled)
	scored := e.aggregatePass(ctx, models, filled, pools)
	e.overallPass(ctx, models, scored)
	e.selectPass(ctx, scored)

	if e.metrics != nil {
		labels := map[string]string{"models": fmt.Sprintf("%d", len(models))}
		e.metrics.RecordLatency("engine_compute", time.Since(start), labels)
		e.metrics.RecordCounter("models_scored_total", float64(len(scored)), nil)

		defaults := 0
		for _, sm := range scored {
			if sm.IsDefault {
				defaults++
			}
			if overall, ok := sm.Score(domain.OverallKey); ok {
				e.metrics.RecordHistogram("overall", overall, nil)
			}
		}
		e.metrics.RecordGauge("default_models", float64(defaults), nil)
	}

	return scored
}

// observe brackets one pass with the attached observer, if any.
func (e *Engine) observe(ctx context.Context, pass string, models int, fn func(context.Context)) {
	if e.observer == nil {
		fn(ctx)
		return
	}
	passCtx := e.observer.PassStart(ctx, pass)
	fn(passCtx)
	e.observer.PassEnd(passCtx, pass, models)
}

// imputePass produces one filled benchmark record per model. For each
// imputation rule, the fallback is computed once from the distribution of
// valid values across all models and substituted wherever that benchmark
// is missing. Benchmarks without a rule keep their missing measurements.
// Records that need no fill alias the input record; every fill derives a
// fresh record via With, so the input is never mutated.
func (e *Engine) imputePass(ctx context.Context, models []domain.Model) []domain.BenchmarkRecord {
	filled := make([]domain.BenchmarkRecord, len(models))
	e.observe(ctx, PassImpute, len(models), func(context.Context) {
		for i, m := range models {
			filled[i] = m.Benchmarks
		}
		for _, rule := range e.catalog.Imputation {
			imputer := e.imputers[rule.Benchmark]

			distribution := make([]domain.Measurement, len(models))
			for i, m := range models {
				distribution[i] = m.Benchmarks.Lookup(rule.Benchmark)
			}
			fallback := imputer.Fallback(distribution)

			for i := range filled {
				if !filled[i].Lookup(rule.Benchmark).Valid {
					filled[i] = filled[i].With(rule.Benchmark, domain.NewMeasurement(fallback))
				}
			}
		}
	})
	return filled
}

// normalizePass gathers the rating pool for every relative benchmark key
// referenced by the catalog. Pools are built from the filled records of
// the current candidate set only; they are discarded after the pass, so
// no anchor can be reused for a different set.
func (e *Engine) normalizePass(ctx context.Context, filled []domain.BenchmarkRecord) map[string][]domain.Measurement {
	pools := make(map[string][]domain.Measurement)
	e.observe(ctx, PassNormalize, len(filled), func(context.Context) {
		for _, key := range e.catalog.RelativeKeys() {
			pool := make([]domain.Measurement, len(filled))
			for i, rec := range filled {
				pool[i] = rec.Lookup(key)
			}
			pools[key] = pool
		}
	})
	return pools
}

// aggregatePass computes every category score for every model and
// assembles the ScoredModel values. Relative contributions are normalized
// against the pass's pools; absolute contributions feed the weighted mean
// directly. Missing values stay missing contributions.
func (e *Engine) aggregatePass(
	ctx context.Context,
	models []domain.Model,
	filled []domain.BenchmarkRecord,
	pools map[string][]domain.Measurement,
) []domain.ScoredModel {
	scored := make([]domain.ScoredModel, len(models))
	e.observe(ctx, PassAggregate, len(models), func(context.Context) {
		for i, m := range models {
			scores := make(map[string]float64, len(e.catalog.Categories)+1)
			for _, cat := range e.catalog.Categories {
				scores[cat.ID] = WeightedMean(e.contributions(cat, filled[i], pools))
			}
			scored[i] = domain.ScoredModel{Model: m, Scores: scores}
		}
	})
	return scored
}

// contributions builds the (value, weight) list for one category on one
// model from its filled record.
func (e *Engine) contributions(
	cat domain.Category,
	record domain.BenchmarkRecord,
	pools map[string][]domain.Measurement,
) []Contribution {
	out := make([]Contribution, 0, len(cat.Benchmarks))
	for _, ref := range cat.Benchmarks {
		value := record.Lookup(ref.Key)
		if ref.Kind == domain.KindRelative {
			normalized, ok := e.normalizer.Normalize(value, pools[ref.Key])
			if ok {
				value = domain.NewMeasurement(normalized)
			} else {
				value = domain.Measurement{}
			}
		}
		out = append(out, Contribution{Value: value, Weight: ref.Weight})
	}
	return out
}

// overallPass fills in each model's overall score, excluding categories
// whose required capability the model lacks.
func (e *Engine) overallPass(ctx context.Context, models []domain.Model, scored []domain.ScoredModel) {
	e.observe(ctx, PassOverall, len(models), func(context.Context) {
		for i, m := range models {
			scored[i].Scores[domain.OverallKey] = OverallScore(m, e.catalog.Categories, scored[i].Scores)
		}
	})
}

// selectPass marks the default display subset on the scored models.
func (e *Engine) selectPass(ctx context.Context, scored []domain.ScoredModel) {
	e.observe(ctx, PassSelect, len(scored), func(context.Context) {
		selected := e.selector.Select(scored)
		for i := range scored {
			scored[i].IsDefault = selected[scored[i].ID]
		}
	})
}
