// Package domain contains pure, dependency-free domain models and types
// for the score aggregation engine.
package domain

import "maps"

// OverallKey is the reserved score key holding a model's summary score
// across all applicable categories. Category ids must not collide with it.
const OverallKey = "overall"

// Capability identifies a model feature that a category may require.
// Categories gated on a capability are excluded from the overall average
// of models that lack it, rather than counted as zero.
type Capability string

// Capabilities recognized by the engine.
const (
	// CapabilityVision marks models that accept image input.
	CapabilityVision Capability = "vision"

	// CapabilityReasoning marks models that expose extended reasoning.
	CapabilityReasoning Capability = "reasoning"
)

// Measurement is an explicit optional numeric value for one benchmark.
// The zero value is the missing measurement. Upstream data sources encode
// "no measurement" as zero, null, or an absent key; decoding those into
// Measurement happens once at the data-model boundary so the engine never
// has to treat a raw 0 as a sentinel.
type Measurement struct {
	// Value is the raw benchmark value. Only meaningful when Valid is true.
	Value float64 `json:"value"`

	// Valid reports whether a measurement exists at all.
	Valid bool `json:"valid"`
}

// NewMeasurement returns a valid measurement holding v.
func NewMeasurement(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// BenchmarkRecord maps benchmark keys to their raw measurements for one
// model. Keys must match the BenchmarkRef keys of the category catalog.
type BenchmarkRecord map[string]Measurement

// Lookup returns the measurement for key. An absent key is the missing
// measurement, so callers never need to distinguish the two cases.
func (r BenchmarkRecord) Lookup(key string) Measurement {
	return r[key]
}

// With returns a copy of the record with key set to m. The receiver is
// never mutated; compute passes derive filled records from raw ones
// without touching shared input.
func (r BenchmarkRecord) With(key string, m Measurement) BenchmarkRecord {
	out := make(BenchmarkRecord, len(r)+1)
	maps.Copy(out, r)
	out[key] = m
	return out
}

// Model is one candidate model as produced by the upstream merge pipeline.
// Identity fields and the benchmark record are immutable input; computed
// scores live on ScoredModel, never on Model.
type Model struct {
	// ID uniquely identifies the model and is stable across runs.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Provider is a free-text grouping key (vendor) used by the
	// default-set selector's per-provider cap.
	Provider string `json:"provider"`

	// ReleaseDate is an optional ISO-8601 date string.
	ReleaseDate string `json:"release_date,omitempty"`

	// Benchmarks holds the raw measurements keyed by benchmark name.
	Benchmarks BenchmarkRecord `json:"benchmarks"`

	// SupportsVision reports whether the model accepts image input.
	SupportsVision bool `json:"supports_vision"`

	// IsReasoning reports whether the model is a reasoning model.
	IsReasoning bool `json:"is_reasoning"`
}

// Supports reports whether the model has the given capability.
// Unknown capabilities are never supported.
func (m Model) Supports(c Capability) bool {
	switch c {
	case CapabilityVision:
		return m.SupportsVision
	case CapabilityReasoning:
		return m.IsReasoning
	default:
		return false
	}
}

// ScoredModel is the engine's output for one model: the input model plus
// its derived category scores and default-set membership. It is a new
// value constructed per compute pass; the embedded Model is copied, not
// shared, so repeated passes cannot interfere.
type ScoredModel struct {
	Model

	// Scores maps every catalog category id, plus OverallKey, to a score
	// in [0, 100].
	Scores map[string]float64 `json:"scores"`

	// IsDefault marks membership in the bounded initial-display subset.
	IsDefault bool `json:"is_default"`
}

// Score returns the score for the given category id (or OverallKey).
func (sm ScoredModel) Score(id string) (float64, bool) {
	v, ok := sm.Scores[id]
	return v, ok
}
