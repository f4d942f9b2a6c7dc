// Package records reads merged model records from static artifacts
// produced by the upstream data pipeline. It is the data-model boundary
// where the pipeline's implicit "0 or null means missing" encoding is
// turned into explicit optional measurements.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/benchlens/benchlens/internal/domain"
	"github.com/benchlens/benchlens/internal/ports"
)

var _ ports.RecordSource = (*FileSource)(nil)

// modelRecord mirrors the merge pipeline's JSON shape. Benchmark values
// are nullable raw numbers; zero, null, and absent keys all mean "no
// measurement" in that encoding.
type modelRecord struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Provider       string              `json:"provider"`
	ReleaseDate    string              `json:"release_date,omitempty"`
	Benchmarks     map[string]*float64 `json:"benchmarks"`
	SupportsVision bool                `json:"supports_vision"`
	IsReasoning    bool                `json:"is_reasoning"`
}

// recordFile is the top-level artifact layout.
type recordFile struct {
	Models []modelRecord `json:"models"`
}

// FileSource loads model records from a JSON file. Loaded models are
// ordered deterministically by display name (case-insensitive collation,
// id as final key) because the selector's tie-breaking preserves input
// order and must be reproducible across runs.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given path. The file
// is re-read on every Load so score recomputation always sees the latest
// merged artifact.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements ports.RecordSource.
func (fs *FileSource) Load(ctx context.Context) ([]domain.Model, error) {
	f, err := os.Open(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file %s: %w", fs.path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads one record artifact and converts it into domain models,
// applying the missing-value rule and deterministic ordering.
func Decode(r io.Reader) ([]domain.Model, error) {
	var file recordFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	models := make([]domain.Model, 0, len(file.Models))
	seen := make(map[string]bool, len(file.Models))
	for i, rec := range file.Models {
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d: %w: id", i, domain.ErrEmptyValue)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("record %q: %w: name", rec.ID, domain.ErrEmptyValue)
		}
		if rec.Provider == "" {
			return nil, fmt.Errorf("record %q: %w: provider", rec.ID, domain.ErrEmptyValue)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("record %q: %w", rec.ID, domain.ErrDuplicateModel)
		}
		seen[rec.ID] = true

		models = append(models, domain.Model{
			ID:             rec.ID,
			Name:           rec.Name,
			Provider:       rec.Provider,
			ReleaseDate:    rec.ReleaseDate,
			Benchmarks:     decodeBenchmarks(rec.Benchmarks),
			SupportsVision: rec.SupportsVision,
			IsReasoning:    rec.IsReasoning,
		})
	}

	sortModels(models)
	return models, nil
}

// decodeBenchmarks converts the pipeline's nullable raw values into
// explicit measurements. Zero is never a legitimate score upstream, so
// 0, null, and absent all decode to the missing measurement.
func decodeBenchmarks(raw map[string]*float64) domain.BenchmarkRecord {
	record := make(domain.BenchmarkRecord, len(raw))
	for key, value := range raw {
		if value == nil || *value == 0 {
			record[key] = domain.Measurement{}
			continue
		}
		record[key] = domain.NewMeasurement(*value)
	}
	return record
}

// sortModels orders models by collated display name, then id.
func sortModels(models []domain.Model) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(models, func(a, b int) bool {
		if cmp := c.CompareString(models[a].Name, models[b].Name); cmp != 0 {
			return cmp < 0
		}
		return models[a].ID < models[b].ID
	})
}
