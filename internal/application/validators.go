package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// registerCatalogValidators registers the custom validation functions
// used by catalog configuration struct tags.
func registerCatalogValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("benchkey", validateBenchmarkKey); err != nil {
		return fmt.Errorf("failed to register benchkey validator: %w", err)
	}
	if err := v.RegisterValidation("catid", validateCategoryID); err != nil {
		return fmt.Errorf("failed to register catid validator: %w", err)
	}
	return nil
}

// validateBenchmarkKey accepts the key strings used in model records:
// non-empty, lowercase alphanumerics with underscores or hyphens.
// Keys must match the upstream merge pipeline's predefined names exactly,
// so anything else is a configuration typo.
func validateBenchmarkKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if key == "" {
		return false
	}
	for _, ch := range key {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9':
		case ch == '_' || ch == '-':
		default:
			return false
		}
	}
	return true
}

// validateCategoryID accepts lowercase alphanumerics and underscores.
// Category ids become score-map keys and URL-safe identifiers downstream.
func validateCategoryID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return false
	}
	for _, ch := range id {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9':
		case ch == '_':
		default:
			return false
		}
	}
	return true
}

// validateSemantics enforces the cross-field rules struct tags cannot
// express: unique category ids, unique benchmark keys within a category,
// and unique imputation rules.
func validateSemantics(config *CatalogConfig) error {
	seenCats := make(map[string]bool, len(config.Categories))
	for _, cat := range config.Categories {
		if seenCats[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seenCats[cat.ID] = true

		seenKeys := make(map[string]bool, len(cat.Benchmarks))
		for _, ref := range cat.Benchmarks {
			if seenKeys[ref.Key] {
				return fmt.Errorf("category %q references benchmark %q twice", cat.ID, ref.Key)
			}
			seenKeys[ref.Key] = true
		}
	}

	seenRules := make(map[string]bool, len(config.Imputation))
	for _, rule := range config.Imputation {
		if seenRules[rule.Benchmark] {
			return fmt.Errorf("duplicate imputation rule for benchmark %q", rule.Benchmark)
		}
		seenRules[rule.Benchmark] = true
	}

	return nil
}
