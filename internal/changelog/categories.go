package changelog

import (
	"fmt"
	"sort"
)

// DefaultTypeCategories maps conventional commit types to the Keep a
// Changelog category they are filed under. Types not listed here (docs,
// chore, test, ...) are left out of the changelog by default.
func DefaultTypeCategories() map[string]string {
	return map[string]string{
		"feat":      "added",
		"fix":       "fixed",
		"perf":      "changed",
		"refactor":  "changed",
		"revert":    "removed",
		"deprecate": "deprecated",
		"remove":    "removed",
		"security":  "security",
	}
}

// ValidateTypeCategories checks that every mapping targets a valid category.
func ValidateTypeCategories(m map[string]string) error {
	types := make([]string, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		if !IsValidCategory(m[t]) {
			return &ValidationError{
				Field:   fmt.Sprintf("type_categories.%s", t),
				Message: fmt.Sprintf("unknown category %q (valid: %v)", m[t], ValidCategories()),
			}
		}
	}
	return nil
}
