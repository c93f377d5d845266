package domain

import (
	"fmt"
	"strings"
)

// FieldError is one violated field in a planning request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field, not just the first, so the
// caller can present complete feedback in one round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid request"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// CatalogLoadError means the ingredient dataset is corrupt or internally
// inconsistent. Fatal at startup; never produced at request time.
type CatalogLoadError struct {
	Problems []string
}

func (e *CatalogLoadError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "catalog load failed"
	}
	return fmt.Sprintf("catalog load failed: %s", strings.Join(e.Problems, "; "))
}

// UnknownIngredientError is an internal consistency fault: a plan or request
// referenced an ingredient id absent from the catalog. Treated as a bug,
// never silently swallowed.
type UnknownIngredientError struct {
	ID string
}

func (e *UnknownIngredientError) Error() string {
	return fmt.Sprintf("unknown ingredient %q", e.ID)
}

// InfeasibleConstraintError means the constraint combination admits no valid
// meal under the active catalog. This is an expected, first-class outcome,
// distinct from generic failure.
type InfeasibleConstraintError struct {
	DietType     DietType
	Category     string
	ExcludedTags []string
}

func (e *InfeasibleConstraintError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("no eligible %s ingredients for diet %q (excluded tags: %s)",
			e.Category, e.DietType, strings.Join(e.ExcludedTags, ", "))
	}
	return fmt.Sprintf("no eligible ingredients for diet %q (excluded tags: %s)",
		e.DietType, strings.Join(e.ExcludedTags, ", "))
}
