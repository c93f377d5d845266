// Package constraint normalizes raw planning requests into canonical,
// validated specs. Validation failures never reach the solver.
package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/platewise/platewise-backend/internal/domain"
)

const (
	MinCalories = 800
	MaxCalories = 5000
	MaxDays     = 30
	DefaultDays = 7

	// Macro percentages must sum to 100 within this many points.
	macroSumTolerance = 1.0
)

// Validate checks every field of the raw request and returns either a
// canonical Spec or a ValidationError listing all violations at once.
func Validate(req domain.PlanRequest) (domain.Spec, error) {
	var fields []domain.FieldError
	add := func(field, format string, args ...any) {
		fields = append(fields, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if req.Calories < MinCalories || req.Calories > MaxCalories {
		add("calories", "must be between %d and %d, got %d", MinCalories, MaxCalories, req.Calories)
	}

	days := req.Days
	if days == 0 {
		days = DefaultDays
	}
	if days < 1 || days > MaxDays {
		add("days", "must be between 1 and %d, got %d", MaxDays, req.Days)
	}

	diet := domain.DietType(strings.ToLower(strings.TrimSpace(req.DietType)))
	if diet == "" {
		diet = domain.DietStandard
	}
	rule, dietKnown := dietRules[diet]
	if !dietKnown {
		add("diet_type", "unknown diet type %q", req.DietType)
	}

	pattern := domain.MealPattern(strings.ToLower(strings.TrimSpace(req.MealPattern)))
	if pattern == "" {
		pattern = domain.PatternThreeMeals
	}
	if _, ok := pattern.Slots(); !ok {
		add("meal_pattern", "unknown meal pattern %q", req.MealPattern)
	}

	macros := rule.macros
	if req.Macros != nil {
		macros = *req.Macros
		if macros.ProteinPct < 0 || macros.FatPct < 0 || macros.CarbsPct < 0 {
			add("macros", "percentages must be non-negative")
		}
		sum := macros.ProteinPct + macros.FatPct + macros.CarbsPct
		if math.Abs(sum-100) > macroSumTolerance {
			add("macros", "percentages must sum to 100 (±%.0f), got %.1f", macroSumTolerance, sum)
		}
	}

	excluded := normalizeTags(req.Restrictions)
	if dietKnown {
		excluded = append(excluded, rule.excludedTags...)
	}
	excluded = dedupeSorted(excluded)

	if len(fields) > 0 {
		return domain.Spec{}, &domain.ValidationError{Fields: fields}
	}

	return domain.Spec{
		TargetCalories: req.Calories,
		MacroTargets:   macros,
		DietType:       diet,
		RequiredTag:    rule.requiredTag,
		MealPattern:    pattern,
		ExcludedTags:   excluded,
		Days:           days,
		Seed:           req.Seed,
	}, nil
}

// normalizeTags lowercases and trims user-supplied restriction tags so a
// stray-case tag cannot silently exclude nothing.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.ReplaceAll(t, " ", "_")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupeSorted(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	sort.Strings(tags)
	out := tags[:1]
	for _, t := range tags[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
