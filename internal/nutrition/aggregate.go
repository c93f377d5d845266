// Package nutrition computes totals over meal-plan entries. Every function
// here is pure and safe to call concurrently.
package nutrition

import (
	"github.com/platewise/platewise-backend/internal/catalog"
	"github.com/platewise/platewise-backend/internal/domain"
)

// Contribution scales an ingredient's per-100g nutrition to amountG grams.
func Contribution(ing domain.Ingredient, amountG float64) domain.NutritionTotals {
	f := amountG / 100.0
	return domain.NutritionTotals{
		Calories: ing.CaloriesPer100g * f,
		ProteinG: ing.ProteinG * f,
		FatG:     ing.FatG * f,
		CarbsG:   ing.CarbsG * f,
		FiberG:   ing.FiberG * f,
	}
}

// Aggregate sums the contributions of a portion list. A portion referencing
// an id absent from the catalog is an internal consistency fault and is
// returned as UnknownIngredientError.
func Aggregate(cat *catalog.Catalog, portions []domain.Portion) (domain.NutritionTotals, error) {
	var totals domain.NutritionTotals
	for _, p := range portions {
		ing, err := cat.Get(p.IngredientID)
		if err != nil {
			return domain.NutritionTotals{}, err
		}
		totals = totals.Add(Contribution(ing, p.AmountG))
	}
	return totals, nil
}

// MealTotals aggregates one meal.
func MealTotals(cat *catalog.Catalog, meal domain.Meal) (domain.NutritionTotals, error) {
	return Aggregate(cat, meal.Portions)
}

// DayTotals is the sum of the day's meal totals; composability with
// Aggregate over the flattened portion list is an invariant.
func DayTotals(cat *catalog.Catalog, day domain.Day) (domain.NutritionTotals, error) {
	var totals domain.NutritionTotals
	for _, meal := range day.Meals {
		mt, err := MealTotals(cat, meal)
		if err != nil {
			return domain.NutritionTotals{}, err
		}
		totals = totals.Add(mt)
	}
	return totals, nil
}

// PlanTotals is the sum of all day totals.
func PlanTotals(cat *catalog.Catalog, plan domain.MealPlan) (domain.NutritionTotals, error) {
	var totals domain.NutritionTotals
	for _, day := range plan.Days {
		dt, err := DayTotals(cat, day)
		if err != nil {
			return domain.NutritionTotals{}, err
		}
		totals = totals.Add(dt)
	}
	return totals, nil
}
