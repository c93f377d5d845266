package domain

// Portion is a single ingredient occurrence inside a meal.
type Portion struct {
	IngredientID string  `json:"item"`
	AmountG      float64 `json:"amount_g"`
}

type Meal struct {
	Name     string          `json:"name"`
	Portions []Portion       `json:"ingredients"`
	Totals   NutritionTotals `json:"totals"`
}

type Day struct {
	Index    int             `json:"index"`
	Meals    []Meal          `json:"meals"`
	Totals   NutritionTotals `json:"totals"`
	Degraded bool            `json:"degraded"`
}

// MealPlan is the solver output. It is immutable once returned and owned by
// the caller; the solver keeps no reference to it.
type MealPlan struct {
	Days         []Day           `json:"days"`
	Totals       NutritionTotals `json:"totals"`
	Degraded     bool            `json:"degraded"`
	DegradedDays []int           `json:"degraded_days"`
	Seed         int64           `json:"seed"`
}
