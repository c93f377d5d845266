package domain

import "sort"

type DietType string

const (
	DietStandard      DietType = "standard"
	DietVegan         DietType = "vegan"
	DietVegetarian    DietType = "vegetarian"
	DietKeto          DietType = "keto"
	DietPaleo         DietType = "paleo"
	DietMediterranean DietType = "mediterranean"
)

type MealPattern string

const (
	PatternThreeMeals       MealPattern = "3_meals"
	PatternThreeMealsSnacks MealPattern = "3_meals_2_snacks"
	PatternFiveSmallMeals   MealPattern = "5_small_meals"
)

// MealSlot describes one meal within a pattern. Weight is the slot's share
// of the daily calorie target; weights within a pattern sum to 1.
type MealSlot struct {
	Name  string
	Frac  float64
	Snack bool
}

var mealPatternSlots = map[MealPattern][]MealSlot{
	PatternThreeMeals: {
		{Name: "breakfast", Frac: 0.30},
		{Name: "lunch", Frac: 0.35},
		{Name: "dinner", Frac: 0.35},
	},
	PatternThreeMealsSnacks: {
		{Name: "breakfast", Frac: 0.25},
		{Name: "lunch", Frac: 0.30},
		{Name: "dinner", Frac: 0.30},
		{Name: "snack_1", Frac: 0.075, Snack: true},
		{Name: "snack_2", Frac: 0.075, Snack: true},
	},
	PatternFiveSmallMeals: {
		{Name: "meal_1", Frac: 0.20},
		{Name: "meal_2", Frac: 0.20},
		{Name: "meal_3", Frac: 0.20},
		{Name: "meal_4", Frac: 0.20},
		{Name: "meal_5", Frac: 0.20},
	},
}

// Slots returns the meal slots for the pattern in serving order.
func (p MealPattern) Slots() ([]MealSlot, bool) {
	slots, ok := mealPatternSlots[p]
	return slots, ok
}

func KnownMealPatterns() []MealPattern {
	out := make([]MealPattern, 0, len(mealPatternSlots))
	for p := range mealPatternSlots {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MacroSplit is a macro percentage target. Percentages refer to share of
// total calories and must sum to 100 within tolerance.
type MacroSplit struct {
	ProteinPct float64 `json:"protein_pct"`
	FatPct     float64 `json:"fat_pct"`
	CarbsPct   float64 `json:"carbs_pct"`
}

// Spec is a fully validated, immutable planning request. Only the
// constraint validator constructs these.
type Spec struct {
	TargetCalories int
	MacroTargets   MacroSplit
	DietType       DietType
	// RequiredTag is the diet-compatibility tag every selected ingredient
	// must carry; empty means no tag requirement.
	RequiredTag  string
	MealPattern  MealPattern
	ExcludedTags []string
	Days         int
	Seed         *int64
}

// PlanRequest is the raw wire-level request as received from the caller.
type PlanRequest struct {
	Calories     int         `json:"calories"`
	DietType     string      `json:"diet_type"`
	MealPattern  string      `json:"meal_pattern"`
	Restrictions []string    `json:"restrictions"`
	Days         int         `json:"days"`
	Macros       *MacroSplit `json:"macros,omitempty"`
	Seed         *int64      `json:"seed,omitempty"`
}
