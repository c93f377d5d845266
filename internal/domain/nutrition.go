package domain

// NutritionTotals is an aggregate over any set of (ingredient, amount)
// entries. Always derived, never stored on its own.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
	FiberG   float64 `json:"fiber_g"`
}

func (t NutritionTotals) Add(o NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories: t.Calories + o.Calories,
		ProteinG: t.ProteinG + o.ProteinG,
		FatG:     t.FatG + o.FatG,
		CarbsG:   t.CarbsG + o.CarbsG,
		FiberG:   t.FiberG + o.FiberG,
	}
}
