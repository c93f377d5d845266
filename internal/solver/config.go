package solver

import "github.com/platewise/platewise-backend/internal/domain"

// PortionRange bounds realistic serving sizes in grams for one category.
type PortionRange struct {
	MinG float64
	MaxG float64
}

// Config holds the solver's tunables. Defaults are deliberate guesses that
// worked well in practice, not physiology; override per deployment.
type Config struct {
	// Scoring weights for the squared-deviation objective.
	CalorieWeight float64
	ProteinWeight float64
	FatWeight     float64
	CarbWeight    float64

	// Construction bounds.
	MaxIngredientsPerMeal int
	RepairRounds          int
	PortionStepG          float64
	OvershootFrac         float64

	// Acceptance tolerance, checked per day and per plan aggregate.
	CalorieToleranceFrac float64
	MacroTolerancePts    float64

	// Portion clamps by ingredient category.
	PortionBounds  map[string]PortionRange
	DefaultPortion PortionRange

	// Upper bound on days solved concurrently within one request.
	MaxParallelDays int
}

func DefaultConfig() Config {
	return Config{
		CalorieWeight: 1.0,
		ProteinWeight: 1.0,
		FatWeight:     1.0,
		CarbWeight:    1.0,

		MaxIngredientsPerMeal: 6,
		RepairRounds:          20,
		PortionStepG:          5,
		OvershootFrac:         0.15,

		CalorieToleranceFrac: 0.07,
		MacroTolerancePts:    8,

		PortionBounds: map[string]PortionRange{
			domain.CategoryFat:       {MinG: 5, MaxG: 60},
			domain.CategoryProtein:   {MinG: 30, MaxG: 300},
			domain.CategoryVegetable: {MinG: 20, MaxG: 300},
			domain.CategoryGrain:     {MinG: 20, MaxG: 250},
			domain.CategoryFruit:     {MinG: 30, MaxG: 250},
			domain.CategoryDairy:     {MinG: 30, MaxG: 300},
		},
		DefaultPortion: PortionRange{MinG: 10, MaxG: 300},

		MaxParallelDays: 4,
	}
}

func (c Config) portionRange(category string) PortionRange {
	if r, ok := c.PortionBounds[category]; ok {
		return r
	}
	return c.DefaultPortion
}
