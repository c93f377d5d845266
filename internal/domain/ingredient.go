package domain

// Ingredient categories used for meal composition rules and portion bounds.
const (
	CategoryProtein   = "protein"
	CategoryVegetable = "vegetable"
	CategoryGrain     = "grain"
	CategoryFruit     = "fruit"
	CategoryFat       = "fat"
	CategoryDairy     = "dairy"
)

// Ingredient is one catalog entry. All nutrition values are per 100 g.
// Records are immutable after catalog load.
type Ingredient struct {
	ID              string   `json:"id" yaml:"id"`
	CaloriesPer100g float64  `json:"calories_per_100g" yaml:"calories_per_100g"`
	ProteinG        float64  `json:"protein_g" yaml:"protein_g"`
	FatG            float64  `json:"fat_g" yaml:"fat_g"`
	CarbsG          float64  `json:"carbs_g" yaml:"carbs_g"`
	FiberG          float64  `json:"fiber_g" yaml:"fiber_g"`
	Tags            []string `json:"tags" yaml:"tags"`
	Category        string   `json:"category" yaml:"category"`
}

func (i Ingredient) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (i Ingredient) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if i.HasTag(t) {
			return true
		}
	}
	return false
}
