package catalog

import (
	"fmt"
	"math"

	"github.com/platewise/platewise-backend/internal/domain"
)

// Atwater factors (kcal per gram) used to reconcile stated calories with
// macro composition at load time.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0

	// A record is rejected when stated calories deviate from the computed
	// value by more than this relative fraction and this absolute floor.
	// Real-world label data is noisy (fiber, rounding), so the band is wide.
	calorieToleranceFrac = 0.15
	calorieToleranceKcal = 15.0
)

// Catalog is an immutable, re-iterable collection of validated ingredients.
// Loaded once, shared read-only across all concurrent requests.
type Catalog struct {
	ingredients []domain.Ingredient
	index       map[string]int
}

// New validates records and builds a catalog. All problems are collected
// into a single CatalogLoadError rather than failing on the first.
func New(records []domain.Ingredient) (*Catalog, error) {
	var problems []string
	index := make(map[string]int, len(records))

	for i, rec := range records {
		if rec.ID == "" {
			problems = append(problems, fmt.Sprintf("record %d: empty id", i))
			continue
		}
		if _, dup := index[rec.ID]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate id", rec.ID))
			continue
		}
		if rec.CaloriesPer100g < 0 || rec.ProteinG < 0 || rec.FatG < 0 || rec.CarbsG < 0 || rec.FiberG < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative nutrition value", rec.ID))
			continue
		}
		if rec.Category == "" {
			problems = append(problems, fmt.Sprintf("%s: empty category", rec.ID))
			continue
		}
		computed := rec.ProteinG*kcalPerGramProtein + rec.CarbsG*kcalPerGramCarbs + rec.FatG*kcalPerGramFat
		allowed := math.Max(calorieToleranceKcal, rec.CaloriesPer100g*calorieToleranceFrac)
		if math.Abs(rec.CaloriesPer100g-computed) > allowed {
			problems = append(problems, fmt.Sprintf("%s: stated %.0f kcal/100g inconsistent with macros (computed %.0f)",
				rec.ID, rec.CaloriesPer100g, computed))
			continue
		}
		index[rec.ID] = i
	}

	if len(problems) > 0 {
		return nil, &domain.CatalogLoadError{Problems: problems}
	}

	ingredients := make([]domain.Ingredient, len(records))
	copy(ingredients, records)
	return &Catalog{ingredients: ingredients, index: index}, nil
}

func (c *Catalog) Len() int { return len(c.ingredients) }

func (c *Catalog) Get(id string) (domain.Ingredient, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Ingredient{}, &domain.UnknownIngredientError{ID: id}
	}
	return c.ingredients[i], nil
}

// All returns every ingredient in stable catalog order. Callers must treat
// the result as read-only.
func (c *Catalog) All() []domain.Ingredient {
	return c.ingredients
}

// Filter returns, in stable catalog order, every ingredient that carries
// requiredTag (when non-empty) and none of the excluded tags. The result is
// a plain slice so the solver can iterate it repeatedly.
func (c *Catalog) Filter(requiredTag string, excludedTags []string) []domain.Ingredient {
	var out []domain.Ingredient
	for _, ing := range c.ingredients {
		if requiredTag != "" && !ing.HasTag(requiredTag) {
			continue
		}
		if ing.HasAnyTag(excludedTags) {
			continue
		}
		out = append(out, ing)
	}
	return out
}
