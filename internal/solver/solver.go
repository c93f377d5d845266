// Package solver assembles multi-day meal plans by greedy-randomized
// ingredient selection with bounded local repair. Construction reads only
// the immutable catalog and the spec, so independent days run in parallel.
package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platewise/platewise-backend/internal/catalog"
	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/nutrition"
	"github.com/platewise/platewise-backend/internal/platform/logger"
)

// daySeedStride separates per-day RNG streams so days can be solved
// concurrently while the whole plan stays reproducible for a given seed.
const daySeedStride = 7919

const devEps = 1e-9

type Solver struct {
	cfg Config
	log *logger.Logger
}

func New(log *logger.Logger, cfg Config) *Solver {
	return &Solver{cfg: cfg, log: log.With("service", "MealPlanSolver")}
}

// mealTarget is the calorie and macro-gram sub-target for one meal or day.
type mealTarget struct {
	Calories float64
	ProteinG float64
	FatG     float64
	CarbsG   float64
}

// Solve produces a meal plan for the spec, or fails with
// InfeasibleConstraintError before any construction when the eligible pool
// cannot cover the required categories. Days that miss tolerance after the
// repair budget (or a context deadline) are returned degraded, never
// dropped.
func (s *Solver) Solve(ctx context.Context, cat *catalog.Catalog, spec domain.Spec) (*domain.MealPlan, error) {
	slots, ok := spec.MealPattern.Slots()
	if !ok {
		return nil, fmt.Errorf("unknown meal pattern %q", spec.MealPattern)
	}

	pool := cat.Filter(spec.RequiredTag, spec.ExcludedTags)
	if len(pool) == 0 {
		return nil, &domain.InfeasibleConstraintError{DietType: spec.DietType, ExcludedTags: spec.ExcludedTags}
	}
	if hasMainMeal(slots) {
		for _, required := range []string{domain.CategoryProtein, domain.CategoryVegetable} {
			if countCategory(pool, required) == 0 {
				return nil, &domain.InfeasibleConstraintError{
					DietType:     spec.DietType,
					Category:     required,
					ExcludedTags: spec.ExcludedTags,
				}
			}
		}
	}

	seed := time.Now().UnixNano()
	if spec.Seed != nil {
		seed = *spec.Seed
	}

	byID := make(map[string]domain.Ingredient, len(pool))
	for _, ing := range pool {
		byID[ing.ID] = ing
	}

	limit := s.cfg.MaxParallelDays
	if limit < 1 {
		limit = 1
	}

	days := make([]domain.Day, spec.Days)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < spec.Days; i++ {
		i := i
		g.Go(func() error {
			days[i] = s.buildDay(gctx, pool, byID, spec, slots, seed+int64(i)*daySeedStride, i)
			return nil
		})
	}
	// Day builders never error; on deadline they finish best-effort.
	_ = g.Wait()

	plan := domain.MealPlan{Days: days, Seed: seed, DegradedDays: []int{}}
	totals, err := nutrition.PlanTotals(cat, plan)
	if err != nil {
		// A portion referencing a missing id is a solver bug; surface it.
		return nil, err
	}
	plan.Totals = totals

	for _, d := range days {
		if d.Degraded {
			plan.DegradedDays = append(plan.DegradedDays, d.Index)
		}
	}
	dayTarget := s.dayTarget(spec)
	planTarget := scaleTarget(dayTarget, float64(spec.Days))
	plan.Degraded = len(plan.DegradedDays) > 0 || !s.withinTolerance(totals, planTarget)

	s.log.Debug("Plan solved",
		"days", spec.Days,
		"seed", seed,
		"calories", totals.Calories,
		"degraded", plan.Degraded,
	)
	return &plan, nil
}

func (s *Solver) dayTarget(spec domain.Spec) mealTarget {
	cal := float64(spec.TargetCalories)
	return mealTarget{
		Calories: cal,
		ProteinG: cal * spec.MacroTargets.ProteinPct / 100 / 4,
		FatG:     cal * spec.MacroTargets.FatPct / 100 / 9,
		CarbsG:   cal * spec.MacroTargets.CarbsPct / 100 / 4,
	}
}

func scaleTarget(t mealTarget, f float64) mealTarget {
	return mealTarget{
		Calories: t.Calories * f,
		ProteinG: t.ProteinG * f,
		FatG:     t.FatG * f,
		CarbsG:   t.CarbsG * f,
	}
}

func (s *Solver) buildDay(ctx context.Context, pool []domain.Ingredient, byID map[string]domain.Ingredient, spec domain.Spec, slots []domain.MealSlot, seed int64, index int) domain.Day {
	rng := rand.New(rand.NewSource(seed))
	dayTarget := s.dayTarget(spec)

	meals := make([]domain.Meal, len(slots))
	u := newUsage()
	for si, slot := range slots {
		meals[si] = s.buildMeal(ctx, pool, scaleTarget(dayTarget, slot.Frac), slot, rng, u)
	}

	for round := 0; round < s.cfg.RepairRounds; round++ {
		if ctx.Err() != nil {
			break
		}
		totals := sumMeals(meals)
		if s.withinTolerance(totals, dayTarget) {
			break
		}

		worst := s.worstMeal(meals, slots, dayTarget)
		others := make([]domain.Meal, 0, len(meals)-1)
		others = append(others, meals[:worst]...)
		others = append(others, meals[worst+1:]...)

		rebuilt := s.buildMeal(ctx, pool, scaleTarget(dayTarget, slots[worst].Frac), slots[worst], rng, usageOf(others, byID))

		oldDev := s.weightedDev(totals, dayTarget)
		candidate := append(append([]domain.Meal{}, others[:worst]...), rebuilt)
		candidate = append(candidate, others[worst:]...)
		if s.weightedDev(sumMeals(candidate), dayTarget) < oldDev {
			meals[worst] = rebuilt
		}
	}

	totals := sumMeals(meals)
	return domain.Day{
		Index:    index,
		Meals:    meals,
		Totals:   totals,
		Degraded: ctx.Err() != nil || !s.withinTolerance(totals, dayTarget),
	}
}

// usage tracks ingredient and category repetition within one day; it feeds
// the variety tie-breaks.
type usage struct {
	ingredients map[string]int
	categories  map[string]int
}

func newUsage() usage {
	return usage{ingredients: map[string]int{}, categories: map[string]int{}}
}

func usageOf(meals []domain.Meal, byID map[string]domain.Ingredient) usage {
	u := newUsage()
	for _, m := range meals {
		for _, p := range m.Portions {
			u.ingredients[p.IngredientID]++
			if ing, ok := byID[p.IngredientID]; ok {
				u.categories[ing.Category]++
			}
		}
	}
	return u
}

func (s *Solver) buildMeal(ctx context.Context, pool []domain.Ingredient, target mealTarget, slot domain.MealSlot, rng *rand.Rand, u usage) domain.Meal {
	var portions []domain.Portion
	var totals domain.NutritionTotals

	// Main meals must contain at least one protein and one vegetable
	// source; snacks are unconstrained.
	var needed []string
	if !slot.Snack {
		needed = []string{domain.CategoryProtein, domain.CategoryVegetable}
	}
	have := map[string]bool{}

	for len(portions) < s.cfg.MaxIngredientsPerMeal {
		if ctx.Err() != nil {
			break
		}
		// Stop on the full objective, not calories alone: a meal that hits
		// its calorie band with a skewed macro split keeps improving while
		// any candidate still lowers the deviation.
		missing := firstMissing(needed, have)
		if missing == "" && s.withinTolerance(totals, target) {
			break
		}

		pick, grams, ok := s.selectIngredient(pool, totals, target, missing, rng, u)
		if !ok {
			break
		}

		portions = append(portions, domain.Portion{IngredientID: pick.ID, AmountG: grams})
		totals = totals.Add(nutrition.Contribution(pick, grams))
		have[pick.Category] = true
		u.ingredients[pick.ID]++
		u.categories[pick.Category]++
	}

	return domain.Meal{Name: slot.Name, Portions: portions, Totals: totals}
}

type scoredCandidate struct {
	ing   domain.Ingredient
	grams float64
	dev   float64
	used  int
	cat   int
	order int
}

// portionFracs are the shares of the remaining calorie budget tried per
// candidate; the best-scoring one wins. Trying fractions keeps a single
// dense ingredient from swallowing a whole meal's budget; the smallest
// admits fine-grained portions that correct a macro gap late in a meal.
var portionFracs = [...]float64{1.0, 0.5, 0.3, 0.15}

// selectIngredient scores every eligible candidate by post-add weighted
// squared deviation, then samples one with probability proportional to its
// improvement. Ties resolve to unused-today ingredients, then to the least
// repeated category, then to catalog order, so a fixed seed reproduces the
// exact plan.
func (s *Solver) selectIngredient(pool []domain.Ingredient, totals domain.NutritionTotals, target mealTarget, requiredCategory string, rng *rand.Rand, u usage) (domain.Ingredient, float64, bool) {
	current := s.weightedDev(totals, target)
	remaining := target.Calories - totals.Calories

	var cands []scoredCandidate
	for order, ing := range pool {
		if requiredCategory != "" && ing.Category != requiredCategory {
			continue
		}
		grams, dev := 0.0, math.Inf(1)
		for _, frac := range portionFracs {
			g := s.portionFor(ing, remaining*frac)
			if g <= 0 {
				continue
			}
			post := totals.Add(nutrition.Contribution(ing, g))
			if d := s.weightedDev(post, target); d < dev-devEps {
				grams, dev = g, d
			}
		}
		if grams <= 0 {
			continue
		}
		if requiredCategory == "" && dev >= current {
			continue
		}
		cands = append(cands, scoredCandidate{
			ing:   ing,
			grams: grams,
			dev:   dev,
			used:  u.ingredients[ing.ID],
			cat:   u.categories[ing.Category],
			order: order,
		})
	}
	if len(cands) == 0 {
		return domain.Ingredient{}, 0, false
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if math.Abs(a.dev-b.dev) > devEps {
			return a.dev < b.dev
		}
		if a.used != b.used {
			return a.used < b.used
		}
		if a.cat != b.cat {
			return a.cat < b.cat
		}
		return a.order < b.order
	})

	var total float64
	for _, c := range cands {
		if imp := current - c.dev; imp > 0 {
			total += imp
		}
	}
	if total <= 0 {
		// Forced category fill: nothing improves, take the best-scoring.
		best := cands[0]
		return best.ing, best.grams, true
	}

	r := rng.Float64() * total
	for _, c := range cands {
		imp := current - c.dev
		if imp <= 0 {
			continue
		}
		r -= imp
		if r <= 0 {
			return c.ing, c.grams, true
		}
	}
	best := cands[0]
	return best.ing, best.grams, true
}

// portionFor sizes a portion to approach the remaining calorie budget
// without exceeding it by more than the overshoot bound, clamped to the
// category's realistic serving range and rounded to the portion step.
func (s *Solver) portionFor(ing domain.Ingredient, remainingCal float64) float64 {
	if remainingCal <= 0 || ing.CaloriesPer100g < 1 {
		return 0
	}
	bounds := s.cfg.portionRange(ing.Category)

	grams := remainingCal / ing.CaloriesPer100g * 100
	if grams > bounds.MaxG {
		grams = bounds.MaxG
	}
	if grams < bounds.MinG {
		grams = bounds.MinG
	}
	grams = roundStep(grams, s.cfg.PortionStepG)
	if grams < bounds.MinG {
		grams += s.cfg.PortionStepG
	}

	if ing.CaloriesPer100g*grams/100 > remainingCal*(1+s.cfg.OvershootFrac) {
		budget := remainingCal * (1 + s.cfg.OvershootFrac) / ing.CaloriesPer100g * 100
		grams = math.Floor(budget/s.cfg.PortionStepG) * s.cfg.PortionStepG
	}
	if grams < bounds.MinG {
		return 0
	}
	return grams
}

func (s *Solver) weightedDev(t domain.NutritionTotals, target mealTarget) float64 {
	return s.cfg.CalorieWeight*sqRelDev(t.Calories, target.Calories) +
		s.cfg.ProteinWeight*sqRelDev(t.ProteinG, target.ProteinG) +
		s.cfg.FatWeight*sqRelDev(t.FatG, target.FatG) +
		s.cfg.CarbWeight*sqRelDev(t.CarbsG, target.CarbsG)
}

func sqRelDev(v, target float64) float64 {
	denom := target
	if denom < 1 {
		denom = 1
	}
	d := (v - target) / denom
	return d * d
}

func (s *Solver) calorieOK(v, target float64) bool {
	return math.Abs(v-target) <= s.cfg.CalorieToleranceFrac*target
}

// withinTolerance checks both the calorie band and macro percentage points
// against the target's implied split.
func (s *Solver) withinTolerance(t domain.NutritionTotals, target mealTarget) bool {
	if target.Calories <= 0 || t.Calories <= 0 {
		return false
	}
	if !s.calorieOK(t.Calories, target.Calories) {
		return false
	}
	checks := []struct {
		grams, targetGrams, kcalPerGram float64
	}{
		{t.ProteinG, target.ProteinG, 4},
		{t.FatG, target.FatG, 9},
		{t.CarbsG, target.CarbsG, 4},
	}
	for _, c := range checks {
		pct := c.grams * c.kcalPerGram / t.Calories * 100
		targetPct := c.targetGrams * c.kcalPerGram / target.Calories * 100
		if math.Abs(pct-targetPct) > s.cfg.MacroTolerancePts {
			return false
		}
	}
	return true
}

// worstMeal picks the repair target by weighted deviation against the
// meal's own sub-target, so a macro-skewed meal is repaired even when its
// calories are on the mark.
func (s *Solver) worstMeal(meals []domain.Meal, slots []domain.MealSlot, dayTarget mealTarget) int {
	worst, worstDev := 0, -1.0
	for i, m := range meals {
		dev := s.weightedDev(m.Totals, scaleTarget(dayTarget, slots[i].Frac))
		if dev > worstDev {
			worst, worstDev = i, dev
		}
	}
	return worst
}

func sumMeals(meals []domain.Meal) domain.NutritionTotals {
	var totals domain.NutritionTotals
	for _, m := range meals {
		totals = totals.Add(m.Totals)
	}
	return totals
}

func firstMissing(needed []string, have map[string]bool) string {
	for _, c := range needed {
		if !have[c] {
			return c
		}
	}
	return ""
}

func hasMainMeal(slots []domain.MealSlot) bool {
	for _, s := range slots {
		if !s.Snack {
			return true
		}
	}
	return false
}

func countCategory(pool []domain.Ingredient, category string) int {
	n := 0
	for _, ing := range pool {
		if ing.Category == category {
			n++
		}
	}
	return n
}

func roundStep(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}
