package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/platewise/platewise-backend/internal/catalog"
	"github.com/platewise/platewise-backend/internal/constraint"
	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/logger"
	"github.com/platewise/platewise-backend/internal/solver"
)

// MealJSON is the wire shape of one generated meal.
type MealJSON struct {
	Ingredients []domain.Portion `json:"ingredients"`
	Calories    float64          `json:"calories"`
	ProteinG    float64          `json:"protein_g"`
	FatG        float64          `json:"fat_g"`
	CarbsG      float64          `json:"carbs_g"`
}

// PlanResponse is the wire shape of a generated plan: day index → meal name
// → meal contents, plus plan-level totals and the degradation markers.
type PlanResponse struct {
	MealPlan     map[string]map[string]MealJSON `json:"meal_plan"`
	Totals       domain.NutritionTotals         `json:"totals"`
	Degraded     bool                           `json:"degraded"`
	DegradedDays []int                          `json:"degraded_days"`
	Seed         int64                          `json:"seed"`
}

type PlannerService interface {
	// Generate validates the raw request, runs the solver under the
	// configured deadline and returns the wire response. Validation and
	// infeasibility surface as typed domain errors.
	Generate(ctx context.Context, req domain.PlanRequest) (*PlanResponse, error)
}

type plannerService struct {
	log     *logger.Logger
	store   *catalog.Store
	solver  *solver.Solver
	cache   PlanCache
	timeout time.Duration
}

func NewPlannerService(baseLog *logger.Logger, store *catalog.Store, slv *solver.Solver, cache PlanCache, timeout time.Duration) PlannerService {
	return &plannerService{
		log:     baseLog.With("service", "PlannerService"),
		store:   store,
		solver:  slv,
		cache:   cache,
		timeout: timeout,
	}
}

func (s *plannerService) Generate(ctx context.Context, req domain.PlanRequest) (*PlanResponse, error) {
	spec, err := constraint.Validate(req)
	if err != nil {
		return nil, err
	}

	// Only explicitly seeded requests are cacheable: the solver is
	// deterministic for (catalog, spec, seed) and for nothing less.
	cacheable := s.cache != nil && spec.Seed != nil
	key := ""
	if cacheable {
		key = cacheKey(spec)
		cacheable = key != ""
	}
	if cacheable {
		if resp, ok := s.cache.Get(ctx, key); ok {
			s.log.Debug("Plan cache hit", "key", key)
			return resp, nil
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	plan, err := s.solver.Solve(ctx, s.store.Current(), spec)
	if err != nil {
		return nil, err
	}
	s.log.Info("Plan generated",
		"days", spec.Days,
		"diet", spec.DietType,
		"degraded", plan.Degraded,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	resp := buildResponse(plan)
	if cacheable {
		s.cache.Set(ctx, key, resp)
	}
	return resp, nil
}

func buildResponse(plan *domain.MealPlan) *PlanResponse {
	days := make(map[string]map[string]MealJSON, len(plan.Days))
	for _, day := range plan.Days {
		meals := make(map[string]MealJSON, len(day.Meals))
		for _, meal := range day.Meals {
			portions := meal.Portions
			if portions == nil {
				portions = []domain.Portion{}
			}
			meals[meal.Name] = MealJSON{
				Ingredients: portions,
				Calories:    meal.Totals.Calories,
				ProteinG:    meal.Totals.ProteinG,
				FatG:        meal.Totals.FatG,
				CarbsG:      meal.Totals.CarbsG,
			}
		}
		days[strconv.Itoa(day.Index)] = meals
	}
	return &PlanResponse{
		MealPlan:     days,
		Totals:       plan.Totals,
		Degraded:     plan.Degraded,
		DegradedDays: plan.DegradedDays,
		Seed:         plan.Seed,
	}
}

// cacheKey hashes the canonical spec. ExcludedTags are sorted by the
// validator, so equal requests hash equal.
func cacheKey(spec domain.Spec) string {
	raw, err := json.Marshal(spec)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return "plan:" + hex.EncodeToString(sum[:])
}
