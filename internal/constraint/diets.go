package constraint

import (
	"sort"

	"github.com/platewise/platewise-backend/internal/domain"
)

// dietRule captures what a diet type implies for the solver: the
// compatibility tag every ingredient must carry, the tags it excludes
// outright, and the default macro split used when the request carries none.
type dietRule struct {
	requiredTag  string
	excludedTags []string
	macros       domain.MacroSplit
}

var dietRules = map[domain.DietType]dietRule{
	domain.DietStandard: {
		macros: domain.MacroSplit{ProteinPct: 30, FatPct: 30, CarbsPct: 40},
	},
	domain.DietVegan: {
		requiredTag:  "vegan",
		excludedTags: []string{"meat", "poultry", "fish", "dairy", "egg", "honey"},
		macros:       domain.MacroSplit{ProteinPct: 25, FatPct: 30, CarbsPct: 45},
	},
	domain.DietVegetarian: {
		requiredTag:  "vegetarian",
		excludedTags: []string{"meat", "poultry", "fish"},
		macros:       domain.MacroSplit{ProteinPct: 25, FatPct: 30, CarbsPct: 45},
	},
	domain.DietKeto: {
		requiredTag:  "keto",
		excludedTags: []string{"grain", "sugar", "legume", "fruit"},
		macros:       domain.MacroSplit{ProteinPct: 20, FatPct: 70, CarbsPct: 10},
	},
	domain.DietPaleo: {
		requiredTag:  "paleo",
		excludedTags: []string{"grain", "dairy", "legume", "sugar"},
		macros:       domain.MacroSplit{ProteinPct: 30, FatPct: 40, CarbsPct: 30},
	},
	domain.DietMediterranean: {
		// Preference-driven diet: no hard tag requirement or exclusions.
		macros: domain.MacroSplit{ProteinPct: 20, FatPct: 35, CarbsPct: 45},
	},
}

// DietInfo is the API-facing description of one supported diet type.
type DietInfo struct {
	DietType      domain.DietType   `json:"diet_type"`
	RequiredTag   string            `json:"required_tag,omitempty"`
	ExcludedTags  []string          `json:"excluded_tags,omitempty"`
	DefaultMacros domain.MacroSplit `json:"default_macros"`
}

// DietRule exposes the resolved rule for a diet type.
func DietRule(diet domain.DietType) (DietInfo, bool) {
	rule, ok := dietRules[diet]
	if !ok {
		return DietInfo{}, false
	}
	return DietInfo{
		DietType:      diet,
		RequiredTag:   rule.requiredTag,
		ExcludedTags:  append([]string(nil), rule.excludedTags...),
		DefaultMacros: rule.macros,
	}, true
}

// KnownDiets lists every supported diet in stable order.
func KnownDiets() []DietInfo {
	out := make([]DietInfo, 0, len(dietRules))
	for diet := range dietRules {
		info, _ := DietRule(diet)
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DietType < out[j].DietType })
	return out
}
