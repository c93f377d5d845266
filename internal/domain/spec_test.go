package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealPatternWeightsSumToOne(t *testing.T) {
	for _, pattern := range KnownMealPatterns() {
		pattern := pattern
		t.Run(string(pattern), func(t *testing.T) {
			slots, ok := pattern.Slots()
			require.True(t, ok)
			require.NotEmpty(t, slots)

			sum := 0.0
			seen := map[string]bool{}
			for _, slot := range slots {
				sum += slot.Frac
				assert.False(t, seen[slot.Name], "duplicate slot name %q", slot.Name)
				seen[slot.Name] = true
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestSlotsUnknownPattern(t *testing.T) {
	_, ok := MealPattern("intermittent_fasting").Slots()
	assert.False(t, ok)
}

func TestHasTag(t *testing.T) {
	ing := Ingredient{Tags: []string{"vegan", "keto"}}
	assert.True(t, ing.HasTag("vegan"))
	assert.False(t, ing.HasTag("paleo"))
	assert.True(t, ing.HasAnyTag([]string{"paleo", "keto"}))
	assert.False(t, ing.HasAnyTag(nil))
}
