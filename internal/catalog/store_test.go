package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/logger"
)

func TestNewStoreFailsOnBadInitialLoad(t *testing.T) {
	_, err := NewStore(logger.NewNop(), func() (*Catalog, error) {
		return nil, fmt.Errorf("boom")
	})
	assert.Error(t, err)
}

func TestStoreReloadKeepsPreviousOnFailure(t *testing.T) {
	good, err := New(validRecords())
	require.NoError(t, err)

	fail := false
	store, err := NewStore(logger.NewNop(), func() (*Catalog, error) {
		if fail {
			return nil, fmt.Errorf("source unavailable")
		}
		return good, nil
	})
	require.NoError(t, err)

	fail = true
	_, err = store.Reload()
	assert.Error(t, err)
	assert.Equal(t, good.Len(), store.Current().Len())
}

func TestStoreReloadSwapsCatalog(t *testing.T) {
	first, err := New(validRecords())
	require.NoError(t, err)
	second, err := New([]domain.Ingredient{
		{ID: "spinach", CaloriesPer100g: 23, ProteinG: 2.9, FatG: 0.4, CarbsG: 3.6, Category: domain.CategoryVegetable, Tags: []string{"vegan"}},
	})
	require.NoError(t, err)

	current := first
	store, err := NewStore(logger.NewNop(), func() (*Catalog, error) { return current, nil })
	require.NoError(t, err)

	current = second
	count, err := store.Reload()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Same(t, second, store.Current())
}
