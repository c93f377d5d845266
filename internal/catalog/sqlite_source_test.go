package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func seedSQLite(t *testing.T, rows []IngredientRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&IngredientRow{}))
	if len(rows) > 0 {
		require.NoError(t, db.Create(&rows).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := seedSQLite(t, []IngredientRow{
		{ID: "chicken_breast", CaloriesPer100g: 115, ProteinG: 23, FatG: 2.6, Category: "protein", Tags: "poultry, keto"},
		{ID: "broccoli", CaloriesPer100g: 35, ProteinG: 2.8, FatG: 0.4, CarbsG: 7, Category: "vegetable", Tags: "vegan,vegetarian"},
		{ID: "olive_oil", CaloriesPer100g: 884, FatG: 100, Category: "fat", Tags: ""},
	})

	cat, err := LoadSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	chicken, err := cat.Get("chicken_breast")
	require.NoError(t, err)
	assert.Equal(t, []string{"poultry", "keto"}, chicken.Tags)

	oil, err := cat.Get("olive_oil")
	require.NoError(t, err)
	assert.Empty(t, oil.Tags)
}

func TestLoadSQLiteValidates(t *testing.T) {
	path := seedSQLite(t, []IngredientRow{
		{ID: "made_up", CaloriesPer100g: 900, ProteinG: 1, FatG: 1, CarbsG: 1, Category: "protein"},
	})

	_, err := LoadSQLite(path)
	assert.Error(t, err)
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, splitTags("  "))
	assert.Equal(t, []string{"a", "b"}, splitTags("a, ,b,"))
}
