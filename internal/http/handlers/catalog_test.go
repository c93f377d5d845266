package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-backend/internal/catalog"
	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/logger"
)

func newCatalogRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cat, err := catalog.New([]domain.Ingredient{
		{ID: "chicken_breast", CaloriesPer100g: 115, ProteinG: 23, FatG: 2.6, Category: domain.CategoryProtein, Tags: []string{"poultry"}},
		{ID: "tofu_firm", CaloriesPer100g: 138, ProteinG: 14, FatG: 8, CarbsG: 2.5, Category: domain.CategoryProtein, Tags: []string{"vegan", "vegetarian", "soy", "legume"}},
		{ID: "broccoli", CaloriesPer100g: 35, ProteinG: 2.8, FatG: 0.4, CarbsG: 7, Category: domain.CategoryVegetable, Tags: []string{"vegan", "vegetarian"}},
		{ID: "almonds", CaloriesPer100g: 579, ProteinG: 21, FatG: 50, CarbsG: 22, Category: domain.CategoryFat, Tags: []string{"vegan", "vegetarian", "nut"}},
	})
	require.NoError(t, err)
	store := catalog.NewStaticStore(logger.NewNop(), cat)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCatalogHandler(logger.NewNop(), store)
	r.GET("/api/ingredients", h.ListIngredients)
	r.GET("/api/diets", h.ListDiets)
	r.POST("/api/admin/catalog/reload", h.ReloadCatalog)
	return r
}

type ingredientsResponse struct {
	Ingredients []domain.Ingredient `json:"ingredients"`
	Count       int                 `json:"count"`
}

func idsOf(ings []domain.Ingredient) []string {
	out := make([]string, 0, len(ings))
	for _, ing := range ings {
		out = append(out, ing.ID)
	}
	return out
}

func TestListIngredients(t *testing.T) {
	r := newCatalogRouter(t)

	w := getPath(t, r, "/api/ingredients")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ingredientsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Count)
}

func TestListIngredientsByDiet(t *testing.T) {
	r := newCatalogRouter(t)

	w := getPath(t, r, "/api/ingredients?diet=vegan")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ingredientsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"tofu_firm", "broccoli", "almonds"}, idsOf(resp.Ingredients))
}

func TestListIngredientsDietPlusExclude(t *testing.T) {
	r := newCatalogRouter(t)

	w := getPath(t, r, "/api/ingredients?diet=vegan&exclude=nut,%20Soy")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ingredientsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"broccoli"}, idsOf(resp.Ingredients))
}

func TestListIngredientsUnknownDiet(t *testing.T) {
	r := newCatalogRouter(t)

	w := getPath(t, r, "/api/ingredients?diet=fruitarian")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown_diet_type")
}

func TestListIngredientsEmptyResultIsArray(t *testing.T) {
	r := newCatalogRouter(t)

	w := getPath(t, r, "/api/ingredients?exclude=poultry,vegan")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ingredients":[]`)
}

func TestListDiets(t *testing.T) {
	r := newCatalogRouter(t)

	w := getPath(t, r, "/api/diets")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Diets []struct {
			DietType string `json:"diet_type"`
		} `json:"diets"`
		MealPatterns []string `json:"meal_patterns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Diets, 6)
	assert.Equal(t, []string{"3_meals", "3_meals_2_snacks", "5_small_meals"}, resp.MealPatterns)
}

func TestReloadCatalog(t *testing.T) {
	r := newCatalogRouter(t)

	w := postJSON(t, r, "/api/admin/catalog/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ingredients":4`)
}
