package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/catalog"
	"github.com/platewise/platewise-backend/internal/constraint"
	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/platform/logger"
)

type CatalogHandler struct {
	log   *logger.Logger
	store *catalog.Store
}

func NewCatalogHandler(baseLog *logger.Logger, store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{log: baseLog.With("handler", "CatalogHandler"), store: store}
}

// GET /api/ingredients?diet=vegan&exclude=nut,soy
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	requiredTag := ""
	var excluded []string

	if diet := strings.TrimSpace(c.Query("diet")); diet != "" {
		info, ok := constraint.DietRule(domain.DietType(strings.ToLower(diet)))
		if !ok {
			response.RespondError(c, http.StatusBadRequest, "unknown_diet_type", fmt.Errorf("unknown diet type %q", diet))
			return
		}
		requiredTag = info.RequiredTag
		excluded = append(excluded, info.ExcludedTags...)
	}
	if raw := strings.TrimSpace(c.Query("exclude")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				excluded = append(excluded, t)
			}
		}
	}

	ingredients := h.store.Current().Filter(requiredTag, excluded)
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	response.RespondOK(c, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

// GET /api/diets
func (h *CatalogHandler) ListDiets(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"diets":         constraint.KnownDiets(),
		"meal_patterns": domain.KnownMealPatterns(),
	})
}

// POST /api/admin/catalog/reload
func (h *CatalogHandler) ReloadCatalog(c *gin.Context) {
	count, err := h.store.Reload()
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "catalog_reload_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ingredients": count})
}
