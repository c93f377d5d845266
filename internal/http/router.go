package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/platewise/platewise-backend/internal/http/handlers"
	httpMW "github.com/platewise/platewise-backend/internal/http/middleware"
	"github.com/platewise/platewise-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	PlanHandler    *httpH.PlanHandler
	JobHandler     *httpH.JobHandler
	CatalogHandler *httpH.CatalogHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Plans
		if cfg.PlanHandler != nil {
			api.POST("/plans", cfg.PlanHandler.CreatePlan)
			api.POST("/plans/async", cfg.PlanHandler.CreatePlanAsync)
		}

		// Jobs
		if cfg.JobHandler != nil {
			api.GET("/jobs/:id", cfg.JobHandler.GetJob)
		}

		// Catalog
		if cfg.CatalogHandler != nil {
			api.GET("/ingredients", cfg.CatalogHandler.ListIngredients)
			api.GET("/diets", cfg.CatalogHandler.ListDiets)
			api.POST("/admin/catalog/reload", cfg.CatalogHandler.ReloadCatalog)
		}
	}

	return r
}
