package app

import (
	"context"
	"fmt"

	"github.com/platewise/platewise-backend/internal/catalog"
	httpx "github.com/platewise/platewise-backend/internal/http"
	httpH "github.com/platewise/platewise-backend/internal/http/handlers"
	"github.com/platewise/platewise-backend/internal/jobs"
	"github.com/platewise/platewise-backend/internal/platform/logger"
	"github.com/platewise/platewise-backend/internal/services"
	"github.com/platewise/platewise-backend/internal/solver"
)

type App struct {
	Log     *logger.Logger
	Cfg     Config
	Catalog *catalog.Store
	Planner services.PlannerService
	Worker  *jobs.Worker
	Server  *httpx.Server

	cancel context.CancelFunc
}

func New() (*App, error) {
	cfg := LoadConfig()

	log, err := logger.New(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := wireCatalog(log, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	solverCfg := solver.DefaultConfig()
	solverCfg.MaxParallelDays = cfg.MaxParallelDays
	slv := solver.New(log, solverCfg)

	var cache services.PlanCache
	if cfg.RedisAddr != "" {
		cache, err = services.NewRedisPlanCache(log, cfg.RedisAddr, cfg.PlanCacheTTL)
		if err != nil {
			// The cache is an optimization; run without it.
			log.Warn("Plan cache unavailable", "error", err)
			cache = nil
		}
	}

	planner := services.NewPlannerService(log, store, slv, cache, cfg.SolveTimeout)

	jobStore := jobs.NewStore(cfg.JobRetention)
	worker := jobs.NewWorker(log, planner, jobStore, cfg.JobWorkers, cfg.JobQueueSize)

	server := httpx.NewServer(httpx.RouterConfig{
		Log:            log,
		PlanHandler:    httpH.NewPlanHandler(planner, worker),
		JobHandler:     httpH.NewJobHandler(jobStore),
		CatalogHandler: httpH.NewCatalogHandler(log, store),
		HealthHandler:  httpH.NewHealthHandler(),
	})

	return &App{
		Log:     log,
		Cfg:     cfg,
		Catalog: store,
		Planner: planner,
		Worker:  worker,
		Server:  server,
	}, nil
}

func wireCatalog(log *logger.Logger, cfg Config) (*catalog.Store, error) {
	if cfg.CatalogDB != "" {
		return catalog.NewStore(log, func() (*catalog.Catalog, error) {
			return catalog.LoadSQLite(cfg.CatalogDB)
		})
	}
	return catalog.NewStore(log, func() (*catalog.Catalog, error) {
		return catalog.LoadFile(cfg.CatalogPath)
	})
}

// Start launches background workers.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.Worker.Start(ctx)
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

// Shutdown drains the HTTP server, waiting for in-flight requests up to
// the context deadline.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.Worker.Stop()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
