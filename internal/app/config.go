package app

import (
	"time"

	"github.com/platewise/platewise-backend/internal/platform/envutil"
)

type Config struct {
	Port string
	Mode string

	// Catalog source: SQLite takes precedence when both are set.
	CatalogPath string
	CatalogDB   string

	RedisAddr    string
	PlanCacheTTL time.Duration

	SolveTimeout    time.Duration
	MaxParallelDays int

	JobWorkers   int
	JobQueueSize int
	JobRetention time.Duration

	ShutdownTimeout time.Duration
}

func LoadConfig() Config {
	return Config{
		Port: envutil.String("PORT", "8080"),
		Mode: envutil.String("LOG_MODE", "development"),

		CatalogPath: envutil.String("CATALOG_PATH", "data/ingredients.yaml"),
		CatalogDB:   envutil.String("CATALOG_DB", ""),

		RedisAddr:    envutil.String("REDIS_ADDR", ""),
		PlanCacheTTL: envutil.Duration("PLAN_CACHE_TTL", 24*time.Hour),

		SolveTimeout:    envutil.Duration("SOLVE_TIMEOUT", 10*time.Second),
		MaxParallelDays: envutil.Int("MAX_PARALLEL_DAYS", 4),

		JobWorkers:   envutil.Int("JOB_WORKERS", 4),
		JobQueueSize: envutil.Int("JOB_QUEUE_SIZE", 64),
		JobRetention: envutil.Duration("JOB_RETENTION", time.Hour),

		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}
