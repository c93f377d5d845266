package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/platewise/platewise-backend/internal/platform/logger"
)

// PlanCache stores finished responses for seeded requests. Lookups are best
// effort: a cache failure must never fail the planning request.
type PlanCache interface {
	Get(ctx context.Context, key string) (*PlanResponse, bool)
	Set(ctx context.Context, key string, resp *PlanResponse)
}

type redisPlanCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisPlanCache(baseLog *logger.Logger, addr string, ttl time.Duration) (PlanCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisPlanCache{
		log: baseLog.With("service", "RedisPlanCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *redisPlanCache) Get(ctx context.Context, key string) (*PlanResponse, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Plan cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var resp PlanResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Warn("Plan cache entry corrupt, ignoring", "key", key, "error", err)
		return nil, false
	}
	return &resp, true
}

func (c *redisPlanCache) Set(ctx context.Context, key string, resp *PlanResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		c.log.Warn("Plan cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Plan cache write failed", "key", key, "error", err)
	}
}
