package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/acadex/research-scraper/internal/pkg/logger"
	"github.com/acadex/research-scraper/internal/pkg/redis"
	"github.com/acadex/research-scraper/internal/scraper/types"
	"go.uber.org/zap"
)

// DefaultRedisTTL bounds Redis entries when the caller passes no TTL.
const DefaultRedisTTL = 86400 * time.Second

const redisKeyPrefix = "scrape:"

// RedisCache stores JSON-encoded responses in Redis. Backend errors are
// logged and reported as misses, never surfaced to the request path.
type RedisCache struct {
	client *redis.Client
	logger *logger.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRedisCache wraps an already-connected Redis client.
func NewRedisCache(client *redis.Client, log *logger.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: log,
	}
}

// Get returns the cached response for key, if present.
func (c *RedisCache) Get(ctx context.Context, key string) (*types.ScrapeResponse, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key)
	if err != nil {
		if !redis.IsNil(err) {
			c.logger.Warn("cache read failed, treating as miss",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		c.misses.Add(1)
		return nil, false
	}

	var resp types.ScrapeResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		c.logger.Warn("cache entry corrupt, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return &resp, true
}

// Set stores resp under key for ttl. A non-positive ttl falls back to
// DefaultRedisTTL. Write failures are logged only.
func (c *RedisCache) Set(ctx context.Context, key string, resp *types.ScrapeResponse, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("failed to encode response for cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, data, ttl); err != nil {
		c.logger.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Delete removes the entry for key.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if _, err := c.client.Del(ctx, redisKeyPrefix+key); err != nil {
		c.logger.Warn("cache delete failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Clear flushes the whole database.
func (c *RedisCache) Clear(ctx context.Context) {
	if err := c.client.FlushDB(ctx); err != nil {
		c.logger.Warn("cache clear failed", zap.Error(err))
	}
}

// Stats returns hit and miss counters for this process.
func (c *RedisCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	return Stats{
		Backend: "redis",
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}
