package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Mob listings change on every accepted submission, so the TTL stays short.
const (
	MobCacheTTL   = time.Minute
	StatsCacheTTL = 30 * time.Second
)

// CacheService provides a Redis cache-aside layer for mob listing and stats
// responses.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, caching degrades to a no-op.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Enabled reports whether a live Redis connection backs this cache.
func (c *CacheService) Enabled() bool {
	return c.rdb != nil
}

// GetMob retrieves a cached mob listing response. Nil when absent or disabled.
func (c *CacheService) GetMob(ctx context.Context, mobID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, mobKey(mobID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetMob stores a mob listing response.
func (c *CacheService) SetMob(ctx context.Context, mobID string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, mobKey(mobID), b, MobCacheTTL).Err()
}

// InvalidateMob drops a mob listing after a new video is appended.
func (c *CacheService) InvalidateMob(ctx context.Context, mobID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, mobKey(mobID), statsKey()).Err()
}

// GetStats retrieves the cached stats response. Nil when absent or disabled.
func (c *CacheService) GetStats(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, statsKey()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetStats stores the stats response.
func (c *CacheService) SetStats(ctx context.Context, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(), b, StatsCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func mobKey(mobID string) string {
	return fmt.Sprintf("mob:%s", mobID)
}

func statsKey() string {
	return "stats:global"
}
