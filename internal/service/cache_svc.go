package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/pkg/hash"
)

// DefaultReportTTL applies when no TTL is configured.
const DefaultReportTTL = 10 * time.Minute

// CacheService provides a Redis cache-aside layer for computed dashboard reports.
type CacheService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string, ttl time.Duration) *CacheService {
	log := middleware.Logger.With().Str("component", "cache").Logger()

	if redisURL == "" {
		log.Info().Msg("no redis URL configured, caching disabled")
		return &CacheService{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid redis URL, caching disabled")
		return &CacheService{ttl: ttl}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis connection failed, caching disabled")
		return &CacheService{ttl: ttl}
	}

	log.Info().Msg("redis connected, caching enabled")
	return NewCacheServiceWithClient(rdb, ttl)
}

// NewCacheServiceWithClient wraps an existing client. A nil client disables caching.
func NewCacheServiceWithClient(rdb *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &CacheService{rdb: rdb, ttl: ttl}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetReport retrieves a cached report. Returns nil if not cached or cache is disabled.
func (c *CacheService) GetReport(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetReport stores a report in cache.
func (c *CacheService) SetReport(ctx context.Context, key string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// ReportKey builds report:<source>:<generation>:<filters hash>. A new
// generation changes every key, so stale entries simply age out.
func ReportKey(source string, generation uint64, filters any) (string, error) {
	fp, err := hash.Fingerprint(filters, 16)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("report:%s:%d:%s", source, generation, fp), nil
}
