// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/feature/bars/domain/entity"
	"market_backend/internal/feature/bars/usecase"
)

// CachingBarRepository decorates a BarRepository with Redis caching.
// Reads are cache-first; upserts pass through and invalidate the affected
// ticker's cached ranges. When rdb is nil the decorator is transparent.
type CachingBarRepository struct {
	inner     usecase.BarRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BarRepository = (*CachingBarRepository)(nil)

// NewCachingBarRepository decorates a BarRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "bars".
func NewCachingBarRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BarRepository, namespace string) *CachingBarRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "bars"
	}
	return &CachingBarRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch inserts or updates bars and invalidates related cache entries.
func (c *CachingBarRepository) UpsertBatch(ctx context.Context, bars []entity.Bar) error {
	// First upsert to the underlying repository
	if err := c.inner.UpsertBatch(ctx, bars); err != nil {
		return err
	}
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}

	// Invalidate affected cache entries (keys per ticker)
	seen := map[string]struct{}{}
	for _, b := range bars {
		prefix := c.cacheKeyPrefix(b.Ticker)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = c.deleteByPattern(ctx, prefix+"*") // Best effort: don't fail if cache deletion fails
	}
	return nil
}

// FindRange retrieves bars, checking cache first then falling back to the database.
func (c *CachingBarRepository) FindRange(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindRange(ctx, ticker, start, end)
	}

	key := c.cacheKey(ticker, start, end)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindRange(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific range query.
func (c *CachingBarRepository) cacheKey(ticker string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(ticker),
		boundKey(start),
		boundKey(end),
	)
}

// cacheKeyPrefix generates a prefix for invalidating a ticker's cached ranges.
func (c *CachingBarRepository) cacheKeyPrefix(ticker string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(ticker))
}

// boundKey renders a range bound; the zero time means unbounded.
func boundKey(t time.Time) string {
	if t.IsZero() {
		return "all"
	}
	return t.Format("2006-01-02")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingBarRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
