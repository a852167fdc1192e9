package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.WordStore = (*CachingWordStore)(nil)

const (
	// Key prefixes for Redis
	rangePrefix   = "ght:range:"
	rangeIndexKey = "ght:range:index"

	// DefaultCacheTTL applies when no TTL is configured
	DefaultCacheTTL = time.Hour
)

// CachingWordStore is a read-through cache in front of another WordStore.
// The concordance is read-only, so entries only expire by TTL or Invalidate.
// Redis failures are logged and the inner store answers instead.
type CachingWordStore struct {
	client *redis.Client
	inner  driven.WordStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingWordStore wraps inner with a Redis cache
func NewCachingWordStore(client *redis.Client, inner driven.WordStore, ttl time.Duration, logger *slog.Logger) *CachingWordStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingWordStore{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: logger,
	}
}

// rangeKey identifies one track range.
// Bounds are formatted with 'f' so 40001003.99 never turns into an exponent.
func rangeKey(track domain.Track, bounds domain.RangeBounds) string {
	return rangePrefix + track.KeyColumn + ":" + track.WordColumn + ":" +
		strconv.FormatFloat(bounds.Start, 'f', -1, 64) + ":" +
		strconv.FormatFloat(bounds.End, 'f', -1, 64)
}

// QueryRange serves from Redis when possible and fills the cache on a miss
func (c *CachingWordStore) QueryRange(ctx context.Context, track domain.Track, bounds domain.RangeBounds) ([]domain.WordRow, error) {
	// Reversed ranges are unbounded user input; keep them out of Redis.
	if bounds.Empty() {
		return c.inner.QueryRange(ctx, track, bounds)
	}

	key := rangeKey(track, bounds)

	rows, hit, err := c.get(ctx, key)
	if err != nil {
		c.logger.Warn("range cache read failed", "key", key, "error", err)
	}
	if hit {
		return rows, nil
	}

	rows, err = c.inner.QueryRange(ctx, track, bounds)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, key, rows); err != nil {
		c.logger.Warn("range cache write failed", "key", key, "error", err)
	}
	return rows, nil
}

func (c *CachingWordStore) get(ctx context.Context, key string) ([]domain.WordRow, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get range: %w", err)
	}

	var rows []domain.WordRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal range: %w", err)
	}
	return rows, true, nil
}

func (c *CachingWordStore) set(ctx context.Context, key string, rows []domain.WordRow) error {
	if rows == nil {
		rows = []domain.WordRow{}
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal range: %w", err)
	}

	// Use pipeline so the index never misses a stored range
	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, rangeIndexKey, key)
	pipe.Expire(ctx, rangeIndexKey, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save range: %w", err)
	}
	return nil
}

// Invalidate drops every cached range, for use after the concordance is reloaded.
// Returns the number of ranges removed.
func (c *CachingWordStore) Invalidate(ctx context.Context) (int, error) {
	keys, err := c.client.SMembers(ctx, rangeIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list cached ranges: %w", err)
	}

	pipe := c.client.Pipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, rangeIndexKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to invalidate ranges: %w", err)
	}
	return len(keys), nil
}

// Ping checks the inner store; the cache is optional for readiness
func (c *CachingWordStore) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.Warn("range cache unreachable", "error", err)
	}
	return c.inner.Ping(ctx)
}
