package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	reportapp "github.com/propmanager/backend/internal/application/report"
	"github.com/redis/go-redis/v9"
)

// DefaultReportKeyPrefix namespaces report entries
const DefaultReportKeyPrefix = "pm:report:"

const scanBatch = 100

// RedisReportCache stores report read models as JSON with a fixed TTL
type RedisReportCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisReportCache creates a report cache; a non-positive ttl means five minutes
func NewRedisReportCache(client redis.UniversalClient, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: DefaultReportKeyPrefix,
		ttl:       ttl,
	}
}

// Get loads key into dest
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read report cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores value under key for the cache TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}

// Invalidate deletes every key under the prefix. The whole SCAN completes
// before any key is deleted, then keys go out in UNLINK chunks.
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan report cache: %w", err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Unlink(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("failed to clear report cache: %w", err)
		}
	}
	return nil
}

var _ reportapp.Cache = (*RedisReportCache)(nil)
