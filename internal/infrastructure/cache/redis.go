package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
)

// RedisCache stores day summaries as JSON strings under prefixed keys.
type RedisCache struct {
	client *redis.Client
	prefix string
}

var _ ports.SummaryCache = (*RedisCache)(nil)

// NewRedisCache connects to the given address and verifies the connection.
func NewRedisCache(ctx context.Context, addr, prefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if prefix == "" {
		prefix = "newssummary"
	}
	return &RedisCache{client: client, prefix: prefix}, nil
}

// Get loads a cached day run; a missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key domain.CacheKey) ([]domain.SummaryRecord, bool, error) {
	payload, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}

	var records []domain.SummaryRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return records, true, nil
}

// Put writes the records, replacing any previous entry for the key.
func (c *RedisCache) Put(ctx context.Context, key domain.CacheKey, records []domain.SummaryRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("set cache entry: %w", err)
	}
	return nil
}

func (c *RedisCache) key(key domain.CacheKey) string {
	return c.prefix + ":" + key.String()
}
