package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bookworm-social/recommendation-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultResultTTL = 10 * time.Minute

// RedisResults stores finished recommendation lists in Redis. The key
// already encodes user, favorites and shuffle seed, so entries never need
// explicit invalidation: a favorites change produces a different key.
type RedisResults struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResults(client *redis.Client, ttl time.Duration) *RedisResults {
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	return &RedisResults{client: client, ttl: ttl}
}

func (c *RedisResults) Get(ctx context.Context, key string) ([]domain.Book, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var books []domain.Book
	if err := json.Unmarshal([]byte(val), &books); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}
	return books, true, nil
}

func (c *RedisResults) Set(ctx context.Context, key string, books []domain.Book) error {
	val, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// Ping connectivity
func (c *RedisResults) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
