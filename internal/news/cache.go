package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// Cache stores news lookups between fetches.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.NewsItem, bool, error)
	Set(ctx context.Context, key string, items []domain.NewsItem, ttl time.Duration) error
}

// NopCache never hits.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]domain.NewsItem, bool, error) { return nil, false, nil }

func (NopCache) Set(context.Context, string, []domain.NewsItem, time.Duration) error { return nil }

// RedisCache keeps news as JSON strings in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.NewsItem, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var items []domain.NewsItem
	if err = json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode cached news %s: %w", key, err)
	}
	return items, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, items []domain.NewsItem, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode news: %w", err)
	}
	if err = c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
