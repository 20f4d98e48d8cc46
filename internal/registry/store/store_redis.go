package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"covrecord/internal/registry/metrics"
	"covrecord/internal/registry/models"
	"covrecord/pkg/platform/sentinel"
)

const keyPrefix = "covrecord:registry:search:"

// RedisCache shares search results between operator workstations.
type RedisCache struct {
	client   redis.UniversalClient
	cacheTTL time.Duration
	metrics  *metrics.Metrics
}

// NewRedisCache wraps client. m may be nil.
func NewRedisCache(client redis.UniversalClient, cacheTTL time.Duration, m *metrics.Metrics) *RedisCache {
	return &RedisCache{
		client:   client,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

func (c *RedisCache) Save(ctx context.Context, key string, candidates []models.Candidate) error {
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	payload, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encode cached search: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("store cached search: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (c *RedisCache) Find(ctx context.Context, key string) ([]models.Candidate, error) {
	start := time.Now()
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	c.metrics.ObserveCacheLatency(time.Since(start))
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cached search: %w: %w", sentinel.ErrUnavailable, err)
	}

	var candidates []models.Candidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		return nil, fmt.Errorf("decode cached search: %w", err)
	}
	return candidates, nil
}
