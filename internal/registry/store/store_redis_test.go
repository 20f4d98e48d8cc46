package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrecord/internal/registry/models"
	"covrecord/pkg/platform/sentinel"
)

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewRedisCache(client, time.Minute, nil)

	_, err := cache.Find(context.Background(), "&lastname=dupont")
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = cache.Save(context.Background(), "&lastname=dupont", []models.Candidate{{LastName: "dupont"}})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
