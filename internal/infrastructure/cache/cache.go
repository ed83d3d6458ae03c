// Package cache provides short-lived key/value caching backed by Redis,
// with an in-process fallback for single-instance deployments.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store caches opaque values with a TTL
type Store interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// New returns a Redis store when client is set, otherwise an in-memory one
func New(client *redis.Client, log *zap.Logger) Store {
	if client != nil {
		return NewRedisStore(client, "isletme:cache:")
	}
	log.Warn("redis not configured, using in-memory cache")
	return NewInMemoryStore()
}
