// Package cache manages the Redis client used for rate limiting.
// Entity-level caching is deliberately not done here; the document store is
// the single source of truth for posts and categories.
package cache

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis client; nil when Redis is unreachable, in which
// case every consumer fails open.
var Client *redis.Client

// InitRedis connects to Redis at the given address. Failure is non-fatal.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, rate limiting disabled",
			slog.String("error", err.Error()))
		Client = nil
		return
	}
	middleware.Logger.Info("Redis connected successfully")
}

// GetClient returns the shared Redis client, which may be nil.
func GetClient() *redis.Client {
	return Client
}
