package middleware

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// CheckRateLimit counts one hit for (resource, id) in a fixed window and
// reports whether the caller is still under limit. Redis being down or
// unconfigured fails open, as does the test environment.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil || os.Getenv("APP_ENV") == "test" {
		return true, nil
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// Counter and TTL are set together so a crash between the two cannot
	// leave an immortal key.
	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}

	return incr.Val() <= int64(limit), nil
}

// RateLimit returns a Fiber middleware enforcing limit requests per window
// for one resource. Authenticated callers are counted per user ID, anonymous
// ones per IP. The optional name groups several routes under one counter;
// without it each path counts separately.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if uid, ok := c.Locals("userID").(uint); ok {
			id = "user:" + strconv.FormatUint(uint64(uid), 10)
		} else {
			id = "ip:" + c.IP()
		}

		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		allowed, err := CheckRateLimit(c.Context(), rdb, resource, id, limit, window)
		if err != nil {
			Logger.Warn("rate limiter unavailable, allowing request",
				"resource", resource, "error", err.Error())
			return c.Next()
		}
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Envelope{
				Success: false,
				Error:   "Too many requests, please try again later.",
			})
		}
		return c.Next()
	}
}
