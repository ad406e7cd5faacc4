package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCheckRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	ctx := context.Background()
	rdb := testRedis(t)

	t.Run("Allows Under Limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "posts", "ip:1.2.3.4", 3, time.Minute)
			assert.NoError(t, err)
			assert.True(t, allowed)
		}
	})

	t.Run("Blocks Over Limit", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, rdb, "posts", "ip:1.2.3.4", 3, time.Minute)
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Separate Resources Tracked Separately", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, rdb, "comments", "ip:1.2.3.4", 3, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Nil Redis Fail-Open", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, nil, "posts", "ip:1.2.3.4", 1, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Test Environment Bypass", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		for i := 0; i < 10; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "bypass", "ip:1.2.3.4", 1, time.Minute)
			assert.NoError(t, err)
			assert.True(t, allowed)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	rdb := testRedis(t)

	app := fiber.New()
	app.Get("/limited", RateLimit(rdb, 2, time.Minute, "limited"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		_ = resp.Body.Close()
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}
