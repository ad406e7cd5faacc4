package middleware

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the process-wide structured logger, JSON on stdout.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// StructuredLogger returns a Fiber middleware that writes one slog line per
// request. Runs after the requestid and auth middlewares so their locals are
// available.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []any{
			slog.Group("http",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Int("status", status),
				slog.Int("bytes", len(c.Response().Body())),
			),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			attrs = append(attrs, slog.String("request_id", rid))
		}
		if uid, ok := c.Locals("userID").(uint); ok {
			attrs = append(attrs, slog.Uint64("user_id", uint64(uid)))
		}

		switch {
		case err != nil:
			Logger.Error("request failed", append(attrs, slog.String("error", err.Error()))...)
		case status >= fiber.StatusInternalServerError:
			Logger.Error("request failed", attrs...)
		default:
			Logger.Info("request", attrs...)
		}
		return err
	}
}
