// Package middleware provides authentication, logging, rate limiting, and
// tracing middleware for the application.
package middleware

import (
	"strconv"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired enforces a valid bearer token and stores the caller's user ID
// in c.Locals("userID").
func AuthRequired(c *fiber.Ctx) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth resolves the caller's user ID when a valid bearer token is
// present but lets anonymous requests through untouched.
func OptionalAuth(c *fiber.Ctx) error {
	if userID, err := userIDFromHeader(c); err == nil {
		c.Locals("userID", userID)
	}
	return c.Next()
}

func userIDFromHeader(c *fiber.Ctx) (uint, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, models.NewUnauthorizedError("Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, models.NewUnauthorizedError("Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	// User ID travels in the "sub" claim (RFC 7519 subject) as a string.
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token subject")
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}
