package models

import (
	"errors"
	"fmt"

	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
}

// AppError is a typed application error carrying the HTTP status it maps to.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed input (400).
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Status:  fiber.StatusBadRequest,
		Message: message,
	}
}

// NewConflictError reports a unique-constraint collision. The original API
// surfaced these as 400 with a human message, so we keep that mapping.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Status:  fiber.StatusBadRequest,
		Message: message,
	}
}

// NewNotFoundError reports an absent entity (404).
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Status:  fiber.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewForbiddenError reports a caller lacking ownership or role (403).
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Status:  fiber.StatusForbidden,
		Message: message,
	}
}

// NewUnauthorizedError reports a missing or invalid credential (401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Status:  fiber.StatusUnauthorized,
		Message: message,
	}
}

// NewInternalError wraps an unexpected error (500). The wrapped cause is
// logged, never serialized.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes the standard error envelope, deriving the status
// from the typed error. Anything that is not an AppError becomes a 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}
	observability.RequestErrors.WithLabelValues(appErr.Code).Inc()
	return c.Status(appErr.Status).JSON(Envelope{
		Success: false,
		Error:   appErr.Message,
	})
}
