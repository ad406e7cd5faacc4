package server

import (
	"errors"

	"inkwell/internal/dto"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageLimit   = 10
	maxPaginationLimit = 100
)

// pageQuery holds parsed page/limit query parameters. Pages are 1-indexed.
type pageQuery struct {
	Page  int
	Limit int
}

func parsePagination(c *fiber.Ctx) pageQuery {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return pageQuery{Page: page, Limit: limit}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID reads the authenticated caller's ID placed in locals by the
// auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(models.Envelope{
		Success: true,
		Data:    data,
	})
}

func respondPage(c *fiber.Ctx, data any, pagination dto.Pagination) error {
	return c.JSON(models.Envelope{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// isAdmin checks whether the given user has admin privileges.
func (s *Server) isAdmin(c *fiber.Ctx, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
