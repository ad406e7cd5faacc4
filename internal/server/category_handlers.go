package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCategories handles GET /api/categories
func (s *Server) ListCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	return respondData(c, fiber.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Category"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	return respondData(c, fiber.StatusOK, category)
}

// CreateCategory handles POST /api/categories (admin only).
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateCategoryName(req.Name); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(c.Context(), category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.RespondWithError(c,
				models.NewConflictError("Category with this name already exists"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respondData(c, fiber.StatusCreated, category)
}

// UpdateCategory handles PUT /api/categories/:id (admin only).
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Category"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Name != nil {
		if err := validation.ValidateCategoryName(*req.Name); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
		category.Name = *req.Name
		category.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(c.Context(), category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.RespondWithError(c,
				models.NewConflictError("Category with this name already exists"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respondData(c, fiber.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id (admin only). A category
// that still has posts cannot be removed.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.categoryRepo.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Category"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	count, err := s.postRepo.CountByCategory(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if count > 0 {
		return models.RespondWithError(c,
			models.NewConflictError("Cannot delete category with existing posts"))
	}

	if err := s.categoryRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respondData(c, fiber.StatusOK, fiber.Map{})
}
