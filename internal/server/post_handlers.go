package server

import (
	"errors"

	"inkwell/internal/dto"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/slug"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type createPostRequest struct {
	Title       string   `json:"title" form:"title"`
	Content     string   `json:"content" form:"content"`
	Excerpt     string   `json:"excerpt" form:"excerpt"`
	CategoryID  uint     `json:"category_id" form:"category_id"`
	Tags        []string `json:"tags" form:"tags"`
	IsPublished *bool    `json:"is_published" form:"is_published"`
}

type updatePostRequest struct {
	Title       *string  `json:"title" form:"title"`
	Content     *string  `json:"content" form:"content"`
	Excerpt     *string  `json:"excerpt" form:"excerpt"`
	CategoryID  *uint    `json:"category_id" form:"category_id"`
	Tags        []string `json:"tags" form:"tags"`
	IsPublished *bool    `json:"is_published" form:"is_published"`
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	pq := parsePagination(c)

	posts, total, err := s.postRepo.ListPublished(c.Context(), repository.ListFilter{
		Page:         pq.Page,
		Limit:        pq.Limit,
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	})
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respondPage(c, dto.NewPostList(posts), dto.NewPagination(pq.Page, pq.Limit, total))
}

// GetPost handles GET /api/posts/:id. Every successful fetch counts as a view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postRepo.IncrementViewCount(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Post"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	observability.PostViews.Inc()
	return respondData(c, fiber.StatusOK, dto.NewPostDetail(post))
}

// CreatePost handles POST /api/posts. Accepts JSON or multipart form; the
// multipart form may carry a "featured_image" file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Content == "" || req.CategoryID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Title, content, and category are required"))
	}
	if err := validation.ValidateTitle(req.Title); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if _, err := s.categoryRepo.GetByID(c.Context(), req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewValidationError("Invalid category"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	featuredImage, err := s.saveFeaturedImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if featuredImage == "" {
		featuredImage = models.DefaultFeaturedImage
	}

	// Posts publish by default; drafts are opt-in.
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	post := &models.Post{
		Title:         req.Title,
		Slug:          slug.Make(req.Title),
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CategoryID:    req.CategoryID,
		AuthorID:      userID,
		Tags:          validation.NormalizeTags(req.Tags),
		IsPublished:   published,
		FeaturedImage: featuredImage,
	}

	if err := s.postRepo.Create(c.Context(), post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.RespondWithError(c,
				models.NewConflictError("Post with this title already exists"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	created, err := s.postRepo.GetByID(c.Context(), post.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	observability.PostMutations.WithLabelValues("create").Inc()
	return respondData(c, fiber.StatusCreated, dto.NewPostDetail(created))
}

// UpdatePost handles PUT /api/posts/:id. Only the author or an admin may
// edit; absent fields keep their stored values.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	post, err := s.postRepo.GetRaw(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Post"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	if post.AuthorID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, models.NewInternalError(adminErr))
		}
		if !admin {
			return models.RespondWithError(c,
				models.NewForbiddenError("Not authorized to update this post"))
		}
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, models.NewValidationError("Title cannot be empty"))
		}
		if err := validation.ValidateTitle(*req.Title); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
		post.Title = *req.Title
		// The slug always tracks the title.
		post.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		if *req.Content == "" {
			return models.RespondWithError(c, models.NewValidationError("Please provide post content"))
		}
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(c.Context(), *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.RespondWithError(c, models.NewValidationError("Invalid category"))
			}
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		post.CategoryID = *req.CategoryID
	}
	if req.Tags != nil {
		post.Tags = validation.NormalizeTags(req.Tags)
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if featuredImage, imgErr := s.saveFeaturedImage(c); imgErr != nil {
		return models.RespondWithError(c, imgErr)
	} else if featuredImage != "" {
		post.FeaturedImage = featuredImage
	}

	if err := s.postRepo.Update(c.Context(), post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.RespondWithError(c,
				models.NewConflictError("Post with this title already exists"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	updated, err := s.postRepo.GetByID(c.Context(), post.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	observability.PostMutations.WithLabelValues("update").Inc()
	return respondData(c, fiber.StatusOK, dto.NewPostDetail(updated))
}

// DeletePost handles DELETE /api/posts/:id. Removes the post and its
// comments; only the author or an admin may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	post, err := s.postRepo.GetRaw(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Post"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	if post.AuthorID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, models.NewInternalError(adminErr))
		}
		if !admin {
			return models.RespondWithError(c,
				models.NewForbiddenError("Not authorized to delete this post"))
		}
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	observability.PostMutations.WithLabelValues("delete").Inc()
	return respondData(c, fiber.StatusOK, fiber.Map{})
}

// AddComment handles POST /api/posts/:id/comments and responds with the full
// post detail including the new comment.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateComment(req.Content); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	if _, err := s.postRepo.GetRaw(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Post"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	comment := &models.Comment{
		PostID:  id,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.postRepo.AddComment(c.Context(), comment); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	observability.CommentsAdded.Inc()
	return respondData(c, fiber.StatusCreated, dto.NewPostDetail(post))
}
