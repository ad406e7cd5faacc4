// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilter narrows a published-post listing. Zero values mean "no filter".
type ListFilter struct {
	Page         int
	Limit        int
	CategorySlug string
	Search       string
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID returns a post with author, category, and comments (each
	// comment's user included) preloaded for the detail projection.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// GetRaw returns a post without preloads, for ownership checks and updates.
	GetRaw(ctx context.Context, id uint) (*models.Post, error)
	// ListPublished returns the filtered page of published posts plus the
	// total count of all matches irrespective of the pagination window.
	ListPublished(ctx context.Context, f ListFilter) ([]*models.Post, int64, error)
	// IncrementViewCount bumps view_count by one as a store-level atomic
	// update, never read-modify-write.
	IncrementViewCount(ctx context.Context, id uint) error
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id uint) error
	// AddComment appends a comment row; ordering comes from insertion.
	AddComment(ctx context.Context, comment *models.Comment) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.User").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetRaw(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, f ListFilter) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("is_published = ?", true)

	if f.CategorySlug != "" {
		var category models.Category
		err := r.db.WithContext(ctx).Where("slug = ?", f.CategorySlug).First(&category).Error
		switch {
		case err == nil:
			q = q.Where("category_id = ?", category.ID)
		case err == gorm.ErrRecordNotFound:
			// Unknown category slug makes the filter unsatisfiable, not an error.
			return []*models.Post{}, 0, nil
		default:
			return nil, 0, err
		}
	}

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	var posts []*models.Post
	err := q.
		Preload("Author").
		Preload("Category").
		Preload("Comments").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *postRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
