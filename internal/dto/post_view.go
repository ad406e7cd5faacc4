// Package dto defines the wire-level projections returned by the API.
// Each projection states exactly which referenced fields are embedded so
// handlers never over- or under-fetch by accident.
package dto

import (
	"math"
	"time"

	"inkwell/internal/models"
)

// AuthorRef is the denormalized author embedded in post listings.
type AuthorRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AuthorDetail adds the bio shown on single-post pages.
type AuthorDetail struct {
	AuthorRef
	Bio string `json:"bio"`
}

// CategoryRef is the denormalized category embedded in post responses.
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CommentView is a comment with its user expanded.
type CommentView struct {
	ID        uint      `json:"id"`
	User      AuthorRef `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostListItem is the projection returned by the post listing.
type PostListItem struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Excerpt       string      `json:"excerpt"`
	Author        AuthorRef   `json:"author"`
	Category      CategoryRef `json:"category"`
	Tags          []string    `json:"tags"`
	FeaturedImage string      `json:"featured_image"`
	ViewCount     uint        `json:"view_count"`
	CommentCount  int         `json:"comment_count"`
	CreatedAt     time.Time   `json:"created_at"`
}

// PostDetail is the projection returned for a single post: full content,
// author bio, and every comment with its user expanded.
type PostDetail struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Content       string        `json:"content"`
	Excerpt       string        `json:"excerpt"`
	Author        AuthorDetail  `json:"author"`
	Category      CategoryRef   `json:"category"`
	Tags          []string      `json:"tags"`
	IsPublished   bool          `json:"is_published"`
	FeaturedImage string        `json:"featured_image"`
	ViewCount     uint          `json:"view_count"`
	Comments      []CommentView `json:"comments"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// listExcerptLen bounds the content fallback used when a post has no excerpt.
const listExcerptLen = 200

// NewAuthorRef projects the listing view of a user.
func NewAuthorRef(u models.User) AuthorRef {
	return AuthorRef{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// NewCategoryRef projects the embedded view of a category.
func NewCategoryRef(c models.Category) CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// NewPostListItem projects a post for the listing endpoint. Comments are
// deliberately not embedded; only their count travels.
func NewPostListItem(p *models.Post) PostListItem {
	return PostListItem{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.DisplayExcerpt(listExcerptLen),
		Author:        NewAuthorRef(p.Author),
		Category:      NewCategoryRef(p.Category),
		Tags:          tagsOrEmpty(p.Tags),
		FeaturedImage: p.FeaturedImage,
		ViewCount:     p.ViewCount,
		CommentCount:  len(p.Comments),
		CreatedAt:     p.CreatedAt,
	}
}

// NewPostList projects a slice of posts.
func NewPostList(posts []*models.Post) []PostListItem {
	items := make([]PostListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, NewPostListItem(p))
	}
	return items
}

// NewPostDetail projects a post for the single-post and mutation endpoints.
func NewPostDetail(p *models.Post) PostDetail {
	comments := make([]CommentView, 0, len(p.Comments))
	for _, cm := range p.Comments {
		comments = append(comments, CommentView{
			ID:        cm.ID,
			User:      NewAuthorRef(cm.User),
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
		})
	}
	return PostDetail{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Content: p.Content,
		Excerpt: p.Excerpt,
		Author: AuthorDetail{
			AuthorRef: NewAuthorRef(p.Author),
			Bio:       p.Author.Bio,
		},
		Category:      NewCategoryRef(p.Category),
		Tags:          tagsOrEmpty(p.Tags),
		IsPublished:   p.IsPublished,
		FeaturedImage: p.FeaturedImage,
		ViewCount:     p.ViewCount,
		Comments:      comments,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// Pagination describes the window of a post listing. Total counts every
// matching post regardless of the window.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count from the total.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// tagsOrEmpty keeps tag arrays serializing as [] rather than null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
