package models

import (
	"time"
	"unicode/utf8"
)

// DefaultFeaturedImage is the sentinel filename used when a post is created
// without an uploaded image.
const DefaultFeaturedImage = "default-post.jpg"

// Post is a blog entry. Title and Slug carry unique indexes; AuthorID is set
// once from the authenticated caller and never changes. ViewCount only moves
// through PostRepository.IncrementViewCount.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"uniqueIndex;size:100;not null" json:"title"`
	Slug          string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Content       string    `gorm:"not null" json:"content"`
	Excerpt       string    `json:"excerpt"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Category      Category  `gorm:"foreignKey:CategoryID" json:"category"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	Author        User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags          []string  `gorm:"serializer:json" json:"tags"`
	IsPublished   bool      `gorm:"not null" json:"is_published"`
	FeaturedImage string    `gorm:"size:255;not null" json:"featured_image"`
	ViewCount     uint      `gorm:"not null;default:0" json:"view_count"`
	Comments      []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayExcerpt returns the excerpt, falling back to a truncated content
// prefix when none was provided. maxLen counts characters; truncation never
// splits a multibyte rune.
func (p *Post) DisplayExcerpt(maxLen int) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	if maxLen <= 0 || utf8.RuneCountInString(p.Content) <= maxLen {
		return p.Content
	}
	return string([]rune(p.Content)[:maxLen]) + "..."
}
