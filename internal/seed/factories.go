// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Role:     models.RoleUser,
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashedPassword)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category with a slug derived from its name.
func (f *Factory) CreateCategory(name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreatePost constructs and persists a sample post by the given author in the
// given category, with a created_at spread over the last 90 days.
func (f *Factory) CreatePost(author *models.User, category *models.Category, overrides ...func(*models.Post)) (*models.Post, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(f.rand.Intn(5)+4), ".")
	post := &models.Post{
		Title:         title,
		Slug:          slug.Make(title),
		Content:       gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Excerpt:       gofakeit.Sentence(12),
		CategoryID:    category.ID,
		AuthorID:      author.ID,
		Tags:          f.randomTags(),
		IsPublished:   f.rand.Intn(10) > 1, // roughly one draft in five
		FeaturedImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		ViewCount:     uint(f.rand.Intn(500)),
	}

	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by the given user on the given post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Content:   gofakeit.Sentence(f.rand.Intn(12) + 3),
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rand.Intn(72)) * time.Hour),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (f *Factory) randomTags() []string {
	pool := []string{"go", "tutorial", "opinion", "deep-dive", "news", "howto", "career", "tools", "review"}
	n := f.rand.Intn(4)
	tags := make([]string, 0, n)
	for _, idx := range f.rand.Perm(len(pool))[:n] {
		tags = append(tags, pool[idx])
	}
	return tags
}
