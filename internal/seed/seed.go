package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/slug"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var defaultCategories = map[string]string{
	"Technology":     "Software, hardware, and everything in between",
	"Tech & Science": "Hard things explained simply",
	"Travel":         "Field notes from elsewhere",
	"Food":           "Recipes and restaurant stories",
	"Opinion":        "Takes, hot and otherwise",
}

// Run populates the database with demo users, categories, posts, and
// comments. An admin account (admin@example.com / password123) and the
// default categories are created when missing, so reruns without cleaning
// only add generated rows.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 40
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	f := NewFactory(db)

	userRepo := repository.NewUserRepository(db)
	admin, err := userRepo.GetByEmail(context.Background(), "admin@example.com")
	if err != nil {
		return fmt.Errorf("looking up admin: %w", err)
	}
	if admin == nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = &models.User{
			Username: "admin",
			Email:    "admin@example.com",
			Password: string(hashed),
			Role:     models.RoleAdmin,
			Bio:      "Keeper of the keys.",
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}
	}

	users := []*models.User{admin}
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	var categories []*models.Category
	for name, description := range defaultCategories {
		// Re-running without -clean must not trip the unique slug index.
		existing, err := categoryRepo.GetBySlug(context.Background(), slug.Make(name))
		if err == nil {
			categories = append(categories, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("looking up category %q: %w", name, err)
		}
		category, err := f.CreateCategory(name, description)
		if err != nil {
			return fmt.Errorf("creating category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rand.Intn(len(users))]
		category := categories[f.rand.Intn(len(categories))]
		post, err := f.CreatePost(author, category)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}

		for j := 0; j < f.rand.Intn(6); j++ {
			commenter := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	slog.Info("seeding complete",
		slog.Int("users", len(users)),
		slog.Int("categories", len(categories)),
		slog.Int("posts", opts.NumPosts))
	return nil
}

func clean(db *gorm.DB) error {
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.Category{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
