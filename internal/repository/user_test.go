package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Username: "finder",
		Email:    "finder@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}))

	t.Run("Found", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "finder@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "finder", user.Username)
	})

	t.Run("Missing Is Not An Error", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Username: "taken", Email: "taken@example.com", Password: "pw", Role: models.RoleUser,
	}))

	err := repo.Create(ctx, &models.User{
		Username: "taken", Email: "other@example.com", Password: "pw", Role: models.RoleUser,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "editable", Email: "editable@example.com", Password: "pw", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, user))

	user.Bio = "now with a bio"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "now with a bio", got.Bio)
}
