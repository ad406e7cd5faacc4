package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newTestServer builds a Server on an in-memory database and a Fiber app with
// the full route table but no global middleware stack.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	db := setupHandlerTestDB(t)

	cfg := &config.Config{
		JWTSecret: testSecret,
		Port:      "8080",
		UploadDir: t.TempDir(),
		Env:       "test",
	}
	middleware.InitMiddleware(cfg)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		postRepo:     repository.NewPostRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.SetupRoutes(app)

	return s, app
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret!pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

// performJSON issues a request against the app and decodes the envelope.
func performJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, models.Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env models.Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp, env
}

// dataMap asserts the envelope data is a JSON object and returns it.
func dataMap(t *testing.T, env models.Envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", env.Data)
	return m
}
