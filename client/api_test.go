package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/dto"
	"inkwell/internal/models"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, env models.Envelope) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, NewStore())
}

func TestClientLogin(t *testing.T) {
	var authHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		writeEnvelope(t, w, http.StatusOK, models.Envelope{
			Success: true,
			Data: map[string]any{
				"token": "tok-123",
				"user":  User{ID: 7, Username: "ada", Email: "ada@example.com"},
			},
		})
	})
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		writeEnvelope(t, w, http.StatusOK, models.Envelope{Success: true, Data: []Category{}})
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.Login(context.Background(), "ada@example.com", "password123"))

	state := c.Store().State()
	require.NotNil(t, state.User)
	assert.Equal(t, "ada", state.User.Username)
	assert.Equal(t, "tok-123", state.Token)

	// The session token travels on every following request.
	require.NoError(t, c.LoadCategories(context.Background()))
	assert.Equal(t, "Bearer tok-123", authHeader)

	c.Logout()
	assert.Nil(t, c.Store().State().User)
}

func TestClientLoadPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "tech", r.URL.Query().Get("category"))
		writeEnvelope(t, w, http.StatusOK, models.Envelope{
			Success:    true,
			Data:       []dto.PostListItem{listItem(4, "Newest"), listItem(3, "Older")},
			Pagination: dto.Pagination{Page: 2, Limit: 10, Total: 12, Pages: 2},
		})
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.LoadPosts(context.Background(), 2, "tech", ""))

	state := c.Store().State()
	require.Len(t, state.Posts, 2)
	assert.Equal(t, "Newest", state.Posts[0].Title)
	assert.Equal(t, 2, state.Pagination.Page)
	assert.Equal(t, int64(12), state.Pagination.Total)
	assert.False(t, state.Loading)
}

func TestClientLoadPost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/5", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, models.Envelope{Success: true, Data: detail(5, "Five")})
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.LoadPost(context.Background(), 5))

	state := c.Store().State()
	require.NotNil(t, state.CurrentPost)
	assert.Equal(t, "Five", state.CurrentPost.Title)
}

func TestClientErrorLandsInErrorSlot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/9999", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, models.Envelope{Success: false, Error: "Post not found"})
	})

	c := newTestClient(t, mux)
	err := c.LoadPost(context.Background(), 9999)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Post not found", apiErr.Message)

	state := c.Store().State()
	assert.Equal(t, "Post not found", state.Err)
	assert.False(t, state.Loading)

	// The error is dismissible without losing the rest of the state.
	c.Store().Dispatch(ClearError{})
	assert.Empty(t, c.Store().State().Err)
}

func TestClientCreatePost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		var input PostInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Fresh", input.Title)
		writeEnvelope(t, w, http.StatusCreated, models.Envelope{Success: true, Data: detail(8, "Fresh")})
	})

	c := newTestClient(t, mux)
	c.Store().Dispatch(SetPosts{Posts: []dto.PostListItem{listItem(1, "Old")}})

	post, err := c.CreatePost(context.Background(), PostInput{
		Title: "Fresh", Content: "body", CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(8), post.ID)

	state := c.Store().State()
	require.Len(t, state.Posts, 2)
	assert.Equal(t, "Fresh", state.Posts[0].Title)
}

func TestClientDeletePost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/posts/1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, models.Envelope{Success: true, Data: map[string]any{}})
	})

	c := newTestClient(t, mux)
	c.Store().Dispatch(SetPosts{Posts: []dto.PostListItem{listItem(1, "Gone"), listItem(2, "Stays")}})

	require.NoError(t, c.DeletePost(context.Background(), 1))

	state := c.Store().State()
	require.Len(t, state.Posts, 1)
	assert.Equal(t, "Stays", state.Posts[0].Title)
}

func TestClientAddComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts/5/comments", func(w http.ResponseWriter, r *http.Request) {
		post := detail(5, "Five")
		post.Comments = []dto.CommentView{
			{ID: 1, Content: "earlier"},
			{ID: 2, Content: "just added"},
		}
		writeEnvelope(t, w, http.StatusCreated, models.Envelope{Success: true, Data: post})
	})

	c := newTestClient(t, mux)
	current := detail(5, "Five")
	current.Comments = []dto.CommentView{{ID: 1, Content: "earlier"}}
	c.Store().Dispatch(SetCurrentPost{Post: current})

	require.NoError(t, c.AddComment(context.Background(), 5, "just added"))

	state := c.Store().State()
	require.NotNil(t, state.CurrentPost)
	require.Len(t, state.CurrentPost.Comments, 2)
	assert.Equal(t, "just added", state.CurrentPost.Comments[1].Content)
}

func TestClientNetworkFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", NewStore())

	err := c.LoadCategories(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
	assert.NotEmpty(t, c.Store().State().Err)
}
