package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"inkwell/internal/dto"
)

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// envelope matches the uniform response wrapper used by every endpoint.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Pagination *dto.Pagination `json:"pagination"`
}

// authData is the payload of signup and login responses.
type authData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Client speaks the API's JSON envelope and dispatches every result into
// its store. Load methods re-fetch on each call; navigation is expected
// to call them again rather than reuse stale state.
type Client struct {
	base  string
	http  *http.Client
	store *Store
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, for tests and for
// callers with their own transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for the API at baseURL (e.g. "http://localhost:8080")
// dispatching into store.
func New(baseURL string, store *Store, opts ...Option) *Client {
	c := &Client{
		base:  baseURL,
		http:  &http.Client{Timeout: 15 * time.Second},
		store: store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the injected store for subscription at the composition root.
func (c *Client) Store() *Store {
	return c.store
}

// Signup registers an account and starts a session.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/signup", body)
	if err != nil {
		return err
	}
	return c.setSession(env)
}

// Login starts a session for an existing account.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return err
	}
	return c.setSession(env)
}

// Logout drops the session locally. The token is stateless, so there is
// nothing to revoke server-side.
func (c *Client) Logout() {
	c.store.Dispatch(Logout{})
}

func (c *Client) setSession(env *envelope) error {
	var data authData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return fmt.Errorf("decoding session: %w", err)
	}
	c.store.Dispatch(SetSession{Token: data.Token, User: data.User})
	return nil
}

// LoadPosts fetches one listing window into the store. Empty category and
// search leave those filters off.
func (c *Client) LoadPosts(ctx context.Context, page int, category, search string) error {
	c.store.Dispatch(SetLoading{Loading: true})

	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	var posts []dto.PostListItem
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		return fmt.Errorf("decoding posts: %w", err)
	}
	var pagination dto.Pagination
	if env.Pagination != nil {
		pagination = *env.Pagination
	}
	c.store.Dispatch(SetPosts{Posts: posts, Pagination: pagination})
	return nil
}

// LoadPost fetches one post into the store. The server counts the view.
func (c *Client) LoadPost(ctx context.Context, id uint) error {
	c.store.Dispatch(SetLoading{Loading: true})

	env, err := c.do(ctx, http.MethodGet, c.postPath(id), nil)
	if err != nil {
		return err
	}
	var post dto.PostDetail
	if err := json.Unmarshal(env.Data, &post); err != nil {
		return fmt.Errorf("decoding post: %w", err)
	}
	c.store.Dispatch(SetCurrentPost{Post: post})
	return nil
}

// LoadCategories fetches the category list into the store.
func (c *Client) LoadCategories(ctx context.Context) error {
	env, err := c.do(ctx, http.MethodGet, "/api/categories", nil)
	if err != nil {
		return err
	}
	var categories []Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return fmt.Errorf("decoding categories: %w", err)
	}
	c.store.Dispatch(SetCategories{Categories: categories})
	return nil
}

// PostInput is the writable part of a post.
type PostInput struct {
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	CategoryID  uint     `json:"category_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsPublished *bool    `json:"is_published,omitempty"`
}

// CreatePost creates a post and prepends it to the listing.
func (c *Client) CreatePost(ctx context.Context, input PostInput) (dto.PostDetail, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/posts", input)
	if err != nil {
		return dto.PostDetail{}, err
	}
	var post dto.PostDetail
	if err := json.Unmarshal(env.Data, &post); err != nil {
		return dto.PostDetail{}, fmt.Errorf("decoding post: %w", err)
	}
	c.store.Dispatch(AddPost{Post: post})
	return post, nil
}

// UpdatePost applies a partial update and refreshes the post wherever the
// store holds it.
func (c *Client) UpdatePost(ctx context.Context, id uint, input PostInput) (dto.PostDetail, error) {
	env, err := c.do(ctx, http.MethodPut, c.postPath(id), input)
	if err != nil {
		return dto.PostDetail{}, err
	}
	var post dto.PostDetail
	if err := json.Unmarshal(env.Data, &post); err != nil {
		return dto.PostDetail{}, fmt.Errorf("decoding post: %w", err)
	}
	c.store.Dispatch(UpdatePost{Post: post})
	return post, nil
}

// DeletePost deletes a post and drops it from the listing.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	if _, err := c.do(ctx, http.MethodDelete, c.postPath(id), nil); err != nil {
		return err
	}
	c.store.Dispatch(DeletePost{ID: id})
	return nil
}

// AddComment posts a comment and appends it to the current post. The
// server responds with the whole post, so the freshly appended comment is
// the last one.
func (c *Client) AddComment(ctx context.Context, postID uint, content string) error {
	body := map[string]string{"content": content}
	env, err := c.do(ctx, http.MethodPost, c.postPath(postID)+"/comments", body)
	if err != nil {
		return err
	}
	var post dto.PostDetail
	if err := json.Unmarshal(env.Data, &post); err != nil {
		return fmt.Errorf("decoding post: %w", err)
	}
	if len(post.Comments) == 0 {
		return fmt.Errorf("server returned post %d without comments", post.ID)
	}
	c.store.Dispatch(AddComment{PostID: postID, Comment: post.Comments[len(post.Comments)-1]})
	return nil
}

func (c *Client) postPath(id uint) string {
	return "/api/posts/" + strconv.FormatUint(uint64(id), 10)
}

// do sends one request and decodes the envelope. A non-success envelope
// lands in the store's error slot and comes back as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.State().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.store.Dispatch(SetError{Message: err.Error()})
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		apiErr := &APIError{Status: resp.StatusCode, Message: "malformed response"}
		c.store.Dispatch(SetError{Message: apiErr.Message})
		return nil, apiErr
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		apiErr := &APIError{Status: resp.StatusCode, Message: msg}
		c.store.Dispatch(SetError{Message: msg})
		return nil, apiErr
	}
	return &env, nil
}
