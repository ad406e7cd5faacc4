// Package client is the in-memory state container for a browser-style
// session against the API: a typed action set, a pure transition function,
// a goroutine-safe store, and an HTTP client that dispatches into it.
package client

import "inkwell/internal/dto"

// User is the authenticated account as the API serializes it.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

// Category mirrors the category listing payload.
type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// State mirrors the server data relevant to the active session. It is a
// value type: Reduce never mutates its input, so snapshots taken from the
// store stay stable after further dispatches.
type State struct {
	User        *User
	Token       string
	Posts       []dto.PostListItem
	Categories  []Category
	CurrentPost *dto.PostDetail
	Loading     bool
	Err         string
	Pagination  dto.Pagination
}

// NewState returns the initial session state.
func NewState() State {
	return State{Pagination: dto.Pagination{Page: 1, Limit: 10}}
}

// Action is one step of the session state machine.
type Action interface{ isAction() }

// SetLoading toggles the in-flight indicator.
type SetLoading struct{ Loading bool }

// SetError lands a failure in the dismissible error slot and clears the
// loading flag.
type SetError struct{ Message string }

// ClearError dismisses the error slot.
type ClearError struct{}

// SetSession records a successful signup or login.
type SetSession struct {
	Token string
	User  User
}

// Logout drops the session and everything fetched under it.
type Logout struct{}

// SetPosts replaces the listing window.
type SetPosts struct {
	Posts      []dto.PostListItem
	Pagination dto.Pagination
}

// SetCategories replaces the category list.
type SetCategories struct{ Categories []Category }

// SetCurrentPost replaces the single-post view.
type SetCurrentPost struct{ Post dto.PostDetail }

// AddPost prepends a freshly created post to the listing.
type AddPost struct{ Post dto.PostDetail }

// UpdatePost replaces the post wherever it appears.
type UpdatePost struct{ Post dto.PostDetail }

// DeletePost removes the post from the listing.
type DeletePost struct{ ID uint }

// AddComment appends a comment to the current post, if it is the one
// commented on.
type AddComment struct {
	PostID  uint
	Comment dto.CommentView
}

func (SetLoading) isAction()     {}
func (SetError) isAction()       {}
func (ClearError) isAction()     {}
func (SetSession) isAction()     {}
func (Logout) isAction()         {}
func (SetPosts) isAction()       {}
func (SetCategories) isAction()  {}
func (SetCurrentPost) isAction() {}
func (AddPost) isAction()        {}
func (UpdatePost) isAction()     {}
func (DeletePost) isAction()     {}
func (AddComment) isAction()     {}

// Reduce applies one action to a state and returns the next state. It is
// pure: slices and pointers reachable from the input are never written
// through, they are replaced.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetLoading:
		state.Loading = a.Loading

	case SetError:
		state.Err = a.Message
		state.Loading = false

	case ClearError:
		state.Err = ""

	case SetSession:
		u := a.User
		state.Token = a.Token
		state.User = &u

	case Logout:
		state.Token = ""
		state.User = nil
		state.Posts = nil

	case SetPosts:
		state.Posts = a.Posts
		state.Pagination = a.Pagination
		state.Loading = false

	case SetCategories:
		state.Categories = a.Categories

	case SetCurrentPost:
		p := a.Post
		state.CurrentPost = &p
		state.Loading = false

	case AddPost:
		posts := make([]dto.PostListItem, 0, len(state.Posts)+1)
		posts = append(posts, listItemOf(a.Post))
		posts = append(posts, state.Posts...)
		state.Posts = posts

	case UpdatePost:
		if i := indexOf(state.Posts, a.Post.ID); i >= 0 {
			posts := make([]dto.PostListItem, len(state.Posts))
			copy(posts, state.Posts)
			posts[i] = listItemOf(a.Post)
			state.Posts = posts
		}
		if state.CurrentPost != nil && state.CurrentPost.ID == a.Post.ID {
			p := a.Post
			state.CurrentPost = &p
		}

	case DeletePost:
		if i := indexOf(state.Posts, a.ID); i >= 0 {
			posts := make([]dto.PostListItem, 0, len(state.Posts)-1)
			posts = append(posts, state.Posts[:i]...)
			posts = append(posts, state.Posts[i+1:]...)
			state.Posts = posts
		}
		if state.CurrentPost != nil && state.CurrentPost.ID == a.ID {
			state.CurrentPost = nil
		}

	case AddComment:
		if state.CurrentPost == nil || state.CurrentPost.ID != a.PostID {
			break
		}
		p := *state.CurrentPost
		comments := make([]dto.CommentView, 0, len(p.Comments)+1)
		comments = append(comments, p.Comments...)
		comments = append(comments, a.Comment)
		p.Comments = comments
		state.CurrentPost = &p
	}
	return state
}

func indexOf(posts []dto.PostListItem, id uint) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// listItemOf projects a full post onto its listing row.
func listItemOf(p dto.PostDetail) dto.PostListItem {
	excerpt := p.Excerpt
	if excerpt == "" {
		excerpt = p.Content
	}
	return dto.PostListItem{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       excerpt,
		Author:        p.Author.AuthorRef,
		Category:      p.Category,
		Tags:          p.Tags,
		FeaturedImage: p.FeaturedImage,
		ViewCount:     p.ViewCount,
		CommentCount:  len(p.Comments),
		CreatedAt:     p.CreatedAt,
	}
}
