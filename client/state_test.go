package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/dto"
)

func listItem(id uint, title string) dto.PostListItem {
	return dto.PostListItem{ID: id, Title: title}
}

func detail(id uint, title string) dto.PostDetail {
	return dto.PostDetail{ID: id, Title: title, Content: "content of " + title}
}

func TestReduceSession(t *testing.T) {
	state := Reduce(NewState(), SetSession{Token: "tok", User: User{ID: 7, Username: "ada"}})

	require.NotNil(t, state.User)
	assert.Equal(t, "tok", state.Token)
	assert.Equal(t, "ada", state.User.Username)

	state.Posts = []dto.PostListItem{listItem(1, "One")}
	state = Reduce(state, Logout{})

	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.Empty(t, state.Posts)
}

func TestReduceErrorSlot(t *testing.T) {
	state := Reduce(NewState(), SetLoading{Loading: true})
	state = Reduce(state, SetError{Message: "Post not found"})

	assert.Equal(t, "Post not found", state.Err)
	assert.False(t, state.Loading, "a failure ends the in-flight state")

	state = Reduce(state, ClearError{})
	assert.Empty(t, state.Err)
}

func TestReduceSetPosts(t *testing.T) {
	state := Reduce(NewState(), SetLoading{Loading: true})
	state = Reduce(state, SetPosts{
		Posts:      []dto.PostListItem{listItem(2, "Two"), listItem(1, "One")},
		Pagination: dto.Pagination{Page: 1, Limit: 10, Total: 2, Pages: 1},
	})

	require.Len(t, state.Posts, 2)
	assert.Equal(t, "Two", state.Posts[0].Title)
	assert.Equal(t, int64(2), state.Pagination.Total)
	assert.False(t, state.Loading)
}

func TestReduceAddPost(t *testing.T) {
	state := NewState()
	state.Posts = []dto.PostListItem{listItem(1, "Old")}

	next := Reduce(state, AddPost{Post: detail(2, "New")})

	require.Len(t, next.Posts, 2)
	assert.Equal(t, "New", next.Posts[0].Title)
	assert.Equal(t, "Old", next.Posts[1].Title)
	assert.Equal(t, "content of New", next.Posts[0].Excerpt,
		"content stands in when the excerpt is empty")

	// The input state is untouched.
	require.Len(t, state.Posts, 1)
	assert.Equal(t, "Old", state.Posts[0].Title)
}

func TestReduceUpdatePost(t *testing.T) {
	current := detail(2, "Two")
	state := NewState()
	state.Posts = []dto.PostListItem{listItem(1, "One"), listItem(2, "Two")}
	state.CurrentPost = &current

	next := Reduce(state, UpdatePost{Post: detail(2, "Renamed")})

	require.Len(t, next.Posts, 2)
	assert.Equal(t, "One", next.Posts[0].Title)
	assert.Equal(t, "Renamed", next.Posts[1].Title)
	require.NotNil(t, next.CurrentPost)
	assert.Equal(t, "Renamed", next.CurrentPost.Title)

	assert.Equal(t, "Two", state.Posts[1].Title, "input listing is untouched")
	assert.Equal(t, "Two", state.CurrentPost.Title, "input current post is untouched")
}

func TestReduceUpdatePostNotListed(t *testing.T) {
	state := NewState()
	state.Posts = []dto.PostListItem{listItem(1, "One")}

	next := Reduce(state, UpdatePost{Post: detail(9, "Elsewhere")})

	require.Len(t, next.Posts, 1)
	assert.Equal(t, "One", next.Posts[0].Title)
	assert.Nil(t, next.CurrentPost)
}

func TestReduceDeletePost(t *testing.T) {
	current := detail(2, "Two")
	state := NewState()
	state.Posts = []dto.PostListItem{listItem(1, "One"), listItem(2, "Two"), listItem(3, "Three")}
	state.CurrentPost = &current

	next := Reduce(state, DeletePost{ID: 2})

	require.Len(t, next.Posts, 2)
	assert.Equal(t, uint(1), next.Posts[0].ID)
	assert.Equal(t, uint(3), next.Posts[1].ID)
	assert.Nil(t, next.CurrentPost)

	require.Len(t, state.Posts, 3, "input listing is untouched")
}

func TestReduceAddComment(t *testing.T) {
	current := detail(5, "Five")
	current.Comments = []dto.CommentView{{ID: 1, Content: "first"}}
	state := NewState()
	state.CurrentPost = &current

	t.Run("Appends To Current Post", func(t *testing.T) {
		next := Reduce(state, AddComment{PostID: 5, Comment: dto.CommentView{ID: 2, Content: "second"}})

		require.NotNil(t, next.CurrentPost)
		require.Len(t, next.CurrentPost.Comments, 2)
		assert.Equal(t, "second", next.CurrentPost.Comments[1].Content)
		assert.Len(t, state.CurrentPost.Comments, 1, "input comments are untouched")
	})

	t.Run("Ignores Other Posts", func(t *testing.T) {
		next := Reduce(state, AddComment{PostID: 6, Comment: dto.CommentView{ID: 2}})
		require.Len(t, next.CurrentPost.Comments, 1)
	})
}
