package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(id string, likes int64, at int64) CommentView {
	return CommentView{
		Comment:    Comment{ID: id, CreatedAt: time.Unix(at, 0)},
		LikesCount: likes,
	}
}

func ids(cs []CommentView) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestSortComments_LikesThenOldest(t *testing.T) {
	cs := []CommentView{
		view("c1", 3, 10),
		view("c2", 5, 5),
		view("c3", 3, 2),
	}

	SortComments(cs)

	assert.Equal(t, []string{"c2", "c3", "c1"}, ids(cs))
}

func TestSortComments_TiesFallBackToID(t *testing.T) {
	cs := []CommentView{
		view("b", 1, 7),
		view("c", 0, 1),
		view("a", 1, 7),
	}

	SortComments(cs)

	assert.Equal(t, []string{"a", "b", "c"}, ids(cs))
}

func TestNewComment(t *testing.T) {
	now := time.Now()

	_, err := NewComment("id", "u1", "p1", "   ", now)
	assert.ErrorIs(t, err, ErrCommentRequired)

	_, err = NewComment("", "u1", "p1", "hi", now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewComment("id", "u1", "p1", "a\x00b", now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	c, err := NewComment("id", "u1", "p1", "hi", now)
	require.NoError(t, err)
	assert.Equal(t, "hi", c.Body)
	assert.Equal(t, now, c.CreatedAt)
}

func TestComment_CanDelete(t *testing.T) {
	c := &Comment{UserID: "author"}

	assert.True(t, c.CanDelete("author", "owner"))
	assert.True(t, c.CanDelete("owner", "owner"))
	assert.False(t, c.CanDelete("stranger", "owner"))
}
