package domain

import (
	"sort"
	"strings"
	"time"
)

// Comment is a text reply attached to a post.
type Comment struct {
	ID        string    `json:"commentId"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	Body      string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewComment validates the inputs of a comment creation.
func NewComment(id, userID, postID, body string, now time.Time) (*Comment, error) {
	if id == "" || userID == "" || postID == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrCommentRequired
	}
	if !ValidText(body) {
		return nil, ErrInvalidInput
	}
	return &Comment{
		ID:        id,
		UserID:    userID,
		PostID:    postID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDelete reports whether actor may remove c from a post owned by postOwner.
func (c *Comment) CanDelete(actor, postOwner string) bool {
	return actor == c.UserID || actor == postOwner
}

// CommentView is a comment enriched with its like count and the viewer's like state.
type CommentView struct {
	Comment
	User       UserSummary `json:"user"`
	LikesCount int64       `json:"likesCount"`
	IsLiked    bool        `json:"isLiked"`
}

// SortComments orders comments most-liked first, then oldest first, then by id.
func SortComments(cs []CommentView) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.LikesCount != b.LikesCount {
			return a.LikesCount > b.LikesCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// CommentLike records that a user liked a comment.
type CommentLike struct {
	UserID    string    `json:"userId"`
	CommentID string    `json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}
