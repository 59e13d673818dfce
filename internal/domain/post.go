package domain

import (
	"strings"
	"time"
)

// Post is an image with a caption, owned by its creator.
type Post struct {
	ID        string    `json:"postId"`
	UserID    string    `json:"userId"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost validates the inputs of a post creation.
func NewPost(id, userID, image, caption string, now time.Time) (*Post, error) {
	if id == "" || userID == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(image) == "" {
		return nil, ErrImageRequired
	}
	if strings.TrimSpace(caption) == "" {
		return nil, ErrCaptionRequired
	}
	if !ValidText(caption) {
		return nil, ErrInvalidInput
	}
	return &Post{
		ID:        id,
		UserID:    userID,
		Image:     image,
		Caption:   caption,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PostView is a post enriched with its aggregates and the viewer's like state.
type PostView struct {
	Post
	User          UserSummary `json:"user"`
	LikesCount    int64       `json:"likesCount"`
	CommentsCount int64       `json:"commentsCount"`
	IsLiked       bool        `json:"isLiked"`
}

// PostDetail is the single-post projection with comments attached.
type PostDetail struct {
	PostView
	IsFollowing bool          `json:"isFollowing"`
	Comments    []CommentView `json:"comments"`
}

// PostFilter restricts a post listing. A nil AuthorIDs lists every post;
// a non-nil empty slice matches nothing.
type PostFilter struct {
	AuthorIDs []string
}

// PostLike records that a user liked a post.
type PostLike struct {
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
