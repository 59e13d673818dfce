package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// Persistence collaborators. The repository package implements them on
// Postgres; a nil *sql.Tx means "run outside a transaction".

type UserStore interface {
	Create(ctx context.Context, tx *sql.Tx, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Taken(ctx context.Context, username, email, excludeID string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context, id string) (domain.UserCounts, error)
}

type PostStore interface {
	Insert(ctx context.Context, tx *sql.Tx, p *domain.Post) error
	Get(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, viewerID string, f domain.PostFilter) ([]domain.PostView, error)
	GetView(ctx context.Context, id, viewerID string) (*domain.PostView, error)
}

type CommentStore interface {
	Insert(ctx context.Context, tx *sql.Tx, c *domain.Comment) error
	Get(ctx context.Context, id string) (*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id string) error
	ListByPost(ctx context.Context, postID, viewerID string) ([]domain.CommentView, error)
}

type LikeStore interface {
	LikePost(ctx context.Context, tx *sql.Tx, l domain.PostLike) error
	UnlikePost(ctx context.Context, userID, postID string) error
	LikeComment(ctx context.Context, tx *sql.Tx, l domain.CommentLike) error
	UnlikeComment(ctx context.Context, userID, commentID string) error
	PostLikers(ctx context.Context, postID string) ([]domain.UserSummary, error)
	CommentLikers(ctx context.Context, commentID string) ([]domain.UserSummary, error)
}

type FollowStore interface {
	Add(ctx context.Context, tx *sql.Tx, f domain.Follow) error
	Remove(ctx context.Context, followerID, followingID string) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Followers(ctx context.Context, userID string) ([]domain.UserSummary, error)
	Following(ctx context.Context, userID string) ([]domain.UserSummary, error)
	FollowingAmong(ctx context.Context, viewerID string, candidates []string) (map[string]bool, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
}

// Revoker is the logout revocation list.
type Revoker interface {
	Revoke(ctx context.Context, token string, exp time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ProfileCache caches public user rows by id.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// ImageRemover deletes stored images by reference.
type ImageRemover interface {
	Delete(ctx context.Context, key string) error
}
