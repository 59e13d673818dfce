package handler

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/service"
)

// The handlers depend on these narrow views of the service layer.

type Auth interface {
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*service.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type Users interface {
	Profile(ctx context.Context, userID, viewerID string) (*domain.Profile, error)
	ProfileByUsername(ctx context.Context, username, viewerID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, viewerID string, upd domain.ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, viewerID, current, next string) error
	DeleteAccount(ctx context.Context, viewerID string) error
}

type Graph interface {
	Followers(ctx context.Context, userID, viewerID string) ([]domain.FollowEntry, error)
	Following(ctx context.Context, userID, viewerID string) ([]domain.FollowEntry, error)
	Follow(ctx context.Context, viewerID, targetID string) error
	Unfollow(ctx context.Context, viewerID, targetID string) error
}

type Posts interface {
	List(ctx context.Context, viewerID string) ([]domain.PostView, error)
	Feed(ctx context.Context, viewerID string) ([]domain.PostView, error)
	Get(ctx context.Context, postID, viewerID string) (*domain.PostDetail, error)
	Likers(ctx context.Context, postID string) ([]domain.UserSummary, error)
	Create(ctx context.Context, viewerID, image, caption string) (*domain.Post, error)
	Update(ctx context.Context, viewerID, postID, image, caption string) (*domain.Post, error)
	Delete(ctx context.Context, viewerID, postID string) error
	Like(ctx context.Context, viewerID, postID string) error
	Unlike(ctx context.Context, viewerID, postID string) error
}

type Comments interface {
	List(ctx context.Context, postID, viewerID string) ([]domain.CommentView, error)
	Create(ctx context.Context, viewerID, postID, body string) (*domain.Comment, error)
	Update(ctx context.Context, viewerID, postID, commentID, body string) (*domain.Comment, error)
	Delete(ctx context.Context, viewerID, postID, commentID string) error
	Like(ctx context.Context, viewerID, postID, commentID string) error
	Unlike(ctx context.Context, viewerID, postID, commentID string) error
	Likers(ctx context.Context, postID, commentID string) ([]domain.UserSummary, error)
}

// Images is the object storage used for uploads and media redirects.
type Images interface {
	Put(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)
}
