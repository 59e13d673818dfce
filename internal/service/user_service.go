package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
	"github.com/SARVESHVARADKAR123/picshare/internal/security"
)

// UserService handles profiles and account maintenance.
type UserService struct {
	users   UserStore
	follows FollowStore
	posts   PostStore
	cache   ProfileCache
	images  ImageRemover
}

func NewUserService(users UserStore, follows FollowStore, posts PostStore, cache ProfileCache, images ImageRemover) *UserService {
	return &UserService{users: users, follows: follows, posts: posts, cache: cache, images: images}
}

// user returns the public row for id, checking cache first.
func (s *UserService) user(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		if u, err := s.cache.Get(ctx, id); err == nil {
			return u, nil
		}
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			observability.GetLogger(ctx).Warn("profile cache write failed", zap.String("user_id", id), zap.Error(err))
		}
	}
	return u, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		observability.GetLogger(ctx).Warn("profile cache invalidation failed", zap.String("user_id", id), zap.Error(err))
	}
}

func (s *UserService) removeImage(ctx context.Context, key string) {
	if s.images == nil || key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		observability.GetLogger(ctx).Warn("image cleanup failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *UserService) profile(ctx context.Context, u *domain.User, viewerID string) (*domain.Profile, error) {
	counts, err := s.users.Counts(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	p := &domain.Profile{User: u, UserCounts: counts}
	if viewerID != "" && viewerID != u.ID {
		if p.IsFollowing, err = s.follows.Exists(ctx, viewerID, u.ID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Profile returns the user with counts and the viewer's follow state.
func (s *UserService) Profile(ctx context.Context, userID, viewerID string) (*domain.Profile, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u, viewerID)
}

// ProfileByUsername is Profile plus the author's posts, newest first.
func (s *UserService) ProfileByUsername(ctx context.Context, username, viewerID string) (*domain.Profile, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.profile(ctx, u, viewerID)
	if err != nil {
		return nil, err
	}
	if p.Posts, err = s.posts.List(ctx, viewerID, domain.PostFilter{AuthorIDs: []string{u.ID}}); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile applies a partial update. Username and email collisions are
// checked against every account except the viewer's own.
func (s *UserService) UpdateProfile(ctx context.Context, viewerID string, upd domain.ProfileUpdate) (*domain.User, error) {
	upd, err := upd.Normalize()
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	var username, email string
	if upd.Username != nil && *upd.Username != u.Username {
		username = *upd.Username
	}
	if upd.Email != nil && *upd.Email != u.Email {
		email = *upd.Email
	}
	if username != "" || email != "" {
		taken, err := s.users.Taken(ctx, username, email, viewerID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUserConflict
		}
	}

	oldPicture := u.ProfilePicture
	upd.Apply(u)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.invalidate(ctx, viewerID)
	if u.ProfilePicture != oldPicture {
		s.removeImage(ctx, oldPicture)
	}
	return u, nil
}

// ChangePassword replaces the password hash once current verifies.
func (s *UserService) ChangePassword(ctx context.Context, viewerID, current, next string) error {
	if current == "" || next == "" {
		return domain.ErrMissingFields
	}
	u, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return err
	}
	if err := security.ComparePassword(u.PasswordHash, current); err != nil {
		return domain.ErrIncorrectPassword
	}

	hash, err := security.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, viewerID, hash); err != nil {
		return err
	}
	s.invalidate(ctx, viewerID)
	observability.GetLogger(ctx).Info("password_changed", zap.String("user_id", viewerID))
	return nil
}

// DeleteAccount removes the user; the store cascades to posts, comments,
// likes and follow edges. Stored images are removed afterwards.
func (s *UserService) DeleteAccount(ctx context.Context, viewerID string) error {
	u, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return err
	}
	posts, err := s.posts.List(ctx, "", domain.PostFilter{AuthorIDs: []string{viewerID}})
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, viewerID); err != nil {
		return err
	}
	s.invalidate(ctx, viewerID)

	s.removeImage(ctx, u.ProfilePicture)
	for _, p := range posts {
		s.removeImage(ctx, p.Image)
	}
	observability.GetLogger(ctx).Info("account_deleted", zap.String("user_id", viewerID))
	return nil
}
