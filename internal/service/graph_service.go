package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/outbox"
	"github.com/SARVESHVARADKAR123/picshare/internal/tx"
)

// GraphService answers and mutates the directed follow relation.
type GraphService struct {
	follows FollowStore
	users   UserStore
	tx      tx.Transactor
	events  outbox.Recorder
	now     func() time.Time
}

func NewGraphService(follows FollowStore, users UserStore, t tx.Transactor, events outbox.Recorder) *GraphService {
	return &GraphService{follows: follows, users: users, tx: t, events: events, now: time.Now}
}

// IsFollowing is false for anonymous viewers and for self queries.
func (s *GraphService) IsFollowing(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == "" || viewerID == targetID {
		return false, nil
	}
	return s.follows.Exists(ctx, viewerID, targetID)
}

func (s *GraphService) Followers(ctx context.Context, userID, viewerID string) ([]domain.FollowEntry, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, viewerID, users)
}

func (s *GraphService) Following(ctx context.Context, userID, viewerID string) ([]domain.FollowEntry, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, viewerID, users)
}

// annotate sets the viewer's follow flag on every entry with a single lookup.
func (s *GraphService) annotate(ctx context.Context, viewerID string, users []domain.UserSummary) ([]domain.FollowEntry, error) {
	out := make([]domain.FollowEntry, len(users))
	ids := make([]string, len(users))
	for i, u := range users {
		out[i].UserSummary = u
		ids[i] = u.ID
	}
	if viewerID == "" || len(users) == 0 {
		return out, nil
	}

	following, err := s.follows.FollowingAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].IsFollowing = out[i].ID != viewerID && following[out[i].ID]
	}
	return out, nil
}

// Follow inserts the edge. Duplicates surface as domain.ErrAlreadyFollowing
// from the primary key, not from a prior read.
func (s *GraphService) Follow(ctx context.Context, viewerID, targetID string) error {
	if viewerID == targetID {
		return domain.ErrSelfFollow
	}
	f := domain.Follow{FollowerID: viewerID, FollowingID: targetID, CreatedAt: s.now()}
	return s.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.follows.Add(ctx, tx, f); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outbox.UserFollowed, targetID, f)
	})
}

func (s *GraphService) Unfollow(ctx context.Context, viewerID, targetID string) error {
	removed, err := s.follows.Remove(ctx, viewerID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFollowing
	}
	return nil
}
