package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
	"github.com/SARVESHVARADKAR123/picshare/internal/outbox"
	"github.com/SARVESHVARADKAR123/picshare/internal/tx"
)

// PostService assembles post views and applies post mutations.
type PostService struct {
	posts    PostStore
	comments CommentStore
	likes    LikeStore
	follows  FollowStore
	images   ImageRemover
	tx       tx.Transactor
	events   outbox.Recorder
	now      func() time.Time
}

func NewPostService(posts PostStore, comments CommentStore, likes LikeStore, follows FollowStore,
	images ImageRemover, t tx.Transactor, events outbox.Recorder) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		follows:  follows,
		images:   images,
		tx:       t,
		events:   events,
		now:      time.Now,
	}
}

// List is the explore listing: every post, newest first.
func (s *PostService) List(ctx context.Context, viewerID string) ([]domain.PostView, error) {
	return s.posts.List(ctx, viewerID, domain.PostFilter{})
}

// Feed lists posts by the authors the viewer follows.
func (s *PostService) Feed(ctx context.Context, viewerID string) ([]domain.PostView, error) {
	ids, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return s.posts.List(ctx, viewerID, domain.PostFilter{AuthorIDs: ids})
}

// Get returns the post with its ordered comments and the viewer's relation
// to the owner.
func (s *PostService) Get(ctx context.Context, postID, viewerID string) (*domain.PostDetail, error) {
	view, err := s.posts.GetView(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	d := &domain.PostDetail{PostView: *view}

	if viewerID != "" && viewerID != view.UserID {
		if d.IsFollowing, err = s.follows.Exists(ctx, viewerID, view.UserID); err != nil {
			return nil, err
		}
	}

	if d.Comments, err = s.comments.ListByPost(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	domain.SortComments(d.Comments)
	return d, nil
}

func (s *PostService) Likers(ctx context.Context, postID string) ([]domain.UserSummary, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.likes.PostLikers(ctx, postID)
}

// Create stores a post owned by the viewer. image is a storage reference.
func (s *PostService) Create(ctx context.Context, viewerID, image, caption string) (*domain.Post, error) {
	p, err := domain.NewPost(uuid.NewString(), viewerID, image, caption, s.now())
	if err != nil {
		return nil, err
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.posts.Insert(ctx, tx, p); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outbox.PostCreated, p.ID, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) owned(ctx context.Context, viewerID, postID string) (*domain.Post, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != viewerID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Update edits the owner's post. Empty image or caption keeps the old value.
func (s *PostService) Update(ctx context.Context, viewerID, postID, image, caption string) (*domain.Post, error) {
	p, err := s.owned(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	oldImage := p.Image
	if image != "" {
		p.Image = image
	}
	if caption != "" {
		p.Caption = caption
	}
	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	if p.Image != oldImage {
		s.removeImage(ctx, oldImage)
	}
	return p, nil
}

// Delete removes the owner's post; comments and likes go with it.
func (s *PostService) Delete(ctx context.Context, viewerID, postID string) error {
	p, err := s.owned(ctx, viewerID, postID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.removeImage(ctx, p.Image)
	return nil
}

func (s *PostService) Like(ctx context.Context, viewerID, postID string) error {
	l := domain.PostLike{UserID: viewerID, PostID: postID, CreatedAt: s.now()}
	return s.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.likes.LikePost(ctx, tx, l); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outbox.PostLiked, postID, l)
	})
}

func (s *PostService) Unlike(ctx context.Context, viewerID, postID string) error {
	return s.likes.UnlikePost(ctx, viewerID, postID)
}

func (s *PostService) removeImage(ctx context.Context, key string) {
	if s.images == nil || key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		observability.GetLogger(ctx).Warn("image cleanup failed", zap.String("key", key), zap.Error(err))
	}
}
