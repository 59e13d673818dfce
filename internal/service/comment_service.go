package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/outbox"
	"github.com/SARVESHVARADKAR123/picshare/internal/tx"
)

// CommentService manages comments and comment likes under a post.
type CommentService struct {
	comments CommentStore
	posts    PostStore
	likes    LikeStore
	tx       tx.Transactor
	events   outbox.Recorder
	now      func() time.Time
}

func NewCommentService(comments CommentStore, posts PostStore, likes LikeStore, t tx.Transactor, events outbox.Recorder) *CommentService {
	return &CommentService{comments: comments, posts: posts, likes: likes, tx: t, events: events, now: time.Now}
}

// List returns the post's comments most-liked first, then oldest first.
func (s *CommentService) List(ctx context.Context, postID, viewerID string) ([]domain.CommentView, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	cs, err := s.comments.ListByPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	domain.SortComments(cs)
	return cs, nil
}

// get loads a comment and checks it hangs under postID.
func (s *CommentService) get(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	c, err := s.comments.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, domain.ErrCommentNotFound
	}
	return c, nil
}

func (s *CommentService) Create(ctx context.Context, viewerID, postID, body string) (*domain.Comment, error) {
	c, err := domain.NewComment(uuid.NewString(), viewerID, postID, body, s.now())
	if err != nil {
		return nil, err
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.comments.Insert(ctx, tx, c); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outbox.CommentCreated, postID, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update edits the body of the viewer's own comment.
func (s *CommentService) Update(ctx context.Context, viewerID, postID, commentID, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrCommentRequired
	}
	if !domain.ValidText(body) {
		return nil, domain.ErrInvalidInput
	}
	c, err := s.get(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if c.UserID != viewerID {
		return nil, domain.ErrForbidden
	}
	c.Body = body
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete is allowed for the comment owner and for the owner of the post.
func (s *CommentService) Delete(ctx context.Context, viewerID, postID, commentID string) error {
	c, err := s.get(ctx, postID, commentID)
	if err != nil {
		return err
	}
	p, err := s.posts.Get(ctx, c.PostID)
	if err != nil {
		return err
	}
	if !c.CanDelete(viewerID, p.UserID) {
		return domain.ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) Like(ctx context.Context, viewerID, postID, commentID string) error {
	if _, err := s.get(ctx, postID, commentID); err != nil {
		return err
	}
	l := domain.CommentLike{UserID: viewerID, CommentID: commentID, CreatedAt: s.now()}
	return s.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.likes.LikeComment(ctx, tx, l); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, outbox.CommentLiked, commentID, l)
	})
}

func (s *CommentService) Unlike(ctx context.Context, viewerID, postID, commentID string) error {
	if _, err := s.get(ctx, postID, commentID); err != nil {
		return err
	}
	return s.likes.UnlikeComment(ctx, viewerID, commentID)
}

func (s *CommentService) Likers(ctx context.Context, postID, commentID string) ([]domain.UserSummary, error) {
	if _, err := s.get(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.likes.CommentLikers(ctx, commentID)
}
