package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// LikeRepo handles the post_likes and comment_likes tables. Duplicate likes are
// rejected by the composite primary keys, never by a read-before-write.
type LikeRepo struct{ DB *sql.DB }

func (r *LikeRepo) insert(ctx context.Context, tx *sql.Tx, query string, missing error, args ...any) error {
	_, err := getter(r.DB, tx).ExecContext(ctx, query, args...)
	switch pgCode(err) {
	case "":
	case uniqueViolation:
		return domain.ErrAlreadyLiked
	case foreignKeyViolation, invalidText:
		return missing
	}
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *LikeRepo) remove(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if pgCode(err) == invalidText {
			return domain.ErrLikeNotFound
		}
		return fmt.Errorf("delete like: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (r *LikeRepo) LikePost(ctx context.Context, tx *sql.Tx, l domain.PostLike) error {
	return r.insert(ctx, tx,
		`INSERT INTO post_likes (user_id, post_id, created_at) VALUES ($1, $2, $3)`,
		domain.ErrPostNotFound, l.UserID, l.PostID, l.CreatedAt)
}

func (r *LikeRepo) UnlikePost(ctx context.Context, userID, postID string) error {
	return r.remove(ctx,
		`DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
}

func (r *LikeRepo) LikeComment(ctx context.Context, tx *sql.Tx, l domain.CommentLike) error {
	return r.insert(ctx, tx,
		`INSERT INTO comment_likes (user_id, comment_id, created_at) VALUES ($1, $2, $3)`,
		domain.ErrCommentNotFound, l.UserID, l.CommentID, l.CreatedAt)
}

func (r *LikeRepo) UnlikeComment(ctx context.Context, userID, commentID string) error {
	return r.remove(ctx,
		`DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`, userID, commentID)
}

func (r *LikeRepo) likers(ctx context.Context, query, id string) ([]domain.UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		if pgCode(err) == invalidText {
			return []domain.UserSummary{}, nil
		}
		return nil, fmt.Errorf("list likers: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// PostLikers lists the users who liked a post, earliest like first.
func (r *LikeRepo) PostLikers(ctx context.Context, postID string) ([]domain.UserSummary, error) {
	return r.likers(ctx, `
		SELECT u.id, u.username, u.profile_picture_path, u.full_name
		FROM post_likes l JOIN users u ON u.id = l.user_id
		WHERE l.post_id = $1
		ORDER BY l.created_at, u.id
	`, postID)
}

// CommentLikers lists the users who liked a comment, earliest like first.
func (r *LikeRepo) CommentLikers(ctx context.Context, commentID string) ([]domain.UserSummary, error) {
	return r.likers(ctx, `
		SELECT u.id, u.username, u.profile_picture_path, u.full_name
		FROM comment_likes l JOIN users u ON u.id = l.user_id
		WHERE l.comment_id = $1
		ORDER BY l.created_at, u.id
	`, commentID)
}

func scanSummaries(rows *sql.Rows) ([]domain.UserSummary, error) {
	out := []domain.UserSummary{}
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.ProfilePicture, &s.FullName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
