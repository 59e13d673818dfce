package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// CommentRepo handles CRUD and aggregate reads on the comments table.
type CommentRepo struct{ DB *sql.DB }

func (r *CommentRepo) Insert(ctx context.Context, tx *sql.Tx, c *domain.Comment) error {
	_, err := getter(r.DB, tx).ExecContext(ctx, `
		INSERT INTO comments (id, user_id, post_id, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.UserID, c.PostID, c.Body, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) Get(ctx context.Context, id string) (*domain.Comment, error) {
	c := &domain.Comment{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, post_id, comment, created_at, updated_at
		FROM comments WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.PostID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows || pgCode(err) == invalidText {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return c, nil
}

func (r *CommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE comments SET comment=$2, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`, c.ID, c.Body).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes the comment; its likes cascade.
func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// ListByPost returns the post's comments most-liked first, oldest first among
// ties, id as the final tie breaker.
func (r *CommentRepo) ListByPost(ctx context.Context, postID, viewerID string) ([]domain.CommentView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.post_id, c.comment, c.created_at, c.updated_at,
		       u.username, u.profile_picture_path, u.full_name,
		       COUNT(cl.comment_id) AS likes_count,
		       COALESCE(BOOL_OR(cl.user_id = $2::uuid), FALSE) AS is_liked
		FROM comments c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN comment_likes cl ON cl.comment_id = c.id
		WHERE c.post_id = $1
		GROUP BY c.id, u.id
		ORDER BY likes_count DESC, c.created_at ASC, c.id ASC
	`, postID, nullable(viewerID))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.CommentView{}
	for rows.Next() {
		var v domain.CommentView
		if err := rows.Scan(&v.ID, &v.UserID, &v.PostID, &v.Body, &v.CreatedAt, &v.UpdatedAt,
			&v.User.Username, &v.User.ProfilePicture, &v.User.FullName,
			&v.LikesCount, &v.IsLiked); err != nil {
			return nil, err
		}
		v.User.ID = v.UserID
		comments = append(comments, v)
	}
	return comments, rows.Err()
}
