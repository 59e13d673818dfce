package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// PostRepo handles CRUD and aggregate reads on the posts table.
type PostRepo struct{ DB *sql.DB }

// postViewSelect computes both counts and the viewer's like flag in the same
// statement as the listing. $1 is the viewer id (NULL for anonymous).
const postViewSelect = `
	SELECT p.id, p.user_id, p.image_file_path, p.caption, p.created_at, p.updated_at,
	       u.username, u.profile_picture_path, u.full_name,
	       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
	       EXISTS (
	           SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1::uuid
	       ) AS is_liked
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func nullable(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func scanPostView(s rowScanner) (domain.PostView, error) {
	var v domain.PostView
	err := s.Scan(&v.ID, &v.UserID, &v.Image, &v.Caption, &v.CreatedAt, &v.UpdatedAt,
		&v.User.Username, &v.User.ProfilePicture, &v.User.FullName,
		&v.LikesCount, &v.CommentsCount, &v.IsLiked)
	v.User.ID = v.UserID
	return v, err
}

func (r *PostRepo) Insert(ctx context.Context, tx *sql.Tx, p *domain.Post) error {
	_, err := getter(r.DB, tx).ExecContext(ctx, `
		INSERT INTO posts (id, user_id, image_file_path, caption, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.UserID, p.Image, p.Caption, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepo) Get(ctx context.Context, id string) (*domain.Post, error) {
	p := &domain.Post{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, image_file_path, caption, created_at, updated_at
		FROM posts WHERE id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.Image, &p.Caption, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows || pgCode(err) == invalidText {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return p, nil
}

func (r *PostRepo) Update(ctx context.Context, p *domain.Post) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE posts SET image_file_path=$2, caption=$3, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`, p.ID, p.Image, p.Caption).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes the post; its comments, likes and comment likes cascade.
func (r *PostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// List returns post views newest first, optionally restricted to a set of authors.
func (r *PostRepo) List(ctx context.Context, viewerID string, f domain.PostFilter) ([]domain.PostView, error) {
	if f.AuthorIDs != nil && len(f.AuthorIDs) == 0 {
		return []domain.PostView{}, nil
	}

	query := postViewSelect
	args := []any{nullable(viewerID)}
	if f.AuthorIDs != nil {
		query += ` WHERE p.user_id = ANY($2::uuid[])`
		args = append(args, pq.Array(f.AuthorIDs))
	}
	query += ` ORDER BY p.created_at DESC, p.id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.PostView{}
	for rows.Next() {
		v, err := scanPostView(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, v)
	}
	return posts, rows.Err()
}

// GetView returns a single post view relative to viewerID.
func (r *PostRepo) GetView(ctx context.Context, id, viewerID string) (*domain.PostView, error) {
	v, err := scanPostView(r.DB.QueryRowContext(ctx,
		postViewSelect+` WHERE p.id = $2`, nullable(viewerID), id))
	if err == sql.ErrNoRows || pgCode(err) == invalidText {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post view: %w", err)
	}
	return &v, nil
}
