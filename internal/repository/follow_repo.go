package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// FollowRepo handles the user_follows edge table.
type FollowRepo struct{ DB *sql.DB }

func (r *FollowRepo) Add(ctx context.Context, tx *sql.Tx, f domain.Follow) error {
	_, err := getter(r.DB, tx).ExecContext(ctx, `
		INSERT INTO user_follows (follower_id, following_id, created_at)
		VALUES ($1, $2, $3)
	`, f.FollowerID, f.FollowingID, f.CreatedAt)
	switch pgCode(err) {
	case uniqueViolation:
		return domain.ErrAlreadyFollowing
	case foreignKeyViolation, invalidText:
		return domain.ErrUserNotFound
	case checkViolation:
		return domain.ErrSelfFollow
	}
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// Remove deletes the edge and reports whether one existed.
func (r *FollowRepo) Remove(ctx context.Context, followerID, followingID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		if pgCode(err) == invalidText {
			return false, nil
		}
		return false, fmt.Errorf("delete follow: %w", err)
	}
	n, err := affected(res)
	return n > 0, err
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" || followingID == "" {
		return false, nil
	}
	var ok bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_follows WHERE follower_id = $1 AND following_id = $2
		)
	`, followerID, followingID).Scan(&ok)
	if pgCode(err) == invalidText {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

// Followers lists users following userID, most recent edge first.
func (r *FollowRepo) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.username, u.profile_picture_path, u.full_name
		FROM user_follows f JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC, u.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// Following lists users that userID follows, most recent edge first.
func (r *FollowRepo) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.username, u.profile_picture_path, u.full_name
		FROM user_follows f JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// FollowingAmong reports, in one round trip, which of candidates the viewer follows.
func (r *FollowRepo) FollowingAmong(ctx context.Context, viewerID string, candidates []string) (map[string]bool, error) {
	out := make(map[string]bool, len(candidates))
	if viewerID == "" || len(candidates) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT following_id FROM user_follows
		WHERE follower_id = $1 AND following_id = ANY($2::uuid[])
	`, viewerID, pq.Array(candidates))
	if err != nil {
		return nil, fmt.Errorf("batch follow lookup: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// FollowingIDs returns the ids userID follows, used to build the feed.
func (r *FollowRepo) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT following_id FROM user_follows WHERE follower_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list following ids: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
