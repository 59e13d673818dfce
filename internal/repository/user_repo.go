package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// UserRepo handles CRUD operations on the users table.
type UserRepo struct{ DB *sql.DB }

const userColumns = `id, username, email, password_hash, profile_picture_path,
	full_name, bio, country, birthdate, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var birthdate sql.NullTime
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfilePicture,
		&u.FullName, &u.Bio, &u.Country, &birthdate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if birthdate.Valid {
		u.Birthdate = &birthdate.Time
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, tx *sql.Tx, u *domain.User) error {
	_, err := getter(r.DB, tx).ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return domain.ErrUserConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, args...))
	if err == sql.ErrNoRows || pgCode(err) == invalidText {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `username = $1`, username)
}

// GetByIdentifier matches either the username or the email. When the
// identifier is one user's username and another's email, the email wins.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return r.getOne(ctx, `username = $1 OR email = $1 ORDER BY (email = $1) DESC LIMIT 1`, identifier)
}

// Taken reports whether another account (not excludeID) already uses the
// username or email. Empty inputs are ignored.
func (r *UserRepo) Taken(ctx context.Context, username, email, excludeID string) (bool, error) {
	var taken bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE ((username = $1 AND $1 <> '') OR (email = $2 AND $2 <> ''))
			  AND ($3 = '' OR id::text <> $3)
		)
	`, username, email, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check user uniqueness: %w", err)
	}
	return taken, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	var birthdate sql.NullTime
	if u.Birthdate != nil {
		birthdate = sql.NullTime{Time: *u.Birthdate, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET username=$2, email=$3, profile_picture_path=$4, full_name=$5,
		    bio=$6, country=$7, birthdate=$8, updated_at=NOW()
		WHERE id=$1
	`, u.ID, u.Username, u.Email, u.ProfilePicture, u.FullName, u.Bio, u.Country, birthdate)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return domain.ErrUserConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the account; posts, comments, likes and follow edges cascade.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Counts returns post, follower and following totals in one round trip.
func (r *UserRepo) Counts(ctx context.Context, id string) (domain.UserCounts, error) {
	var c domain.UserCounts
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE user_id = $1),
			(SELECT COUNT(*) FROM user_follows WHERE following_id = $1),
			(SELECT COUNT(*) FROM user_follows WHERE follower_id = $1)
	`, id).Scan(&c.PostCount, &c.FollowerCount, &c.FollowingCount)
	if err != nil {
		return c, fmt.Errorf("count user aggregates: %w", err)
	}
	return c, nil
}
