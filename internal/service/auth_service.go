package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
	"github.com/SARVESHVARADKAR123/picshare/internal/outbox"
	"github.com/SARVESHVARADKAR123/picshare/internal/security"
	"github.com/SARVESHVARADKAR123/picshare/internal/tx"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// AuthService handles authentication business logic.
type AuthService struct {
	users   UserStore
	tx      tx.Transactor
	tokens  *security.TokenCodec
	revoked Revoker
	events  outbox.Recorder
	now     func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, t tx.Transactor, tokens *security.TokenCodec, revoked Revoker, events outbox.Recorder) *AuthService {
	return &AuthService{users: users, tx: t, tokens: tokens, revoked: revoked, events: events, now: time.Now}
}

// Register creates a new user with a hashed password, records a
// user.registered event and signs the caller in.
func (a *AuthService) Register(ctx context.Context, username, email, password string) (res *AuthResult, err error) {
	defer func() { observability.AuthAttemptsTotal.WithLabelValues("register", observability.Result(err)).Inc() }()

	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidText(username) || !domain.ValidText(email) {
		return nil, domain.ErrInvalidInput
	}

	taken, err := a.users.Taken(ctx, username, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserConflict
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := a.now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = a.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := a.users.Create(ctx, tx, u); err != nil {
			return err
		}
		return a.events.Record(ctx, tx, outbox.UserRegistered, u.ID, map[string]string{
			"userId":   u.ID,
			"username": u.Username,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	observability.GetLogger(ctx).Info("user_registered", zap.String("user_id", u.ID))
	return a.issue(u)
}

// Login authenticates by username or email.
func (a *AuthService) Login(ctx context.Context, identifier, password string) (res *AuthResult, err error) {
	defer func() { observability.AuthAttemptsTotal.WithLabelValues("login", observability.Result(err)).Inc() }()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	u, err := a.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := security.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	observability.GetLogger(ctx).Info("user_login_success", zap.String("user_id", u.ID))
	return a.issue(u)
}

func (a *AuthService) issue(u *domain.User) (*AuthResult, error) {
	token, exp, err := a.tokens.Issue(domain.Identity{UserID: u.ID, Username: u.Username, Email: u.Email})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Logout revokes token for the rest of its lifetime.
func (a *AuthService) Logout(ctx context.Context, token string) (err error) {
	defer func() { observability.AuthAttemptsTotal.WithLabelValues("logout", observability.Result(err)).Inc() }()

	if token == "" {
		return domain.ErrMissingToken
	}
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return err
	}
	if err := a.revoked.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Authenticate verifies token and returns the identity it carries. An
// unreachable revocation list does not block otherwise valid tokens.
func (a *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return domain.Identity{}, err
	}

	revoked, err := a.revoked.IsRevoked(ctx, token)
	if err != nil {
		observability.RevocationCheckFailuresTotal.Inc()
		observability.GetLogger(ctx).Warn("revocation check unavailable", zap.Error(err))
	} else if revoked {
		return domain.Identity{}, fmt.Errorf("%w: token revoked", domain.ErrInvalidToken)
	}

	return claims.Identity(), nil
}
