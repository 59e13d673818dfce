package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// Claims is the payload carried by every access token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the authenticated identity encoded in the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.UserID, Username: c.Username, Email: c.Email}
}

// TokenCodec issues and verifies HS256 access tokens.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret, issuer string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is not configured")
	}
	return &TokenCodec{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for id and returns it with its expiry.
func (c *TokenCodec) Issue(id domain.Identity) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(c.ttl)
	claims := Claims{
		UserID:   id.UserID,
		Username: id.Username,
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

// Parse verifies signature, algorithm, issuer and expiry. Any failure is
// reported as domain.ErrInvalidToken.
func (c *TokenCodec) Parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId claim", domain.ErrInvalidToken)
	}
	return claims, nil
}
