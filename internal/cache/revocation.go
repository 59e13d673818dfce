package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList stores logged-out tokens until they would have expired anyway.
type RevocationList struct{ R *redis.Client }

func revokedKey(token string) string { return "blacklist:" + token }

// Revoke records token as revoked. Tokens already past exp are not stored.
func (l *RevocationList) Revoke(ctx context.Context, token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	if err := l.R.Set(ctx, revokedKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := l.R.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}
