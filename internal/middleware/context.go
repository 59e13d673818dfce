package middleware

import (
	"context"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

type ctxKey int

const identityKey ctxKey = iota

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the authenticated viewer, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// ViewerID is the authenticated user id, or "" for anonymous requests.
func ViewerID(ctx context.Context) string {
	id, _ := IdentityFrom(ctx)
	return id.UserID
}
