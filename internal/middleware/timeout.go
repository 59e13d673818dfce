package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the request context by d. Stores give up with
// context.DeadlineExceeded, which is answered with a 500 "timeout" error.
// d <= 0 disables it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
