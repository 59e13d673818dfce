package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

// Recovery answers a panicking handler with the generic 500 body.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				observability.GetLogger(r.Context()).Error("panic_recovered",
					zap.Any("error", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				transport.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
