package transport

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
)

type mapping struct {
	err    error
	status int
	code   string
}

// mappings is matched in order with errors.Is; the sentinel's own text is
// the client-facing message, never the wrapped chain.
var mappings = []mapping{
	{domain.ErrMissingFields, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrMissingToken, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrSelfFollow, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrImageRequired, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrCaptionRequired, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrCommentRequired, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrIncorrectPassword, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrUnsupportedImage, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrPasswordTooLong, http.StatusBadRequest, "invalid_argument"},

	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},

	{domain.ErrInvalidToken, http.StatusForbidden, "forbidden"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},

	{domain.ErrUserNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrPostNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrCommentNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrLikeNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrNotFollowing, http.StatusNotFound, "not_found"},

	{domain.ErrUserConflict, http.StatusConflict, "already_exists"},
	{domain.ErrAlreadyLiked, http.StatusConflict, "already_exists"},
	{domain.ErrAlreadyFollowing, http.StatusConflict, "already_exists"},
}

// Status returns the HTTP status and error code for err.
func Status(err error) (int, string, string) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.code, m.err.Error()
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusInternalServerError, "timeout", "request timed out"
	}
	return http.StatusInternalServerError, "internal_error", "internal server error"
}

// ServiceError writes err using the domain error taxonomy. Unmapped errors
// are logged and answered with a generic 500.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := Status(err)
	log := observability.GetLogger(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("internal_error", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		log.Debug("request_rejected", zap.Int("status", status), zap.Error(err))
	}
	WriteError(w, status, code, msg)
}
