package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

// MediaHandler redirects image keys to short-lived presigned URLs.
type MediaHandler struct {
	Images Images
	TTL    time.Duration
}

func NewMediaHandler(images Images, ttl time.Duration) *MediaHandler {
	return &MediaHandler{Images: images, TTL: ttl}
}

func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" || strings.Contains(key, "..") {
		transport.ServiceError(w, r, domain.ErrInvalidInput)
		return
	}

	u, err := h.Images.PresignedURL(r.Context(), key, h.TTL)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, u.String(), http.StatusFound)
}
