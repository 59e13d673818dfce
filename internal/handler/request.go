package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

// pathID reads a UUID path parameter. Malformed ids name no row, so they
// are reported with the resource's not-found error.
func pathID(r *http.Request, name string, notFound error) (string, error) {
	id := chi.URLParam(r, name)
	if uuid.Validate(id) != nil {
		return "", notFound
	}
	return id, nil
}

func message(w http.ResponseWriter, status int, msg string) {
	transport.WriteJSON(w, status, map[string]string{"message": msg})
}

// uploader stores multipart files in object storage.
type uploader struct {
	images   Images
	maxBytes int64
}

// parse limits and parses a multipart body.
func (u uploader) parse(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
	if err := r.ParseMultipartForm(u.maxBytes); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// save stores the file in field under prefix. A missing file is not an
// error and yields an empty key.
func (u uploader) save(r *http.Request, field, prefix string) (string, error) {
	file, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	defer file.Close()

	return u.images.Put(r.Context(), prefix, hdr.Filename, file, hdr.Size, hdr.Header.Get("Content-Type"))
}

// discard removes an upload whose owning write failed.
func (u uploader) discard(r *http.Request, key string) {
	if key == "" {
		return
	}
	if err := u.images.Delete(r.Context(), key); err != nil {
		observability.GetLogger(r.Context()).Warn("orphaned upload", zap.String("key", key), zap.Error(err))
	}
}
