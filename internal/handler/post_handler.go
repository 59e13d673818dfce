package handler

import (
	"net/http"
	"strings"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/middleware"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

type PostHandler struct {
	S      Posts
	upload uploader
}

func NewPostHandler(s Posts, images Images, maxUpload int64) *PostHandler {
	return &PostHandler{S: s, upload: uploader{images: images, maxBytes: maxUpload}}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.S.List(r.Context(), middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.S.Feed(r.Context(), middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, posts)
}

// Create stores the uploaded image before inserting the post; the upload
// is removed again if the insert fails.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.upload.parse(w, r); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	caption := strings.TrimSpace(r.FormValue("caption"))
	if caption == "" {
		transport.ServiceError(w, r, domain.ErrCaptionRequired)
		return
	}

	image, err := h.upload.save(r, "image", "posts")
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	p, err := h.S.Create(r.Context(), middleware.ViewerID(r.Context()), image, caption)
	if err != nil {
		h.upload.discard(r, image)
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID", domain.ErrPostNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	p, err := h.S.Get(r.Context(), id, middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, p)
}

// Update takes a multipart form; absent image or caption keep their values.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID", domain.ErrPostNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	if err := h.upload.parse(w, r); err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	image, err := h.upload.save(r, "image", "posts")
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	p, err := h.S.Update(r.Context(), middleware.ViewerID(r.Context()), id, image, strings.TrimSpace(r.FormValue("caption")))
	if err != nil {
		h.upload.discard(r, image)
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID", domain.ErrPostNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.S.Delete(r.Context(), middleware.ViewerID(r.Context()), id); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "post deleted")
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID", domain.ErrPostNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.S.Like(r.Context(), middleware.ViewerID(r.Context()), id); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusCreated, "post liked")
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID", domain.ErrPostNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.S.Unlike(r.Context(), middleware.ViewerID(r.Context()), id); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "post unliked")
}

func (h *PostHandler) Likers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID", domain.ErrPostNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	users, err := h.S.Likers(r.Context(), id)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, users)
}
