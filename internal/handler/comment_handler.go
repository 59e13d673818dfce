package handler

import (
	"net/http"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/middleware"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

type CommentHandler struct {
	S Comments
}

func NewCommentHandler(s Comments) *CommentHandler {
	return &CommentHandler{S: s}
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// ids reads the post id and, when withComment is set, the comment id.
func ids(r *http.Request, withComment bool) (postID, commentID string, err error) {
	if postID, err = pathID(r, "postID", domain.ErrPostNotFound); err != nil {
		return "", "", err
	}
	if withComment {
		if commentID, err = pathID(r, "commentID", domain.ErrCommentNotFound); err != nil {
			return "", "", err
		}
	}
	return postID, commentID, nil
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, _, err := ids(r, false)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	comments, err := h.S.List(r.Context(), postID, middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, _, err := ids(r, false)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.S.Create(r.Context(), middleware.ViewerID(r.Context()), postID, req.Comment)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := ids(r, true)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.S.Update(r.Context(), middleware.ViewerID(r.Context()), postID, commentID, req.Comment)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := ids(r, true)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.S.Delete(r.Context(), middleware.ViewerID(r.Context()), postID, commentID); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "comment deleted")
}

func (h *CommentHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := ids(r, true)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.S.Like(r.Context(), middleware.ViewerID(r.Context()), postID, commentID); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusCreated, "comment liked")
}

func (h *CommentHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := ids(r, true)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.S.Unlike(r.Context(), middleware.ViewerID(r.Context()), postID, commentID); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "comment unliked")
}

func (h *CommentHandler) Likers(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := ids(r, true)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	users, err := h.S.Likers(r.Context(), postID, commentID)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, users)
}
