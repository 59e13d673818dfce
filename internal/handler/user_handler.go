package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/middleware"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

const birthdateLayout = "2006-01-02"

type UserHandler struct {
	S      Users
	Graph  Graph
	upload uploader
}

func NewUserHandler(s Users, g Graph, images Images, maxUpload int64) *UserHandler {
	return &UserHandler{S: s, Graph: g, upload: uploader{images: images, maxBytes: maxUpload}}
}

type profileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FullName  *string `json:"fullName"`
	Bio       *string `json:"bio"`
	Country   *string `json:"country"`
	Birthdate *string `json:"birthdate"`
}

func (p profileRequest) update() (domain.ProfileUpdate, error) {
	upd := domain.ProfileUpdate{
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		Bio:      p.Bio,
		Country:  p.Country,
	}
	if p.Birthdate != nil && *p.Birthdate != "" {
		t, err := time.Parse(birthdateLayout, *p.Birthdate)
		if err != nil {
			return upd, domain.ErrInvalidInput
		}
		upd.Birthdate = &t
	}
	return upd, nil
}

// formValue returns nil for form fields the client did not send.
func formValue(r *http.Request, key string) *string {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerID(r.Context())
	p, err := h.S.Profile(r.Context(), viewer, viewer)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, p)
}

// UpdateMe accepts either a JSON body or a multipart form carrying an
// optional profilePicture file.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	var picture string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := h.upload.parse(w, r); err != nil {
			transport.ServiceError(w, r, err)
			return
		}
		req = profileRequest{
			Username:  formValue(r, "username"),
			Email:     formValue(r, "email"),
			FullName:  formValue(r, "fullName"),
			Bio:       formValue(r, "bio"),
			Country:   formValue(r, "country"),
			Birthdate: formValue(r, "birthdate"),
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	upd, err := req.update()
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if r.MultipartForm != nil {
		if picture, err = h.upload.save(r, "profilePicture", "profiles"); err != nil {
			transport.ServiceError(w, r, err)
			return
		}
		if picture != "" {
			upd.ProfilePicture = &picture
		}
	}

	u, err := h.S.UpdateProfile(r.Context(), middleware.ViewerID(r.Context()), upd)
	if err != nil {
		h.upload.discard(r, picture)
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.S.DeleteAccount(r.Context(), middleware.ViewerID(r.Context())); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "account deleted")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.S.ChangePassword(r.Context(), middleware.ViewerID(r.Context()), req.CurrentPassword, req.NewPassword)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "password updated")
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID", domain.ErrUserNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	p, err := h.S.Profile(r.Context(), id, middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, p)
}

func (h *UserHandler) ByUsername(w http.ResponseWriter, r *http.Request) {
	p, err := h.S.ProfileByUsername(r.Context(), chi.URLParam(r, "username"), middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, p)
}

func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.listGraph(w, r, h.Graph.Followers)
}

func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.listGraph(w, r, h.Graph.Following)
}

func (h *UserHandler) listGraph(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, userID, viewerID string) ([]domain.FollowEntry, error)) {
	id, err := pathID(r, "userID", domain.ErrUserNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	entries, err := list(r.Context(), id, middleware.ViewerID(r.Context()))
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, entries)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID", domain.ErrUserNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.Graph.Follow(r.Context(), middleware.ViewerID(r.Context()), id); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusCreated, "user followed")
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID", domain.ErrUserNotFound)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}

	if err := h.Graph.Unfollow(r.Context(), middleware.ViewerID(r.Context()), id); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "user unfollowed")
}
