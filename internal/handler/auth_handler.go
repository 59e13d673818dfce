package handler

import (
	"net/http"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/middleware"
	"github.com/SARVESHVARADKAR123/picshare/internal/transport"
)

type AuthHandler struct {
	S Auth
}

func NewAuthHandler(s Auth) *AuthHandler {
	return &AuthHandler{S: s}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	// Identifier is a username or an email.
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (l loginRequest) identifier() string {
	switch {
	case l.Identifier != "":
		return l.Identifier
	case l.Username != "":
		return l.Username
	}
	return l.Email
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.S.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.identifier() == "" || req.Password == "" {
		transport.ServiceError(w, r, domain.ErrMissingFields)
		return
	}

	res, err := h.S.Login(r.Context(), req.identifier(), req.Password)
	if err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, res)
}

// Logout revokes the bearer token of the request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tok, _ := middleware.BearerToken(r)
	if err := h.S.Logout(r.Context(), tok); err != nil {
		transport.ServiceError(w, r, err)
		return
	}
	message(w, http.StatusOK, "logged out")
}
