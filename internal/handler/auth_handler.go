package handler

import (
	"errors"
	"net/http"

	"github.com/devanshg/splitmate/internal/auth"
	"github.com/devanshg/splitmate/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates an AuthHandler backed by svc.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, authResponse{User: newUserView(user), Token: token})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, authResponse{User: newUserView(user), Token: token})
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		writeJSON(w, http.StatusConflict, envelope{Success: false, Message: "email already registered"})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "password must be at least 8 characters"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "invalid credentials"})
	default:
		writeError(w, err)
	}
}
