package api

import (
	"errors"
	"net/http"

	"github.com/benchwise/teamforge/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler exchanges demo credentials for a signed session token.
type LoginHandler struct {
	svc *auth.Service
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(svc *auth.Service) *LoginHandler {
	return &LoginHandler{svc: svc}
}

// HandleLogin handles POST /login requests.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}
