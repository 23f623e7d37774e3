package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/erazemk/evidenca/internal/auth"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/inventory"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Engine    *inventory.Engine
	JWTSecret string
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	log := zerolog.Ctx(r.Context())
	user, err := h.Engine.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
			log.Warn().Str("username", req.Username).Str("remote", r.RemoteAddr).Msg("login failed")
		}
		writeError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, h.Engine.StoreID(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user", user.Username).Str("role", user.Role).Msg("user logged in")
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Engine.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Msg("user changed own password")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}
