package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
)

// UsersHandler handles user management endpoints (admin only).
type UsersHandler struct {
	Engine *inventory.Engine
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin manager user"`
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Engine.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Engine.CreateUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("target", user.Username).Str("role", user.Role).Msg("user created")
	jsonResponse(w, http.StatusCreated, user)
}
