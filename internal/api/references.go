package api

import (
	"net/http"

	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
)

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

// TypesHandler handles item type endpoints.
type TypesHandler struct {
	Engine *inventory.Engine
}

// List handles GET /api/types.
func (h *TypesHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.Engine.ListItemTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if types == nil {
		types = []model.ItemType{}
	}
	jsonResponse(w, http.StatusOK, types)
}

// Get handles GET /api/types/{id}.
func (h *TypesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemType, err := h.Engine.GetItemType(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, itemType)
}

// Create handles POST /api/types.
func (h *TypesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	itemType, err := h.Engine.CreateItemType(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, itemType)
}

// Rename handles PUT /api/types/{id}.
func (h *TypesHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	itemType, err := h.Engine.RenameItemType(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, itemType)
}

// PlacesHandler handles place endpoints.
type PlacesHandler struct {
	Engine *inventory.Engine
}

// List handles GET /api/places.
func (h *PlacesHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.Engine.ListPlaces(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if places == nil {
		places = []model.Place{}
	}
	jsonResponse(w, http.StatusOK, places)
}

// Get handles GET /api/places/{id}.
func (h *PlacesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	place, err := h.Engine.GetPlace(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, place)
}

// Create handles POST /api/places.
func (h *PlacesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	place, err := h.Engine.CreatePlace(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, place)
}

// Rename handles PUT /api/places/{id}.
func (h *PlacesHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	place, err := h.Engine.RenamePlace(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, place)
}
