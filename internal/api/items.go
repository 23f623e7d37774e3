package api

import (
	"net/http"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/report"
	"github.com/erazemk/evidenca/internal/store"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Engine *inventory.Engine
}

type itemResponse struct {
	model.Item
	Summary string `json:"summary"`
}

type createItemRequest struct {
	Name             string `json:"name" validate:"required"`
	TypeID           int64  `json:"type_id" validate:"required,gt=0"`
	PlaceID          int64  `json:"place_id" validate:"required,gt=0"`
	Note             string `json:"note"`
	RegistrationCode string `json:"registration_code"`
}

type updateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type moveItemRequest struct {
	PlaceID int64 `json:"place_id" validate:"required,gt=0"`
}

func newItemResponse(item model.Item) itemResponse {
	return itemResponse{Item: item, Summary: report.Summary(item)}
}

// activityParam maps ?active= to an activity filter. Empty or "true" lists
// active items, "false" retired ones, and "all" both.
func activityParam(raw string) (model.Activity, error) {
	switch raw {
	case "", "true":
		return model.ActiveOnly, nil
	case "false":
		return model.InactiveOnly, nil
	case "all":
		return model.AnyActivity, nil
	}
	return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid active %q: want true, false or all", raw)
}

func criteriaFromQuery(r *http.Request) (model.Criteria, error) {
	var c model.Criteria
	var err error
	if c.TypeID, err = queryID(r, "type"); err != nil {
		return c, err
	}
	if c.PlaceID, err = queryID(r, "place"); err != nil {
		return c, err
	}
	c.Activity, err = activityParam(r.URL.Query().Get("active"))
	return c, err
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.Engine.FilterItems(r.Context(), criteria)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Engine.CreateItem(r.Context(), store.NewItem{
		Name:             req.Name,
		TypeID:           req.TypeID,
		PlaceID:          req.PlaceID,
		Note:             req.Note,
		RegistrationCode: req.RegistrationCode,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, newItemResponse(*item))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Engine.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newItemResponse(*item))
}

// UpdateField handles PATCH /api/items/{id}. It returns the recorded
// history entry, or NO_OP when the value was already set.
func (h *ItemsHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	field, ok := model.ParseField(req.Field)
	if !ok {
		writeError(w, r, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown field %q", req.Field))
		return
	}

	entry, err := h.Engine.UpdateItemField(r.Context(), id, field, req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Move handles POST /api/items/{id}/move.
func (h *ItemsHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req moveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.Engine.MoveItem(r.Context(), id, req.PlaceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Deactivate handles POST /api/items/{id}/deactivate.
func (h *ItemsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.Engine.DeactivateItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// History handles GET /api/items/{id}/history.
func (h *ItemsHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, to, err := queryRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.Engine.ItemHistoryInRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}
