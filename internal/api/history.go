package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/report"
)

// HistoryHandler serves the ledger and CSV exports.
type HistoryHandler struct {
	Engine *inventory.Engine
}

// List handles GET /api/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.Engine.HistoryInRange(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// ExportItems handles GET /api/export/items. It takes the same filters as
// GET /api/items.
func (h *HistoryHandler) ExportItems(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="items.csv"`)
	if err := report.WriteItemsCSV(w, items); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("writing items csv")
	}
}

// ExportHistory handles GET /api/export/history.
func (h *HistoryHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.Engine.HistoryInRange(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	if err := report.WriteHistoryCSV(w, entries); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("writing history csv")
	}
}

// Stats handles GET /api/stats.
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Engine.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
