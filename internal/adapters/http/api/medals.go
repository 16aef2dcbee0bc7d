package api

import (
	"net/http"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/stats"
)

// MedalHandler serves the per-country medal table.
type MedalHandler struct {
	deps Dependencies
}

// NewMedalHandler creates a new medal table handler.
func NewMedalHandler(deps Dependencies) *MedalHandler {
	return &MedalHandler{deps: deps}
}

// HandleGetMedals handles GET /medals with optional sort and dir query
// parameters. Sorting happens on a copy so concurrent readers always see
// the snapshot's canonical order.
func (h *MedalHandler) HandleGetMedals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}

	rows := make([]model.MedalRow, len(snap.Medals))
	copy(rows, snap.Medals)

	key := r.URL.Query().Get("sort")
	if key == "" {
		key = "gold"
	}
	asc := r.URL.Query().Get("dir") == "asc"
	stats.SortMedals(rows, key, asc)
	writeJSON(w, http.StatusOK, rows)
}
