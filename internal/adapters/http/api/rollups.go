package api

import "net/http"

// RollupHandler serves location rollups.
type RollupHandler struct {
	deps Dependencies
}

// NewRollupHandler creates a new rollup handler.
func NewRollupHandler(deps Dependencies) *RollupHandler {
	return &RollupHandler{deps: deps}
}

// HandleGetRollups handles GET /rollups?level=city|country|continent.
// Without a level it returns all three.
func (h *RollupHandler) HandleGetRollups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}

	switch r.URL.Query().Get("level") {
	case "":
		writeJSON(w, http.StatusOK, snap.Rollups)
	case "city":
		writeJSON(w, http.StatusOK, snap.Rollups.Cities)
	case "country":
		writeJSON(w, http.StatusOK, snap.Rollups.Countries)
	case "continent":
		writeJSON(w, http.StatusOK, snap.Rollups.Continents)
	default:
		writeError(w, http.StatusBadRequest, "bad_level", ErrBadRequest)
	}
}
