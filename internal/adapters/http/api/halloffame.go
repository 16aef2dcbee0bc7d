package api

import "net/http"

// HallOfFameHandler serves the derived top-10 lists.
type HallOfFameHandler struct {
	deps Dependencies
}

// NewHallOfFameHandler creates a new hall-of-fame handler.
func NewHallOfFameHandler(deps Dependencies) *HallOfFameHandler {
	return &HallOfFameHandler{deps: deps}
}

// HandleGetHallOfFame handles GET /halloffame.
func (h *HallOfFameHandler) HandleGetHallOfFame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.HallOfFame)
}
