package api

import "net/http"

// ReloadHandler triggers a full refetch and rebuild of the snapshot.
type ReloadHandler struct {
	deps Dependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /reload. It blocks until the rebuild finishes
// and reports the health of the resulting snapshot.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reload_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id": snap.ID,
		"built_at":    snap.BuiltAt,
		"health":      snap.Health,
	})
}
