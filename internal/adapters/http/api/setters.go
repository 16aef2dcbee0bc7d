package api

import "net/http"

// SetterHandler serves setter records with their computed impact.
type SetterHandler struct {
	deps Dependencies
}

// NewSetterHandler creates a new setter handler.
func NewSetterHandler(deps Dependencies) *SetterHandler {
	return &SetterHandler{deps: deps}
}

// setterResponse bundles setter records with the course join table.
type setterResponse struct {
	Setters any `json:"setters"`
	Links   any `json:"links"`
}

// HandleGetSetters handles GET /setters.
func (h *SetterHandler) HandleGetSetters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, setterResponse{Setters: snap.Setters, Links: snap.SetterLinks})
}
