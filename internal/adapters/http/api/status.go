package api

import (
	"net/http"
	"strings"
)

// StatusHandler reports pipeline health and snapshot metadata.
type StatusHandler struct {
	deps Dependencies
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(deps Dependencies) *StatusHandler {
	return &StatusHandler{deps: deps}
}

type statusResponse struct {
	State         string            `json:"state"`
	SnapshotID    string            `json:"snapshot_id"`
	BuiltAt       string            `json:"built_at"`
	EmptySheets   []string          `json:"empty_sheets,omitempty"`
	Athletes      int               `json:"athletes"`
	Courses       int               `json:"courses"`
	Setters       int               `json:"setters"`
	AllTimeBoards int               `json:"alltime_boards"`
	OpenBoards    int               `json:"open_boards"`
	Collisions    map[string]string `json:"collisions,omitempty"`
}

// HandleStatus handles GET /status.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}

	resp := statusResponse{
		State:         string(snap.Health.State),
		SnapshotID:    snap.ID,
		BuiltAt:       snap.BuiltAt.UTC().Format("2006-01-02T15:04:05Z"),
		EmptySheets:   snap.Health.EmptySheets,
		Athletes:      len(snap.Athletes),
		Courses:       len(snap.Courses),
		Setters:       len(snap.Setters),
		AllTimeBoards: snap.AllTime.BoardCount(),
		OpenBoards:    snap.Open.BoardCount(),
	}
	if len(snap.Collisions) > 0 {
		resp.Collisions = make(map[string]string, len(snap.Collisions))
		for _, c := range snap.Collisions {
			resp.Collisions[c.Key] = strings.Join(c.Names, ", ")
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
