package api

import (
	"net/http"
	"strings"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

// AthleteHandler serves athlete profiles with their performance lists.
type AthleteHandler struct {
	deps Dependencies
}

// NewAthleteHandler creates a new athlete handler.
func NewAthleteHandler(deps Dependencies) *AthleteHandler {
	return &AthleteHandler{deps: deps}
}

// athleteProfile is the response shape for GET /athletes/{key}.
type athleteProfile struct {
	model.AthleteRecord

	AllTime    []model.PerformanceEntry `json:"all_time"`
	Open       []model.PerformanceEntry `json:"open"`
	SeasonRuns int                      `json:"season_runs"`
}

// HandleGetAthlete handles GET /athletes/{key}.
func (h *AthleteHandler) HandleGetAthlete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/athletes/")
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusBadRequest, "bad_key", ErrBadRequest)
		return
	}

	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}

	athlete, found := snap.Athletes[key]
	if !found {
		writeError(w, http.StatusNotFound, "athlete_not_found", ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, athleteProfile{
		AthleteRecord: athlete,
		AllTime:       snap.AllTime.Performances[key],
		Open:          snap.Open.Performances[key],
		SeasonRuns:    snap.SeasonRuns[key],
	})
}
