package api

import (
	"net/http"
	"sort"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

// RankingHandler serves the derived ranking lists.
type RankingHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies, maxLimit int) *RankingHandler {
	return &RankingHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetRanking handles GET /ranking?horizon=open|alltime&limit=.
// The open horizon returns the derived open-season ranking; all-time
// returns ranking-sheet athletes in sheet order.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	open, err := parseHorizon(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_horizon", err)
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_limit", err)
		return
	}

	snap, ok := currentOr503(w, r, h.deps)
	if !ok {
		return
	}

	if open {
		rows := snap.OpenRanking
		if len(rows) > limit {
			rows = rows[:limit]
		}
		writeJSON(w, http.StatusOK, rows)
		return
	}

	athletes := make([]model.AthleteRecord, 0, len(snap.Athletes))
	for _, a := range snap.Athletes {
		if a.AllTimeRank > 0 {
			athletes = append(athletes, a)
		}
	}
	sort.Slice(athletes, func(i, j int) bool {
		if athletes[i].Gender != athletes[j].Gender {
			return athletes[i].Gender < athletes[j].Gender
		}
		return athletes[i].AllTimeRank < athletes[j].AllTimeRank
	})
	if len(athletes) > limit {
		athletes = athletes[:limit]
	}
	writeJSON(w, http.StatusOK, athletes)
}
