package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

// LeaderboardHandler handles per-course leaderboard requests.
type LeaderboardHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetLeaderboard handles GET /leaderboard?course=&gender=&horizon=&limit=.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	course := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("course")))
	if course == "" {
		writeError(w, http.StatusBadRequest, "missing_course", ErrBadRequest)
		return
	}

	gender := model.Men
	if strings.HasPrefix(strings.ToUpper(r.URL.Query().Get("gender")), "F") {
		gender = model.Women
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

	horizon := snap.AllTime
	if open {
		horizon = snap.Open
	}

	board := horizon.Boards[gender][course]
	entries := make([]model.BoardEntry, 0, len(board))
	for key, t := range board {
		a := snap.Athletes[key]
		entries = append(entries, model.BoardEntry{Key: key, Name: a.Name, Time: t, Region: a.Region})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Time != entries[j].Time {
			return entries[i].Time < entries[j].Time
		}
		return entries[i].Key < entries[j].Key
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	writeJSON(w, http.StatusOK, entries)
}

// parseLimit reads limit with a default of maxLimit and a hard cap.
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return maxLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		return 0, ErrBadRequest
	}
	return n, nil
}
