// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ryanmford/apexspeedrun/internal/adapters/repository"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Current returns the latest published snapshot.
	Current(ctx context.Context) (*model.Snapshot, error)

	// Reload re-runs the full pipeline once and publishes the result.
	Reload(ctx context.Context) (*model.Snapshot, error)

	// CourseSummaries recomputes the derived course list for a horizon.
	CourseSummaries(ctx context.Context, open bool) ([]model.CourseSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	statusHandler      *StatusHandler
	statsHandler       *StatsHandler
	healthHandler      *HealthHandler
	leaderboardHandler *LeaderboardHandler
	rankingHandler     *RankingHandler
	athleteHandler     *AthleteHandler
	courseHandler      *CourseHandler
	setterHandler      *SetterHandler
	rollupHandler      *RollupHandler
	hallHandler        *HallOfFameHandler
	medalHandler       *MedalHandler
	reloadHandler      *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		statusHandler:      NewStatusHandler(deps),
		statsHandler:       NewStatsHandler(statsProvider),
		healthHandler:      NewHealthHandler(),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankingHandler:     NewRankingHandler(deps, maxLimit),
		athleteHandler:     NewAthleteHandler(deps),
		courseHandler:      NewCourseHandler(deps),
		setterHandler:      NewSetterHandler(deps),
		rollupHandler:      NewRollupHandler(deps),
		hallHandler:        NewHallOfFameHandler(deps),
		medalHandler:       NewMedalHandler(deps),
		reloadHandler:      NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/athletes/", MetricsMiddleware(s.athleteHandler.HandleGetAthlete, "athletes"))
	mux.HandleFunc("/courses", MetricsMiddleware(s.courseHandler.HandleListCourses, "courses"))
	mux.HandleFunc("/courses/", MetricsMiddleware(s.courseHandler.HandleGetCourse, "courses"))
	mux.HandleFunc("/setters", MetricsMiddleware(s.setterHandler.HandleGetSetters, "setters"))
	mux.HandleFunc("/rollups", MetricsMiddleware(s.rollupHandler.HandleGetRollups, "rollups"))
	mux.HandleFunc("/halloffame", MetricsMiddleware(s.hallHandler.HandleGetHallOfFame, "halloffame"))
	mux.HandleFunc("/medals", MetricsMiddleware(s.medalHandler.HandleGetMedals, "medals"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// currentOr503 loads the snapshot or answers 503 before the first publish.
func currentOr503(w http.ResponseWriter, r *http.Request, deps Dependencies) (*model.Snapshot, bool) {
	snap, err := deps.Current(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "no_snapshot", err)
		} else {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return nil, false
	}
	return snap, true
}

// parseHorizon maps the horizon query parameter to the open flag.
// Defaults to all-time.
func parseHorizon(r *http.Request) (open bool, err error) {
	switch r.URL.Query().Get("horizon") {
	case "", "alltime", "all-time", "all":
		return false, nil
	case "open":
		return true, nil
	}
	return false, ErrBadRequest
}
