// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ryanmford/apexspeedrun/internal/adapters/fetch"
	"github.com/ryanmford/apexspeedrun/internal/adapters/repository"
	"github.com/ryanmford/apexspeedrun/internal/config"
	"github.com/ryanmford/apexspeedrun/internal/domain/aggregate"
	"github.com/ryanmford/apexspeedrun/internal/domain/ingest"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/stats"
	"github.com/ryanmford/apexspeedrun/pkg/logger"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

// Sheet names used across fetching and health reporting.
const (
	SheetMenRankings   = "men_rankings"
	SheetWomenRankings = "women_rankings"
	SheetCourses       = "courses"
	SheetSetters       = "setters"
	SheetLiveFeed      = "live_feed"
	SheetExtraFeed     = "extra_feed"
)

// primarySheets are the tables the dashboard cannot function without.
var primarySheets = []string{SheetMenRankings, SheetWomenRankings, SheetLiveFeed}

// Service runs the fetch-and-aggregate pipeline and exposes snapshot reads.
type Service struct {
	mu sync.RWMutex

	cfg     *config.Config
	fetcher *fetch.Fetcher
	store   repository.Store

	started bool
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the service configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithFetcher sets a custom sheet fetcher.
func WithFetcher(f *fetch.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithStore sets a custom snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:   config.New(),
		store: repository.NewSnapshotStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service and performs the initial load. A load that
// produces a failed snapshot does not abort startup; the snapshot carries
// the failure state and a manual reload is the recovery path.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	if s.fetcher == nil {
		s.fetcher = fetch.New(
			fetch.WithTimeout(time.Duration(s.cfg.FetchTimeoutMS)*time.Millisecond),
			fetch.WithLogger(s.log),
		)
	}

	s.log.Info(ctx, "starting dashboard service...")

	snap, err := s.reload(ctx)
	if err != nil {
		return err
	}

	s.started = true
	s.log.Info(ctx, "dashboard service started",
		logger.String("state", string(snap.Health.State)),
		logger.Int("athletes", len(snap.Athletes)),
		logger.Int("courses", len(snap.Courses)),
	)
	return nil
}

// Stop marks the service stopped. The pipeline holds no background
// resources; in-flight fetches are cancelled through their context.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.log.Info(context.Background(), "dashboard service stopped")
}

// Reload re-runs the full pipeline once and publishes the result.
func (s *Service) Reload(ctx context.Context) (*model.Snapshot, error) {
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) (*model.Snapshot, error) {
	start := time.Now()

	texts := s.fetcher.FetchAll(ctx, s.sheets())
	snap := s.buildSnapshot(texts)

	if err := s.store.Swap(ctx, snap); err != nil {
		return nil, err
	}

	durationMs := float64(time.Since(start).Milliseconds())
	metrics.RecordAggregation(durationMs)
	s.log.Info(ctx, "snapshot published",
		logger.String("id", snap.ID),
		logger.String("state", string(snap.Health.State)),
		logger.Float64("durationMs", durationMs),
	)
	return snap, nil
}

func (s *Service) sheets() []fetch.Sheet {
	sheets := []fetch.Sheet{
		{Name: SheetMenRankings, URL: s.cfg.MenRankingsURL},
		{Name: SheetWomenRankings, URL: s.cfg.WomenRankingsURL},
		{Name: SheetCourses, URL: s.cfg.CoursesURL},
		{Name: SheetSetters, URL: s.cfg.SettersURL},
		{Name: SheetLiveFeed, URL: s.cfg.LiveFeedURL},
	}
	if s.cfg.ExtraFeedURL != "" {
		sheets = append(sheets, fetch.Sheet{Name: SheetExtraFeed, URL: s.cfg.ExtraFeedURL})
	}
	return sheets
}

// buildSnapshot runs the synchronous single-pass aggregation over fetched
// sheet text. It is pure: identical input text yields identical derived
// structures.
func (s *Service) buildSnapshot(texts map[string]string) *model.Snapshot {
	men := ingest.Rankings(texts[SheetMenRankings], model.Men, "rankings_men")
	women := ingest.Rankings(texts[SheetWomenRankings], model.Women, "rankings_women")
	courses := ingest.Courses(texts[SheetCourses], s.cfg.CurrentSeasonMarker)
	setters := ingest.Setters(texts[SheetSetters])

	feed := texts[SheetLiveFeed]
	if extra := texts[SheetExtraFeed]; strings.TrimSpace(extra) != "" {
		feed = feed + "\n" + extra
	}

	agg := aggregate.LiveFeed(feed, append(men, women...), courses, aggregate.Rules{
		SeasonTag: s.cfg.SeasonTag,
		Cutoff:    s.cfg.CutoffDate(),
	})

	courseList := stats.CourseList(agg.AllTime, courses, agg.Athletes)
	rollups := stats.BuildRollups(courseList)
	setters = stats.Impact(setters, courseList)
	links := ingest.SetterLinks(setters, courses)

	hallCfg := stats.HallConfig{
		QualifyingRunsMen:   s.cfg.QualifyingRunsMen,
		QualifyingRunsWomen: s.cfg.QualifyingRunsWomen,
		FireBandsMen:        s.cfg.FireBandsMen,
		FireBandsWomen:      s.cfg.FireBandsWomen,
	}

	return &model.Snapshot{
		BuiltAt:     time.Now().UTC(),
		Athletes:    agg.Athletes,
		Courses:     courses,
		Setters:     setters,
		SetterLinks: links,
		AllTime:     agg.AllTime,
		Open:        agg.Open,
		OpenRanking: agg.OpenRanking,
		SeasonRuns:  agg.SeasonRuns,
		Rollups:     rollups,
		HallOfFame:  stats.BuildHallOfFame(agg.Athletes, agg.AllTime, setters, rollups, hallCfg),
		Medals:      stats.BuildMedals(agg.AllTime.Boards, agg.Athletes),
		Health:      health(texts),
		Collisions:  agg.Collisions,
	}
}

// health classifies the run per the failure taxonomy: all primary sheets
// empty is a hard failure, some empty a non-fatal warning.
func health(texts map[string]string) model.Health {
	var empty []string
	for _, name := range primarySheets {
		if strings.TrimSpace(texts[name]) == "" {
			empty = append(empty, name)
		}
	}
	switch len(empty) {
	case 0:
		return model.Health{State: model.StateOK}
	case len(primarySheets):
		return model.Health{State: model.StateFailed, EmptySheets: empty}
	default:
		return model.Health{State: model.StatePartial, EmptySheets: empty}
	}
}

// Current returns the latest published snapshot.
func (s *Service) Current(ctx context.Context) (*model.Snapshot, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// CourseSummaries recomputes the derived course list for a horizon.
func (s *Service) CourseSummaries(ctx context.Context, open bool) ([]model.CourseSummary, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	h := snap.AllTime
	if open {
		h = snap.Open
	}
	return stats.CourseList(h, snap.Courses, snap.Athletes), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":       s.started,
		"snapshotCount": s.store.Count(ctx),
	}
	if snap, err := s.store.Current(ctx); err == nil {
		out["snapshotID"] = snap.ID
		out["builtAt"] = snap.BuiltAt
		out["state"] = string(snap.Health.State)
		out["athletes"] = len(snap.Athletes)
		out["courses"] = len(snap.Courses)
		out["setters"] = len(snap.Setters)
		out["leaderboards"] = snap.AllTime.BoardCount()
		out["keyCollisions"] = len(snap.Collisions)
	}
	return out
}
