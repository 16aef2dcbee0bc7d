// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Sheet export URLs. Each resolves to a published delimited-text export.
	MenRankingsURL   string `koanf:"men_rankings_url"`
	WomenRankingsURL string `koanf:"women_rankings_url"`
	CoursesURL       string `koanf:"courses_url"`
	SettersURL       string `koanf:"setters_url"`
	LiveFeedURL      string `koanf:"live_feed_url"`
	// ExtraFeedURL is an optional auxiliary results sheet merged into the
	// live feed before aggregation. Empty disables it.
	ExtraFeedURL string `koanf:"extra_feed_url"`

	// FetchTimeoutMS bounds each individual sheet fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// Season rules. These encode one-time competitive-season decisions,
	// not laws of the domain, so they must stay configurable.
	SeasonTag           string `koanf:"season_tag"`
	SeasonCutoff        string `koanf:"season_cutoff"` // YYYY-MM-DD
	CurrentSeasonMarker string `koanf:"current_season_marker"`

	// Fire-count band edges, fastest first. A time below edge i awards
	// 3-i fire units. Must be preserved exactly for hall-of-fame parity.
	FireBandsMen   []float64 `koanf:"fire_bands_men"`
	FireBandsWomen []float64 `koanf:"fire_bands_women"`

	// Hall-of-fame qualification thresholds (minimum run counts).
	QualifyingRunsMen   int `koanf:"qualifying_runs_men"`
	QualifyingRunsWomen int `koanf:"qualifying_runs_women"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		FetchTimeoutMS:      15_000,
		SeasonTag:           "ASR OPEN",
		SeasonCutoff:        "2026-01-01",
		CurrentSeasonMarker: "2026",
		FireBandsMen:        []float64{7, 8, 9},
		FireBandsWomen:      []float64{9, 10, 11},
		QualifyingRunsMen:   4,
		QualifyingRunsWomen: 2,
		MaxLeaderboardLimit: 100,
	}
}
