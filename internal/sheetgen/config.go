// Package sheetgen generates synthetic sheet exports for exercising the
// dashboard pipeline end to end: realistic-looking rankings, course and
// setter tables, and a live feed with deliberate dirt mixed in.
package sheetgen

import "time"

// Config holds the generator configuration.
type Config struct {
	// Addr is the listen address when serving sheets over HTTP.
	Addr string

	// Athletes is the number of athletes per gender.
	Athletes int

	// Courses is the number of courses in the registry.
	Courses int

	// Runs is the number of live feed rows to generate.
	Runs int

	// Seed makes the output reproducible.
	Seed int64

	// SeasonTag is stamped on open-season feed rows.
	SeasonTag string

	// SeasonYear marks current-season course set dates.
	SeasonYear string

	// OutputDir, when set, writes the sheets as CSV files instead of
	// serving them.
	OutputDir string

	// ProbeURL, when set, checks a running dashboard after serving starts.
	ProbeURL string

	// Timeout bounds probe HTTP requests.
	Timeout time.Duration

	Verbose bool
}

// Stats collects generation counters for the final report.
type Stats struct {
	AthletesGenerated int
	CoursesGenerated  int
	SettersGenerated  int
	RunsGenerated     int
	DirtyRows         int
	OpenSeasonRows    int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
