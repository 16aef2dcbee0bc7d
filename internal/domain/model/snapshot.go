package model

import "time"

// PipelineState classifies the outcome of one aggregation run.
type PipelineState string

// Pipeline states per the failure taxonomy: every primary sheet loaded,
// some loaded, or none loaded.
const (
	StateOK      PipelineState = "ok"
	StatePartial PipelineState = "partial"
	StateFailed  PipelineState = "failed"
)

// Health carries the pipeline state and which sheets came back empty.
type Health struct {
	State       PipelineState `json:"state"`
	EmptySheets []string      `json:"empty_sheets,omitempty"`
}

// Snapshot is the immutable output of one full aggregation run. It is never
// mutated after publication; a reload builds and swaps in a fresh one.
type Snapshot struct {
	ID      string    `json:"id"`
	BuiltAt time.Time `json:"built_at"`

	Athletes map[string]AthleteRecord `json:"athletes"` // by key
	Courses  map[string]CourseRecord  `json:"courses"`  // by uppercased name
	Setters  []SetterRecord           `json:"setters"`

	SetterLinks []SetterLink `json:"setter_links"`

	AllTime Horizon `json:"all_time"`
	Open    Horizon `json:"open"`

	OpenRanking []RankingRow `json:"open_ranking"`

	// SeasonRuns counts, per athlete key, open-season runs on courses the
	// registry flags as current-season. Despite the sheet's "sets" label
	// this counts runs, not course-setting credit.
	SeasonRuns map[string]int `json:"season_runs"`

	Rollups    Rollups      `json:"rollups"`
	HallOfFame HallOfFame   `json:"hall_of_fame"`
	Medals     []MedalRow   `json:"medals"`
	Health     Health       `json:"health"`
	Collisions []KeyCollision `json:"key_collisions,omitempty"`
}

// BoardCount returns the number of per-gender course boards in a horizon.
func (h Horizon) BoardCount() int {
	n := 0
	for _, byCourse := range h.Boards {
		n += len(byCourse)
	}
	return n
}
