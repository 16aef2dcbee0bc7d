// Package model contains domain models passed between layers.
package model

// Gender partitions leaderboards and scoring rules.
type Gender string

// Gender values as they appear in source division columns.
const (
	Men   Gender = "M"
	Women Gender = "F"
)

// AthleteRecord is one athlete's profile merged across source sheets.
type AthleteRecord struct {
	Name              string  `json:"name"`
	Key               string  `json:"key"`
	Gender            Gender  `json:"gender"`
	CountryName       string  `json:"country_name"`
	Region            string  `json:"region"` // flag glyph(s)
	Rating            float64 `json:"rating"`
	Runs              int     `json:"runs"`
	Wins              int     `json:"wins"`
	Points            float64 `json:"points"`
	Sets              int     `json:"sets"`
	ContributionScore float64 `json:"contribution_score"`
	FireCount         int     `json:"fire_count"`

	// AllTimeRank is the 1-based row position in the rankings sheet,
	// 0 for athletes provisioned from the live feed alone.
	AllTimeRank int `json:"all_time_rank"`
}

// CourseRecord holds registry metadata for one course. Exactly one record
// exists per distinct uppercased course name; later rows overwrite.
type CourseRecord struct {
	Name             string `json:"name"`
	City             string `json:"city"`
	StateOrProvince  string `json:"state_or_province"`
	Country          string `json:"country"`
	Flag             string `json:"flag"`
	Difficulty       string `json:"difficulty"`
	Length           string `json:"length"`
	Elevation        string `json:"elevation"`
	Type             string `json:"type"`
	DateSet          string `json:"date_set"`
	LeadSetters      string `json:"lead_setters"`
	AssistantSetters string `json:"assistant_setters"`
	Setter           string `json:"setter"` // combined lead + assistant string
	DemoVideoURL     string `json:"demo_video_url"`
	Coordinates      string `json:"coordinates"`
	IsCurrentSeason  bool   `json:"is_current_season"`
}

// SetterRecord credits a course setter.
type SetterRecord struct {
	Name         string `json:"name"`
	CountryName  string `json:"country_name"`
	Region       string `json:"region"`
	SetsCount    int    `json:"sets_count"`
	LeadsCount   int    `json:"leads_count"`
	AssistsCount int    `json:"assists_count"`

	// Impact is the total run volume across courses attributed to this
	// setter. Filled in by the stats builders once leaderboards exist.
	Impact int `json:"impact"`
}

// SetterLink joins a setter to a course. Fuzzy links were resolved by
// case-insensitive substring match rather than an exact split-name match;
// those are flagged instead of silently merged.
type SetterLink struct {
	Course string `json:"course"`
	Setter string `json:"setter"`
	Fuzzy  bool   `json:"fuzzy"`
}

// BestMark records an athlete's best time on one course.
type BestMark struct {
	RawValue     string  `json:"raw_value"`
	NumericValue float64 `json:"numeric_value"`
	VideoURL     string  `json:"video_url,omitempty"`
}

// PerformanceEntry is one athlete's standing on one course within a horizon.
type PerformanceEntry struct {
	CourseLabel  string  `json:"course_label"`
	RawValue     string  `json:"raw_value"`
	NumericValue float64 `json:"numeric_value"`
	Rank         int     `json:"rank"` // 1-based board position, 0 if unranked
	Points       float64 `json:"points"`
	VideoURL     string  `json:"video_url,omitempty"`
}

// Boards maps gender -> course name -> athlete key -> best (lowest) time.
type Boards map[Gender]map[string]map[string]float64

// Horizon is one complete time horizon: all-time or the open season.
type Horizon struct {
	// Best maps athlete key -> course name -> best mark.
	Best map[string]map[string]BestMark `json:"best"`

	Boards Boards `json:"boards"`

	// Performances maps athlete key -> entries sorted by course label.
	Performances map[string][]PerformanceEntry `json:"performances"`
}

// NewHorizon returns an empty horizon with both gender boards allocated.
func NewHorizon() Horizon {
	return Horizon{
		Best: make(map[string]map[string]BestMark),
		Boards: Boards{
			Men:   make(map[string]map[string]float64),
			Women: make(map[string]map[string]float64),
		},
		Performances: make(map[string][]PerformanceEntry),
	}
}

// RankingRow is one row of the derived open-season ranking list.
type RankingRow struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Gender      Gender  `json:"gender"`
	CountryName string  `json:"country_name"`
	Region      string  `json:"region"`
	Rating      float64 `json:"rating"`
	Runs        int     `json:"runs"`
	Wins        int     `json:"wins"`
	Points      float64 `json:"points"`
	Sets        int     `json:"sets"` // runs on current-season courses
	AllTimeRank int     `json:"all_time_rank"`
}

// KeyCollision reports distinct raw display names collapsing to one key.
type KeyCollision struct {
	Key   string   `json:"key"`
	Names []string `json:"names"`
}
