package model

// BoardEntry is one ranked row of a course leaderboard, for display.
type BoardEntry struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Time   float64 `json:"time"`
	Rank   int     `json:"rank"`
	Region string  `json:"region,omitempty"`
}

// CourseSummary merges registry metadata with leaderboard-derived fields.
// Recomputed per request; not a persisted entity.
type CourseSummary struct {
	CourseRecord

	TopMen      []BoardEntry `json:"top_men"`
	TopWomen    []BoardEntry `json:"top_women"`
	RecordMen   float64      `json:"record_men,omitempty"`
	RecordWomen float64      `json:"record_women,omitempty"`
	Athletes    int          `json:"athletes"`
	Runs        int          `json:"runs"`
}

// LocationRollup folds the derived course list into one row per location.
type LocationRollup struct {
	Name         string  `json:"name"`
	Flag         string  `json:"flag,omitempty"`
	Courses      int     `json:"courses"`
	Runs         int     `json:"runs"`
	AvgElevation float64 `json:"avg_elevation"`
	Athletes     int     `json:"athletes"`
	Cities       int     `json:"cities,omitempty"`
	Countries    int     `json:"countries,omitempty"`
}

// Rollups groups location rollups by level.
type Rollups struct {
	Cities     []LocationRollup `json:"cities"`
	Countries  []LocationRollup `json:"countries"`
	Continents []LocationRollup `json:"continents"`
}

// HallEntry is one row of a top-10 list.
type HallEntry struct {
	Key         string  `json:"key,omitempty"`
	Name        string  `json:"name"`
	CountryName string  `json:"country_name,omitempty"`
	Region      string  `json:"region,omitempty"`
	Value       float64 `json:"value"`
}

// HallOfFame holds the top-10 lists per metric for qualified athletes.
type HallOfFame struct {
	Rating       []HallEntry `json:"rating"`
	Runs         []HallEntry `json:"runs"`
	WinPct       []HallEntry `json:"win_pct"`
	Records      []HallEntry `json:"records"`
	Impact       []HallEntry `json:"impact"`
	Sets         []HallEntry `json:"sets"`
	Contribution []HallEntry `json:"contribution"`
	Fire         []HallEntry `json:"fire"`
	Cities       []HallEntry `json:"cities"`
	Countries    []HallEntry `json:"countries"`
}

// MedalRow is one country's podium credit across all course boards.
type MedalRow struct {
	Country string `json:"country"`
	Flag    string `json:"flag,omitempty"`
	Gold    int    `json:"gold"`
	Silver  int    `json:"silver"`
	Bronze  int    `json:"bronze"`
}
