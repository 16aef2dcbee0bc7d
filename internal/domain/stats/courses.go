// Package stats derives rollups, the hall of fame, and the medal table
// from leaderboards and the course registry.
package stats

import (
	"sort"

	"github.com/samber/lo"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

// unknownLocation fills registry fields for courses that appear on a
// leaderboard without a registry row.
const unknownLocation = "UNKNOWN"

// CourseList merges registry metadata with leaderboard-derived fields for
// every course appearing in either gender's board of the given horizon.
// Recomputed per request; never persisted.
func CourseList(h model.Horizon, registry map[string]model.CourseRecord, athletes map[string]model.AthleteRecord) []model.CourseSummary {
	names := make(map[string]bool)
	for _, byCourse := range h.Boards {
		for course := range byCourse {
			names[course] = true
		}
	}

	out := make([]model.CourseSummary, 0, len(names))
	for course := range names {
		rec, ok := registry[course]
		if !ok {
			rec = model.CourseRecord{
				Name:    course,
				City:    unknownLocation,
				Country: unknownLocation,
			}
		}

		men := boardEntries(h.Boards[model.Men][course], athletes)
		women := boardEntries(h.Boards[model.Women][course], athletes)

		summary := model.CourseSummary{
			CourseRecord: rec,
			TopMen:       men,
			TopWomen:     women,
			Runs:         len(men) + len(women),
		}
		if len(men) > 0 {
			summary.RecordMen = men[0].Time
		}
		if len(women) > 0 {
			summary.RecordWomen = women[0].Time
		}

		keys := lo.Map(append(append([]model.BoardEntry{}, men...), women...),
			func(e model.BoardEntry, _ int) string { return e.Key })
		summary.Athletes = len(lo.Uniq(keys))

		out = append(out, summary)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// boardEntries flattens one course board into display rows sorted ascending
// by time, ranks assigned so equal times share a rank.
func boardEntries(board map[string]float64, athletes map[string]model.AthleteRecord) []model.BoardEntry {
	entries := make([]model.BoardEntry, 0, len(board))
	for key, t := range board {
		a := athletes[key]
		name := a.Name
		if name == "" {
			name = key
		}
		entries = append(entries, model.BoardEntry{Key: key, Name: name, Time: t, Region: a.Region})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Time != entries[j].Time {
			return entries[i].Time < entries[j].Time
		}
		return entries[i].Key < entries[j].Key
	})
	for i := range entries {
		rank := 1
		for _, other := range entries {
			if other.Time < entries[i].Time {
				rank++
			}
		}
		entries[i].Rank = rank
	}
	return entries
}
