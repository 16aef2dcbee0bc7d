// Package aggregate builds leaderboards and derived rankings from the raw
// live results feed. This is the core of the pipeline: it joins feed rows
// to athlete metadata and the course registry, maintains best-time maps for
// two horizons, and derives the open-season ranking list.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/ryanmford/apexspeedrun/internal/domain/identity"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/sanitize"
	"github.com/ryanmford/apexspeedrun/internal/domain/schema"
	"github.com/ryanmford/apexspeedrun/internal/domain/textparse"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

const headerScanWindow = 10

// Rules carries the season configuration consumed by the aggregator.
// These encode one-time competitive rules, not laws of the domain.
type Rules struct {
	// SeasonTag marks rows that belong to the open season, matched
	// case-insensitively against the event-tag column.
	SeasonTag string

	// Cutoff is the open-season start date. A tagged row with no date is
	// accepted; a dated row must fall on or after the cutoff.
	Cutoff time.Time
}

// Result is the aggregator's complete output. Athletes is a merged copy of
// the input metadata, never the input itself; the aggregation has no
// side effects on its arguments.
type Result struct {
	Athletes    map[string]model.AthleteRecord
	AllTime     model.Horizon
	Open        model.Horizon
	OpenRanking []model.RankingRow
	SeasonRuns  map[string]int
	Collisions  []model.KeyCollision
}

var feedHeaderKeywords = []string{"athlete", "name", "course", "track", "pb", "result"}

// The video and tag columns carry unreliable headers in the live export.
var feedColumns = []schema.Column{
	schema.Col("name", "athlete", "name"),
	schema.Col("course", "course", "track"),
	schema.Col("result", "pb", "result", "time"),
	schema.Col("gender", "gender", "division", "category"),
	schema.Col("date", "date"),
	schema.ColAt("video", 5, "video", "proof", "link"),
	schema.ColAt("tag", 6, "tag", "event", "season"),
}

// LiveFeed runs the single-pass aggregation over the raw results table.
// Metadata is taken as an immutable snapshot from the ranking processors;
// athletes discovered only in the feed are provisioned into the merged
// output map. A table with no recognizable header yields empty aggregates.
func LiveFeed(text string, meta []model.AthleteRecord, courses map[string]model.CourseRecord, rules Rules) Result {
	res := Result{
		Athletes:   make(map[string]model.AthleteRecord, len(meta)),
		AllTime:    model.NewHorizon(),
		Open:       model.NewHorizon(),
		SeasonRuns: make(map[string]int),
	}
	// rawNames tracks distinct source spellings per join key so collisions
	// can be reported instead of merging silently. The rankings metadata
	// seeds it: two table rows collapsing to one key are a collision too,
	// not only feed spellings.
	rawNames := make(map[string][]string)
	for _, a := range meta {
		res.Athletes[a.Key] = a
		if !containsString(rawNames[a.Key], a.Name) {
			rawNames[a.Key] = append(rawNames[a.Key], a.Name)
		}
	}

	rows := textparse.Rows(text)
	headerIdx := textparse.FindHeader(rows, feedHeaderKeywords, headerScanWindow)
	if headerIdx < 0 {
		if len(rows) > 0 {
			metrics.RecordHeaderNotFound("live_feed")
		}
		res.Collisions = collectCollisions(rawNames)
		return res
	}

	cols := schema.Resolve(textparse.SplitLine(rows[headerIdx]), feedColumns)
	seasonTag := strings.ToLower(rules.SeasonTag)

	parsed, dropped := 0, 0
	for i := headerIdx + 1; i < len(rows); i++ {
		fields := textparse.SplitLine(rows[i])

		name := strings.TrimSpace(schema.Field(fields, cols, "name"))
		course := strings.ToUpper(strings.TrimSpace(schema.Field(fields, cols, "course")))
		value, ok := sanitize.Number(schema.Field(fields, cols, "result"))
		if name == "" || course == "" || !ok {
			dropped++
			continue
		}
		parsed++

		key := identity.Key(name)
		if !containsString(rawNames[key], name) {
			rawNames[key] = append(rawNames[key], name)
		}

		athlete, known := res.Athletes[key]
		if !known {
			// Live-feed-only participant: provision a minimal profile.
			// Gender defaults from the division column and may be wrong
			// until corrected upstream.
			athlete = model.AthleteRecord{
				Name:   name,
				Key:    key,
				Gender: genderFromDivision(schema.Field(fields, cols, "gender")),
			}
			res.Athletes[key] = athlete
		}

		raw := strings.TrimSpace(schema.Field(fields, cols, "result"))
		video := strings.TrimSpace(schema.Field(fields, cols, "video"))

		updateHorizon(&res.AllTime, athlete.Gender, key, course, raw, value, video)

		tag := strings.ToLower(schema.Field(fields, cols, "tag"))
		date := strings.TrimSpace(schema.Field(fields, cols, "date"))
		if seasonTag != "" && strings.Contains(tag, seasonTag) && dateQualifies(date, rules.Cutoff) {
			updateHorizon(&res.Open, athlete.Gender, key, course, raw, value, video)
			if c, found := courses[course]; found && c.IsCurrentSeason {
				res.SeasonRuns[key]++
			}
		}
	}

	metrics.RecordRowsParsed("live_feed", parsed)
	metrics.RecordRowsDropped("live_feed", dropped)

	res.Collisions = collectCollisions(rawNames)
	buildPerformances(&res.AllTime, res.Athletes)
	buildPerformances(&res.Open, res.Athletes)
	res.OpenRanking = buildOpenRanking(&res)
	return res
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// genderFromDivision infers gender from a division cell: a leading "F"
// means the women's division, anything else the men's.
func genderFromDivision(div string) model.Gender {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(div)), "F") {
		return model.Women
	}
	return model.Men
}

var dateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006", "2 Jan 2006"}

// dateQualifies reports whether a row belongs to the open season: rows with
// no parseable date pass, dated rows must fall on or after the cutoff.
func dateQualifies(raw string, cutoff time.Time) bool {
	if raw == "" {
		return true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return !t.Before(cutoff)
		}
	}
	return true
}

// updateHorizon applies one qualifying run to a horizon, keeping the row
// only when it is the first or a strictly lower time for the pair. Ties
// keep the first-seen mark.
func updateHorizon(h *model.Horizon, gender model.Gender, key, course, raw string, value float64, video string) {
	byCourse, ok := h.Best[key]
	if !ok {
		byCourse = make(map[string]model.BestMark)
		h.Best[key] = byCourse
	}
	if prev, exists := byCourse[course]; !exists || value < prev.NumericValue {
		byCourse[course] = model.BestMark{RawValue: raw, NumericValue: value, VideoURL: video}
	}

	board, ok := h.Boards[gender][course]
	if !ok {
		board = make(map[string]float64)
		h.Boards[gender][course] = board
	}
	if prev, exists := board[key]; !exists || value < prev {
		board[key] = value
	}
}

func collectCollisions(rawNames map[string][]string) []model.KeyCollision {
	var out []model.KeyCollision
	for key, names := range rawNames {
		if len(names) > 1 {
			sort.Strings(names)
			out = append(out, model.KeyCollision{Key: key, Names: names})
			metrics.RecordKeyCollision()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Rank returns the 1-based position of key on a board sorted ascending by
// time: one plus the count of athletes with a strictly lower time. Zero
// when the key is absent.
func Rank(board map[string]float64, key string) int {
	mine, ok := board[key]
	if !ok {
		return 0
	}
	rank := 1
	for k, v := range board {
		if k != key && v < mine {
			rank++
		}
	}
	return rank
}

// recordTime returns the board's own best time; points are normalized
// against it so the record holder scores exactly 100.
func recordTime(board map[string]float64) float64 {
	best := 0.0
	first := true
	for _, v := range board {
		if first || v < best {
			best = v
			first = false
		}
	}
	return best
}

// buildPerformances derives per-athlete performance lists from a horizon's
// best-time map, sorted alphabetically by course label.
func buildPerformances(h *model.Horizon, athletes map[string]model.AthleteRecord) {
	for key, byCourse := range h.Best {
		gender := athletes[key].Gender
		entries := make([]model.PerformanceEntry, 0, len(byCourse))
		for course, mark := range byCourse {
			board := h.Boards[gender][course]
			points := 0.0
			if record := recordTime(board); record > 0 && mark.NumericValue > 0 {
				points = record / mark.NumericValue * 100
			}
			entries = append(entries, model.PerformanceEntry{
				CourseLabel:  course,
				RawValue:     mark.RawValue,
				NumericValue: mark.NumericValue,
				Rank:         Rank(board, key),
				Points:       points,
				VideoURL:     mark.VideoURL,
			})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].CourseLabel < entries[j].CourseLabel })
		h.Performances[key] = entries
	}
}

// buildOpenRanking derives the open-season ranking list from the open
// horizon's performance lists, sorted by rating descending.
func buildOpenRanking(res *Result) []model.RankingRow {
	var out []model.RankingRow
	for key, perfs := range res.Open.Performances {
		if len(perfs) == 0 {
			continue
		}
		var sum float64
		wins := 0
		for _, p := range perfs {
			sum += p.Points
			if p.Rank == 1 {
				wins++
			}
		}
		a := res.Athletes[key]
		out = append(out, model.RankingRow{
			Key:         key,
			Name:        a.Name,
			Gender:      a.Gender,
			CountryName: a.CountryName,
			Region:      a.Region,
			Rating:      sum / float64(len(perfs)),
			Runs:        len(perfs),
			Wins:        wins,
			Points:      sum,
			Sets:        res.SeasonRuns[key],
			AllTimeRank: a.AllTimeRank,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Key < out[j].Key
	})
	return out
}
