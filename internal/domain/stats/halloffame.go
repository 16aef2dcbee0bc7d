package stats

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

const topListSize = 10

// HallConfig carries the scoring rules for hall-of-fame derivation. The
// asymmetric qualification thresholds reflect different expected sample
// sizes per gender; the band edges are a domain scoring table that must be
// preserved exactly.
type HallConfig struct {
	QualifyingRunsMen   int
	QualifyingRunsWomen int
	FireBandsMen        []float64
	FireBandsWomen      []float64
}

// DefaultHallConfig returns the standard competitive rules.
func DefaultHallConfig() HallConfig {
	return HallConfig{
		QualifyingRunsMen:   4,
		QualifyingRunsWomen: 2,
		FireBandsMen:        []float64{7, 8, 9},
		FireBandsWomen:      []float64{9, 10, 11},
	}
}

func (c HallConfig) threshold(g model.Gender) int {
	if g == model.Women {
		return c.QualifyingRunsWomen
	}
	return c.QualifyingRunsMen
}

func (c HallConfig) bands(g model.Gender) []float64 {
	if g == model.Women {
		return c.FireBandsWomen
	}
	return c.FireBandsMen
}

// Qualified partitions athlete keys by the gender-specific run-count
// threshold over the horizon's performance lists. Every athlete with at
// least one performance lands in exactly one of the two slices.
func Qualified(athletes map[string]model.AthleteRecord, h model.Horizon, cfg HallConfig) (qualified, unranked []string) {
	for key, perfs := range h.Performances {
		if len(perfs) == 0 {
			continue
		}
		if len(perfs) >= cfg.threshold(athletes[key].Gender) {
			qualified = append(qualified, key)
		} else {
			unranked = append(unranked, key)
		}
	}
	sort.Strings(qualified)
	sort.Strings(unranked)
	return qualified, unranked
}

// FireCount sums fire units across performances: a time under band edge i
// awards 3-i units, slower times none.
func FireCount(perfs []model.PerformanceEntry, bands []float64) int {
	total := 0
	for _, p := range perfs {
		for i, edge := range bands {
			if p.NumericValue < edge {
				total += len(bands) - i
				break
			}
		}
	}
	return total
}

// Impact fills each setter's impact: total run volume across courses whose
// combined setter string contains the setter's name case-insensitively.
// The linkage is deliberately loose; ambiguity is flagged at ingestion.
func Impact(setters []model.SetterRecord, courses []model.CourseSummary) []model.SetterRecord {
	out := make([]model.SetterRecord, len(setters))
	copy(out, setters)
	for i := range out {
		low := strings.ToLower(out[i].Name)
		if low == "" {
			continue
		}
		total := 0
		for _, c := range courses {
			if strings.Contains(strings.ToLower(c.Setter), low) {
				total += c.Runs
			}
		}
		out[i].Impact = total
	}
	return out
}

// BuildHallOfFame derives all top-10 lists from qualified athletes, setter
// impact, and the location rollups.
func BuildHallOfFame(athletes map[string]model.AthleteRecord, h model.Horizon, setters []model.SetterRecord, rollups model.Rollups, cfg HallConfig) model.HallOfFame {
	qualified, _ := Qualified(athletes, h, cfg)

	type derived struct {
		athlete model.AthleteRecord
		rating  float64
		runs    int
		wins    int
		winPct  float64
		fire    int
	}
	rows := lo.Map(qualified, func(key string, _ int) derived {
		a := athletes[key]
		perfs := h.Performances[key]
		var sum float64
		wins := 0
		for _, p := range perfs {
			sum += p.Points
			if p.Rank == 1 {
				wins++
			}
		}
		d := derived{
			athlete: a,
			runs:    len(perfs),
			wins:    wins,
			fire:    FireCount(perfs, cfg.bands(a.Gender)),
		}
		if d.runs > 0 {
			d.rating = sum / float64(d.runs)
			d.winPct = float64(wins) / float64(d.runs)
		}
		return d
	})

	entry := func(d derived, value float64) model.HallEntry {
		return model.HallEntry{
			Key:         d.athlete.Key,
			Name:        d.athlete.Name,
			CountryName: d.athlete.CountryName,
			Region:      d.athlete.Region,
			Value:       value,
		}
	}

	hof := model.HallOfFame{
		Rating: topAthletes(rows, func(d derived) float64 { return d.rating }, nil, entry),
		Runs:   topAthletes(rows, func(d derived) float64 { return float64(d.runs) }, nil, entry),
		// Win percentage ties break by run count.
		WinPct: topAthletes(rows, func(d derived) float64 { return d.winPct },
			func(d derived) float64 { return float64(d.runs) }, entry),
		Records:      topAthletes(rows, func(d derived) float64 { return float64(d.wins) }, nil, entry),
		Sets:         topAthletes(rows, func(d derived) float64 { return float64(d.athlete.Sets) }, nil, entry),
		Contribution: topAthletes(rows, func(d derived) float64 { return d.athlete.ContributionScore }, nil, entry),
		Fire:         topAthletes(rows, func(d derived) float64 { return float64(d.fire) }, nil, entry),
	}

	impactRows := lo.Map(setters, func(s model.SetterRecord, _ int) model.HallEntry {
		return model.HallEntry{Name: s.Name, CountryName: s.CountryName, Region: s.Region, Value: float64(s.Impact)}
	})
	hof.Impact = topEntries(impactRows)

	hof.Cities = topEntries(lo.Map(rollups.Cities, rollupEntry))
	hof.Countries = topEntries(lo.Map(rollups.Countries, rollupEntry))

	return hof
}

func rollupEntry(r model.LocationRollup, _ int) model.HallEntry {
	return model.HallEntry{Name: r.Name, Region: r.Flag, Value: float64(r.Courses)}
}

func topAthletes[T any](rows []T, value func(T) float64, tiebreak func(T) float64, entry func(T, float64) model.HallEntry) []model.HallEntry {
	sorted := make([]T, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := value(sorted[i]), value(sorted[j])
		if vi != vj {
			return vi > vj
		}
		if tiebreak != nil {
			return tiebreak(sorted[i]) > tiebreak(sorted[j])
		}
		return false
	})
	if len(sorted) > topListSize {
		sorted = sorted[:topListSize]
	}
	return lo.Map(sorted, func(r T, _ int) model.HallEntry { return entry(r, value(r)) })
}

func topEntries(entries []model.HallEntry) []model.HallEntry {
	sorted := make([]model.HallEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > topListSize {
		sorted = sorted[:topListSize]
	}
	return sorted
}
