package sheetgen

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ryanmford/apexspeedrun/pkg/logger"
)

// Ratio of feed rows that get deliberately dirtied, and of qualifying rows
// tagged into the open season.
const (
	dirtyRowRatio  = 0.05
	openSeasonRate = 0.4
)

// Dataset holds the six generated sheet texts keyed the way the dashboard
// fetches them.
type Dataset struct {
	MenRankings   string
	WomenRankings string
	Courses       string
	Setters       string
	LiveFeed      string
	ExtraFeed     string
}

// Sheets returns the dataset as a name-to-text map matching the dashboard's
// sheet names.
func (d *Dataset) Sheets() map[string]string {
	return map[string]string{
		"men_rankings":   d.MenRankings,
		"women_rankings": d.WomenRankings,
		"courses":        d.Courses,
		"setters":        d.Setters,
		"live_feed":      d.LiveFeed,
		"extra_feed":     d.ExtraFeed,
	}
}

type athlete struct {
	Name    string
	Country string
	Flag    string
	Women   bool
}

type course struct {
	Name     string
	Loc      location
	Date     string
	Lead     string
	Assist   string
	BaseTime float64
}

// Generate builds a full synthetic dataset. Identical seeds yield identical
// sheets.
func Generate(ctx context.Context, cfg *Config, stats *Stats) (*Dataset, error) {
	if cfg.Athletes <= 0 || cfg.Courses <= 0 || cfg.Runs <= 0 {
		return nil, fmt.Errorf("athletes, courses and runs must be positive")
	}

	r := rand.New(rand.NewSource(cfg.Seed))

	men := makeAthletes(r, firstNamesMen, cfg.Athletes, false)
	women := makeAthletes(r, firstNamesWomen, cfg.Athletes, true)
	courses := makeCourses(r, cfg)
	ds := &Dataset{
		MenRankings:   renderRankings(men),
		WomenRankings: renderRankings(women),
		Courses:       renderCourses(courses),
		Setters:       renderSetters(),
	}

	feed, extra := renderFeeds(r, cfg, stats, append(men, women...), courses)
	ds.LiveFeed = feed
	ds.ExtraFeed = extra

	stats.AthletesGenerated = len(men) + len(women)
	stats.CoursesGenerated = len(courses)
	stats.SettersGenerated = len(setterNames)

	logger.Get().Info(ctx, "dataset generated",
		logger.Int("athletes", stats.AthletesGenerated),
		logger.Int("courses", stats.CoursesGenerated),
		logger.Int("runs", stats.RunsGenerated),
		logger.Int("dirtyRows", stats.DirtyRows),
		logger.Int("openSeasonRows", stats.OpenSeasonRows))
	return ds, nil
}

func makeAthletes(r *rand.Rand, firsts []string, n int, women bool) []athlete {
	out := make([]athlete, 0, n)
	for i := 0; i < n; i++ {
		name := firsts[r.Intn(len(firsts))] + " " + lastNames[r.Intn(len(lastNames))] + " " + strconv.Itoa(i)
		if r.Float64() < 0.1 {
			dual := dualCountries[r.Intn(len(dualCountries))]
			out = append(out, athlete{Name: name, Country: dual.Raw, Flag: dual.Flag, Women: women})
			continue
		}
		loc := locations[r.Intn(len(locations))]
		out = append(out, athlete{Name: name, Country: loc.Country, Flag: loc.Flag, Women: women})
	}
	return out
}

func makeCourses(r *rand.Rand, cfg *Config) []course {
	out := make([]course, 0, cfg.Courses)
	used := make(map[string]bool)
	for len(out) < cfg.Courses {
		name := courseAdjectives[r.Intn(len(courseAdjectives))] + " " + courseNouns[r.Intn(len(courseNouns))]
		if used[name] {
			name = name + " " + strconv.Itoa(len(out))
		}
		used[name] = true

		date := strconv.Itoa(2019+r.Intn(6)) + "-0" + strconv.Itoa(1+r.Intn(9)) + "-15"
		if r.Float64() < 0.3 && cfg.SeasonYear != "" {
			date = cfg.SeasonYear + "-0" + strconv.Itoa(1+r.Intn(9)) + "-15"
		}

		assist := ""
		if r.Float64() < 0.5 {
			assist = setterNames[r.Intn(len(setterNames))]
		}
		out = append(out, course{
			Name:     name,
			Loc:      locations[r.Intn(len(locations))],
			Date:     date,
			Lead:     setterNames[r.Intn(len(setterNames))],
			Assist:   assist,
			BaseTime: 20 + r.Float64()*70,
		})
	}
	return out
}

func renderRankings(athletes []athlete) string {
	var b strings.Builder
	b.WriteString("Rank,Name,Country,Flag,Rating,Points,Runs,Wins,Sets,Contribution,Fire\n")
	for i, a := range athletes {
		fmt.Fprintf(&b, "%d,\"%s\",\"%s\",%s,%.1f,%.1f,%d,%d,%d,%.1f,%d\n",
			i+1, a.Name, a.Country, a.Flag,
			95.0-float64(i)*0.7, 400.0-float64(i)*3,
			10+i%7, 3-i%4+1, i%3, 50.0-float64(i), i%5)
	}
	return b.String()
}

func renderCourses(courses []course) string {
	var b strings.Builder
	b.WriteString("Course,City,State,Country,Flag,Difficulty,Length,Elevation,Type,Date Set,Lead Setter,Assistant Setter,Video,Coordinates\n")
	for i, c := range courses {
		fmt.Fprintf(&b, "\"%s\",\"%s\",\"%s\",\"%s\",%s,%s,%dm,%d,%s,%s,\"%s\",\"%s\",https://video.example/%d,\"%.4f, %.4f\"\n",
			c.Name, c.Loc.City, c.Loc.State, c.Loc.Country, c.Loc.Flag,
			difficulties[i%len(difficulties)], 120+i*10, 800+i*25,
			courseTypes[i%len(courseTypes)], c.Date, c.Lead, c.Assist,
			i, 40.0+float64(i)*0.3, -105.0+float64(i)*0.2)
	}
	return b.String()
}

func renderSetters() string {
	var b strings.Builder
	b.WriteString("Setter,Country,Flag,Sets,Leads,Assists\n")
	for i, name := range setterNames {
		loc := locations[i%len(locations)]
		fmt.Fprintf(&b, "\"%s\",\"%s\",%s,%d,%d,%d\n",
			name, loc.Country, loc.Flag, 4+i, 3+i%4, 1+i%3)
	}
	return b.String()
}

// renderFeeds builds the live feed plus a small extra feed. Roughly one row
// in twenty is dirtied with a placeholder result or a blank name, matching
// the kind of noise the real export carries.
func renderFeeds(r *rand.Rand, cfg *Config, stats *Stats, athletes []athlete, courses []course) (string, string) {
	header := "Athlete,Course,PB,Division,Date,Video,Event Tag\n"
	var feed, extra strings.Builder
	feed.WriteString(header)
	extra.WriteString(header)

	for i := 0; i < cfg.Runs; i++ {
		a := athletes[r.Intn(len(athletes))]
		c := courses[r.Intn(len(courses))]
		result := strconv.FormatFloat(c.BaseTime*(0.9+r.Float64()*0.4), 'f', 2, 64)
		division := "M"
		if a.Women {
			division = "F"
		}
		tag := ""
		date := ""
		if r.Float64() < openSeasonRate {
			tag = cfg.SeasonTag
			date = cfg.SeasonYear + "-0" + strconv.Itoa(2+r.Intn(7)) + "-10"
			stats.OpenSeasonRows++
		}
		video := ""
		if r.Float64() < 0.3 {
			video = "https://video.example/run/" + strconv.Itoa(i)
		}

		name := a.Name
		if r.Float64() < dirtyRowRatio {
			stats.DirtyRows++
			switch r.Intn(3) {
			case 0:
				result = "#"
			case 1:
				name = ""
			default:
				result = "N/A"
			}
		}

		line := fmt.Sprintf("\"%s\",\"%s\",%s,%s,%s,%s,\"%s\"\n",
			name, c.Name, result, division, date, video, tag)
		if i%10 == 9 {
			extra.WriteString(line)
		} else {
			feed.WriteString(line)
		}
		stats.RunsGenerated++
	}
	return feed.String(), extra.String()
}
