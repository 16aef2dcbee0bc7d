package stats_test

import (
	"testing"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func horizonWith(boards map[model.Gender]map[string]map[string]float64) model.Horizon {
	h := model.NewHorizon()
	for g, byCourse := range boards {
		for course, board := range byCourse {
			h.Boards[g][course] = board
		}
	}
	return h
}

func TestCourseList(t *testing.T) {
	Convey("Given leaderboards and a course registry", t, func() {
		h := horizonWith(map[model.Gender]map[string]map[string]float64{
			model.Men: {
				"GRANITE SPIRE": {"bob": 48.0, "carl": 60.0},
			},
			model.Women: {
				"GRANITE SPIRE": {"alice": 55.2},
				"GHOST LEDGE":   {"alice": 70.0},
			},
		})
		registry := map[string]model.CourseRecord{
			"GRANITE SPIRE": {Name: "GRANITE SPIRE", City: "Boulder", Country: "USA", Elevation: "1650"},
		}
		athletes := map[string]model.AthleteRecord{
			"alice": {Name: "Alice Smith", Key: "alice"},
			"bob":   {Name: "Bob Jones", Key: "bob"},
			"carl":  {Name: "Carl Reed", Key: "carl"},
		}

		Convey("When building the course list", func() {
			out := stats.CourseList(h, registry, athletes)

			Convey("Then every boarded course appears, sorted by name", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].Name, ShouldEqual, "GHOST LEDGE")
				So(out[1].Name, ShouldEqual, "GRANITE SPIRE")
			})

			Convey("Then courses missing from the registry get placeholder metadata", func() {
				So(out[0].City, ShouldEqual, "UNKNOWN")
				So(out[0].Country, ShouldEqual, "UNKNOWN")
			})

			Convey("Then records and counts derive from the boards", func() {
				gs := out[1]
				So(gs.RecordMen, ShouldEqual, 48.0)
				So(gs.RecordWomen, ShouldEqual, 55.2)
				So(gs.Runs, ShouldEqual, 3)
				So(gs.Athletes, ShouldEqual, 3)
			})

			Convey("Then board entries come back sorted ascending by time", func() {
				gs := out[1]
				So(gs.TopMen[0].Name, ShouldEqual, "Bob Jones")
				So(gs.TopMen[0].Rank, ShouldEqual, 1)
				So(gs.TopMen[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When two athletes share a time", func() {
			tied := horizonWith(map[model.Gender]map[string]map[string]float64{
				model.Men: {"GRANITE SPIRE": {"a": 50.0, "b": 50.0, "c": 55.0}},
			})
			out := stats.CourseList(tied, registry, nil)

			Convey("Then they share the rank and the next rank skips", func() {
				men := out[0].TopMen
				So(men[0].Rank, ShouldEqual, 1)
				So(men[1].Rank, ShouldEqual, 1)
				So(men[2].Rank, ShouldEqual, 3)
			})
		})
	})
}

func TestBuildRollups(t *testing.T) {
	Convey("Given a derived course list", t, func() {
		courses := []model.CourseSummary{
			{
				CourseRecord: model.CourseRecord{Name: "A", City: "Boulder", Country: "USA", Elevation: "1600"},
				TopMen:       []model.BoardEntry{{Key: "bob"}},
				Runs:         2,
			},
			{
				CourseRecord: model.CourseRecord{Name: "B", City: "Boulder", Country: "USA", Elevation: "1700"},
				TopWomen:     []model.BoardEntry{{Key: "alice"}},
				Runs:         1,
			},
			{
				CourseRecord: model.CourseRecord{Name: "C", City: "Chamonix", Country: "France", Elevation: "junk"},
				TopMen:       []model.BoardEntry{{Key: "bob"}},
				Runs:         1,
			},
		}

		Convey("When folding into rollups", func() {
			out := stats.BuildRollups(courses)

			Convey("Then cities aggregate courses, runs, and distinct athletes", func() {
				So(out.Cities[0].Name, ShouldEqual, "Boulder")
				So(out.Cities[0].Courses, ShouldEqual, 2)
				So(out.Cities[0].Runs, ShouldEqual, 3)
				So(out.Cities[0].Athletes, ShouldEqual, 2)
			})

			Convey("Then average elevation covers parseable values only", func() {
				So(out.Cities[0].AvgElevation, ShouldEqual, 1650.0)
				So(out.Cities[1].AvgElevation, ShouldEqual, 0)
			})

			Convey("Then country rows carry geo counts", func() {
				So(out.Countries[0].Name, ShouldEqual, "USA")
				So(out.Countries[0].Cities, ShouldEqual, 1)
			})

			Convey("Then all seven continent buckets are always present", func() {
				So(out.Continents, ShouldHaveLength, 7)
				names := make(map[string]int)
				for _, c := range out.Continents {
					names[c.Name] = c.Courses
				}
				So(names["NORTH AMERICA"], ShouldEqual, 2)
				So(names["EUROPE"], ShouldEqual, 1)
				So(names["GLOBAL"], ShouldEqual, 0)
			})
		})
	})
}

func TestQualified(t *testing.T) {
	Convey("Given performance lists of varying depth", t, func() {
		athletes := map[string]model.AthleteRecord{
			"deepman":  {Key: "deepman", Gender: model.Men},
			"thinman":  {Key: "thinman", Gender: model.Men},
			"deepgirl": {Key: "deepgirl", Gender: model.Women},
			"thingirl": {Key: "thingirl", Gender: model.Women},
		}
		h := model.NewHorizon()
		h.Performances = map[string][]model.PerformanceEntry{
			"deepman":  make([]model.PerformanceEntry, 4),
			"thinman":  make([]model.PerformanceEntry, 3),
			"deepgirl": make([]model.PerformanceEntry, 2),
			"thingirl": make([]model.PerformanceEntry, 1),
			"ghost":    {},
		}

		Convey("When partitioning by the gender-specific thresholds", func() {
			qualified, unranked := stats.Qualified(athletes, h, stats.DefaultHallConfig())

			Convey("Then men need four distinct courses and women two", func() {
				So(qualified, ShouldResemble, []string{"deepgirl", "deepman"})
				So(unranked, ShouldResemble, []string{"thingirl", "thinman"})
			})
		})
	})
}

func TestFireCount(t *testing.T) {
	Convey("Given the men's fire bands", t, func() {
		bands := []float64{7, 8, 9}

		Convey("When counting fire units", func() {
			perfs := []model.PerformanceEntry{
				{NumericValue: 6.5},  // under 7 -> 3 units
				{NumericValue: 7.5},  // under 8 -> 2 units
				{NumericValue: 8.9},  // under 9 -> 1 unit
				{NumericValue: 9.0},  // not under any edge
				{NumericValue: 12.0}, // too slow
			}
			So(stats.FireCount(perfs, bands), ShouldEqual, 6)
		})

		Convey("When no performance beats any band", func() {
			So(stats.FireCount([]model.PerformanceEntry{{NumericValue: 20}}, bands), ShouldEqual, 0)
		})
	})
}

func TestImpact(t *testing.T) {
	Convey("Given setters and the course list", t, func() {
		setters := []model.SetterRecord{{Name: "Bram Oster"}, {Name: "Nobody"}}
		courses := []model.CourseSummary{
			{CourseRecord: model.CourseRecord{Setter: "Bram Oster, Celia Marchetti"}, Runs: 5},
			{CourseRecord: model.CourseRecord{Setter: "bram oster"}, Runs: 3},
			{CourseRecord: model.CourseRecord{Setter: "Celia Marchetti"}, Runs: 7},
		}

		Convey("When computing impact", func() {
			out := stats.Impact(setters, courses)

			Convey("Then impact sums run volume across matching courses", func() {
				So(out[0].Impact, ShouldEqual, 8)
				So(out[1].Impact, ShouldEqual, 0)
			})

			Convey("Then the input slice is left untouched", func() {
				So(setters[0].Impact, ShouldEqual, 0)
			})
		})
	})
}

func TestBuildHallOfFame(t *testing.T) {
	Convey("Given qualified athletes with derived results", t, func() {
		athletes := map[string]model.AthleteRecord{
			"alice": {Key: "alice", Name: "Alice", Gender: model.Women, Sets: 3, ContributionScore: 12},
			"belle": {Key: "belle", Name: "Belle", Gender: model.Women, Sets: 1, ContributionScore: 30},
		}
		h := model.NewHorizon()
		h.Performances = map[string][]model.PerformanceEntry{
			"alice": {
				{NumericValue: 8.0, Rank: 1, Points: 100},
				{NumericValue: 10.5, Rank: 2, Points: 80},
			},
			"belle": {
				{NumericValue: 9.5, Rank: 1, Points: 100},
				{NumericValue: 8.5, Rank: 1, Points: 100},
			},
		}

		Convey("When building the hall of fame", func() {
			hof := stats.BuildHallOfFame(athletes, h, nil, model.Rollups{}, stats.DefaultHallConfig())

			Convey("Then the rating list orders by mean points", func() {
				So(hof.Rating, ShouldHaveLength, 2)
				So(hof.Rating[0].Name, ShouldEqual, "Belle")
				So(hof.Rating[0].Value, ShouldEqual, 100.0)
			})

			Convey("Then fire uses the women's bands", func() {
				m := make(map[string]float64)
				for _, e := range hof.Fire {
					m[e.Name] = e.Value
				}
				// Alice: 8.0 under 9 -> 3, 10.5 under 11 -> 1. Belle: 9.5
				// under 10 -> 2, 8.5 under 9 -> 3.
				So(m["Alice"], ShouldEqual, 4)
				So(m["Belle"], ShouldEqual, 5)
			})

			Convey("Then win percentage ties break by run count", func() {
				So(hof.WinPct[0].Name, ShouldEqual, "Belle")
			})

			Convey("Then sets and contribution come from athlete metadata", func() {
				So(hof.Sets[0].Name, ShouldEqual, "Alice")
				So(hof.Contribution[0].Name, ShouldEqual, "Belle")
			})
		})
	})
}

func TestBuildMedals(t *testing.T) {
	Convey("Given boards with podium finishes", t, func() {
		athletes := map[string]model.AthleteRecord{
			"a": {Key: "a", CountryName: "USA", Region: "🇺🇸"},
			"b": {Key: "b", CountryName: "France / Japan", Region: "🇫🇷/🇯🇵"},
			"c": {Key: "c", CountryName: "Brazil", Region: "🇧🇷"},
			"d": {Key: "d", CountryName: "USA", Region: "🇺🇸"},
		}
		boards := model.Boards{
			model.Men: {
				"COURSE ONE": {"a": 48.0, "b": 50.0, "c": 52.0, "d": 60.0},
			},
			model.Women: {},
		}

		Convey("When building the medal table", func() {
			rows := stats.BuildMedals(boards, athletes)
			byCountry := make(map[string]model.MedalRow)
			for _, r := range rows {
				byCountry[r.Country] = r
			}

			Convey("Then only the podium earns medals", func() {
				So(byCountry["USA"].Gold, ShouldEqual, 1)
				So(byCountry["Brazil"].Bronze, ShouldEqual, 1)
				So(byCountry["USA"].Silver, ShouldEqual, 0)
			})

			Convey("Then every country of a multi-country athlete gets full credit", func() {
				So(byCountry["France"].Silver, ShouldEqual, 1)
				So(byCountry["Japan"].Silver, ShouldEqual, 1)
			})

			Convey("Then flags align with the country list by position", func() {
				So(byCountry["France"].Flag, ShouldEqual, "🇫🇷")
				So(byCountry["Japan"].Flag, ShouldEqual, "🇯🇵")
			})

			Convey("Then rows sort gold first by default", func() {
				So(rows[0].Country, ShouldEqual, "USA")
			})
		})
	})
}

func TestSortMedals(t *testing.T) {
	Convey("Given a medal table", t, func() {
		rows := []model.MedalRow{
			{Country: "USA", Gold: 2, Silver: 0, Bronze: 1},
			{Country: "France", Gold: 1, Silver: 3, Bronze: 0},
			{Country: "Brazil", Gold: 1, Silver: 1, Bronze: 4},
		}

		Convey("When sorting by total descending", func() {
			stats.SortMedals(rows, "total", false)
			So(rows[0].Country, ShouldEqual, "Brazil")
		})

		Convey("When sorting by silver ascending", func() {
			stats.SortMedals(rows, "silver", true)
			So(rows[0].Silver, ShouldEqual, 0)
		})

		Convey("When sorting by country", func() {
			stats.SortMedals(rows, "country", false)
			So(rows[0].Country, ShouldEqual, "Brazil")
			So(rows[2].Country, ShouldEqual, "USA")
		})

		Convey("When using the default key", func() {
			stats.SortMedals(rows, "", false)
			So(rows[0].Country, ShouldEqual, "USA")
			So(rows[1].Country, ShouldEqual, "France")
		})
	})
}
