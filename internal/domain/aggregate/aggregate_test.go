package aggregate_test

import (
	"testing"
	"time"

	"github.com/ryanmford/apexspeedrun/internal/domain/aggregate"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const feedHeader = "Athlete,Course,PB,Division,Date,Video,Event Tag\n"

func testRules() aggregate.Rules {
	return aggregate.Rules{
		SeasonTag: "ASR OPEN",
		Cutoff:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLiveFeedBestTimes(t *testing.T) {
	Convey("Given a live feed with repeated runs", t, func() {
		meta := []model.AthleteRecord{
			{Name: "Alice Smith", Key: "alicesmith", Gender: model.Women, AllTimeRank: 1},
			{Name: "Bob Jones", Key: "bobjones", Gender: model.Men, AllTimeRank: 2},
		}
		text := feedHeader +
			"\"Alice Smith\",\"Granite Spire\",60.0,F,,,\n" +
			"\"Alice Smith\",\"Granite Spire\",55.2,F,,https://v.example/2,\n" +
			"\"Alice Smith\",\"Granite Spire\",58.0,F,,,\n" +
			"\"Bob Jones\",\"Granite Spire\",48.0,M,,,\n"

		Convey("When aggregating", func() {
			res := aggregate.LiveFeed(text, meta, nil, testRules())

			Convey("Then only the strictly lowest time per pair survives", func() {
				mark := res.AllTime.Best["alicesmith"]["GRANITE SPIRE"]
				So(mark.NumericValue, ShouldEqual, 55.2)
				So(mark.VideoURL, ShouldEqual, "https://v.example/2")
			})

			Convey("Then boards are partitioned by gender", func() {
				So(res.AllTime.Boards[model.Women]["GRANITE SPIRE"]["alicesmith"], ShouldEqual, 55.2)
				So(res.AllTime.Boards[model.Men]["GRANITE SPIRE"]["bobjones"], ShouldEqual, 48.0)
				So(res.AllTime.Boards[model.Men]["GRANITE SPIRE"], ShouldNotContainKey, "alicesmith")
			})

			Convey("Then the input metadata is not mutated", func() {
				So(meta[0].Name, ShouldEqual, "Alice Smith")
				So(len(meta), ShouldEqual, 2)
			})
		})
	})
}

func TestLiveFeedRowValidation(t *testing.T) {
	Convey("Given a feed with malformed rows", t, func() {
		text := feedHeader +
			"\"Alice Smith\",\"Granite Spire\",55.2,F,,,\n" +
			",\"Granite Spire\",50.0,M,,,\n" +
			"\"Bob Jones\",,47.0,M,,,\n" +
			"\"Bob Jones\",\"Granite Spire\",#,M,,,\n" +
			"\"Bob Jones\",\"Granite Spire\",N/A,M,,,\n"

		Convey("When aggregating", func() {
			res := aggregate.LiveFeed(text, nil, nil, testRules())

			Convey("Then rows missing name, course, or a numeric result vanish", func() {
				So(res.Athletes, ShouldHaveLength, 1)
				So(res.Athletes, ShouldContainKey, "alicesmith")
				So(res.AllTime.Best, ShouldHaveLength, 1)
			})
		})
	})
}

func TestLiveFeedUnknownAthletes(t *testing.T) {
	Convey("Given feed rows for athletes absent from the rankings", t, func() {
		text := feedHeader +
			"\"Nova Runner\",\"Granite Spire\",52.0,F,,,\n" +
			"\"Drift King\",\"Granite Spire\",49.0,,,,\n"

		Convey("When aggregating", func() {
			res := aggregate.LiveFeed(text, nil, nil, testRules())

			Convey("Then they are provisioned with gender from the division", func() {
				So(res.Athletes["novarunner"].Gender, ShouldEqual, model.Women)
				So(res.Athletes["novarunner"].AllTimeRank, ShouldEqual, 0)
			})

			Convey("Then a missing division defaults to the men's board", func() {
				So(res.Athletes["driftking"].Gender, ShouldEqual, model.Men)
			})
		})
	})
}

func TestLiveFeedOpenSeasonGate(t *testing.T) {
	Convey("Given tagged and untagged feed rows", t, func() {
		courses := map[string]model.CourseRecord{
			"GRANITE SPIRE": {Name: "GRANITE SPIRE", IsCurrentSeason: true},
			"EMBER GULLY":   {Name: "EMBER GULLY"},
		}
		text := feedHeader +
			"\"Alice Smith\",\"Granite Spire\",55.2,F,2026-02-10,,\"ASR OPEN 2026\"\n" +
			"\"Alice Smith\",\"Ember Gully\",61.0,F,2026-03-01,,\"asr open\"\n" +
			"\"Alice Smith\",\"Granite Spire\",50.0,F,2025-11-20,,\"ASR OPEN 2026\"\n" +
			"\"Alice Smith\",\"Granite Spire\",54.0,F,,,\n" +
			"\"Alice Smith\",\"Ember Gully\",59.0,F,,,\"ASR OPEN\"\n"

		Convey("When aggregating", func() {
			res := aggregate.LiveFeed(text, nil, courses, testRules())

			Convey("Then all-time counts every valid row", func() {
				So(res.AllTime.Best["alicesmith"]["GRANITE SPIRE"].NumericValue, ShouldEqual, 50.0)
			})

			Convey("Then the open horizon requires the tag", func() {
				// The untagged 54.0 run never enters the open horizon.
				So(res.Open.Best["alicesmith"]["GRANITE SPIRE"].NumericValue, ShouldEqual, 55.2)
			})

			Convey("Then the tag matches case-insensitively as a substring", func() {
				So(res.Open.Best["alicesmith"], ShouldContainKey, "EMBER GULLY")
			})

			Convey("Then a tagged row dated before the cutoff is rejected", func() {
				So(res.Open.Best["alicesmith"]["GRANITE SPIRE"].NumericValue, ShouldNotEqual, 50.0)
			})

			Convey("Then a tagged row with no date passes the gate", func() {
				So(res.Open.Best["alicesmith"]["EMBER GULLY"].NumericValue, ShouldEqual, 59.0)
			})

			Convey("Then season run counts cover current-season courses only", func() {
				// One qualifying Granite Spire row; Ember Gully is not a
				// current-season course.
				So(res.SeasonRuns["alicesmith"], ShouldEqual, 1)
			})
		})
	})
}

func TestLiveFeedCollisions(t *testing.T) {
	Convey("Given distinct spellings collapsing to one key", t, func() {
		text := feedHeader +
			"\"José Silva\",\"Granite Spire\",55.0,M,,,\n" +
			"\"Jose Silva\",\"Granite Spire\",54.0,M,,,\n" +
			"\"Bob Jones\",\"Granite Spire\",50.0,M,,,\n"

		Convey("When aggregating", func() {
			res := aggregate.LiveFeed(text, nil, nil, testRules())

			Convey("Then the collision is reported with both spellings", func() {
				So(res.Collisions, ShouldHaveLength, 1)
				So(res.Collisions[0].Key, ShouldEqual, "josesilva")
				So(res.Collisions[0].Names, ShouldResemble, []string{"Jose Silva", "José Silva"})
			})

			Convey("Then unambiguous athletes report nothing", func() {
				for _, c := range res.Collisions {
					So(c.Key, ShouldNotEqual, "bobjones")
				}
			})
		})
	})

	Convey("Given ranking rows from two tables collapsing to one key", t, func() {
		meta := []model.AthleteRecord{
			{Name: "José Silva", Key: "josesilva", Gender: model.Men},
			{Name: "Jose Silva", Key: "josesilva", Gender: model.Women},
			{Name: "Bob Jones", Key: "bobjones", Gender: model.Men},
		}
		text := feedHeader +
			"\"Bob Jones\",\"Granite Spire\",50.0,M,,,\n"

		Convey("When aggregating", func() {
			res := aggregate.LiveFeed(text, meta, nil, testRules())

			Convey("Then the cross-table collision is reported", func() {
				So(res.Collisions, ShouldHaveLength, 1)
				So(res.Collisions[0].Key, ShouldEqual, "josesilva")
				So(res.Collisions[0].Names, ShouldResemble, []string{"Jose Silva", "José Silva"})
			})
		})

		Convey("When the feed has no recognizable header", func() {
			res := aggregate.LiveFeed("garbage,data\n1,2\n", meta, nil, testRules())

			Convey("Then the collision is still reported", func() {
				So(res.Collisions, ShouldHaveLength, 1)
				So(res.Collisions[0].Key, ShouldEqual, "josesilva")
			})
		})
	})
}

func TestRankAndPoints(t *testing.T) {
	Convey("Given a board with known times", t, func() {
		board := map[string]float64{"a": 48.0, "b": 55.2, "c": 55.2, "d": 60.0}

		Convey("When ranking athletes", func() {
			Convey("Then rank is one plus the count of strictly lower times", func() {
				So(aggregate.Rank(board, "a"), ShouldEqual, 1)
				So(aggregate.Rank(board, "b"), ShouldEqual, 2)
				So(aggregate.Rank(board, "c"), ShouldEqual, 2)
				So(aggregate.Rank(board, "d"), ShouldEqual, 4)
			})

			Convey("Then an absent key ranks zero", func() {
				So(aggregate.Rank(board, "nobody"), ShouldEqual, 0)
			})
		})
	})

	Convey("Given an aggregated feed", t, func() {
		text := feedHeader +
			"\"Bob Jones\",\"Granite Spire\",48.0,M,,,\"ASR OPEN\"\n" +
			"\"Carl Reed\",\"Granite Spire\",60.0,M,,,\"ASR OPEN\"\n"

		Convey("When deriving performances", func() {
			res := aggregate.LiveFeed(text, nil, nil, testRules())

			Convey("Then the record holder scores exactly 100 points", func() {
				perfs := res.AllTime.Performances["bobjones"]
				So(perfs, ShouldHaveLength, 1)
				So(perfs[0].Points, ShouldEqual, 100.0)
				So(perfs[0].Rank, ShouldEqual, 1)
			})

			Convey("Then slower athletes score proportionally to the record", func() {
				perfs := res.AllTime.Performances["carlreed"]
				So(perfs[0].Points, ShouldAlmostEqual, 80.0)
				So(perfs[0].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestOpenRanking(t *testing.T) {
	Convey("Given open-season results across two courses", t, func() {
		text := feedHeader +
			"\"Bob Jones\",\"Granite Spire\",48.0,M,,,\"ASR OPEN\"\n" +
			"\"Bob Jones\",\"Ember Gully\",70.0,M,,,\"ASR OPEN\"\n" +
			"\"Carl Reed\",\"Granite Spire\",60.0,M,,,\"ASR OPEN\"\n" +
			"\"Carl Reed\",\"Ember Gully\",56.0,M,,,\"ASR OPEN\"\n"

		Convey("When deriving the open ranking", func() {
			res := aggregate.LiveFeed(text, nil, nil, testRules())

			So(res.OpenRanking, ShouldHaveLength, 2)

			Convey("Then rating is the mean of per-course points", func() {
				// Bob: 100 on Granite Spire, 80 on Ember Gully -> 90.
				// Carl: 80 on Granite Spire, 100 on Ember Gully -> 90.
				So(res.OpenRanking[0].Rating, ShouldAlmostEqual, 90.0)
				So(res.OpenRanking[1].Rating, ShouldAlmostEqual, 90.0)
			})

			Convey("Then equal ratings order deterministically by key", func() {
				So(res.OpenRanking[0].Key, ShouldEqual, "bobjones")
				So(res.OpenRanking[1].Key, ShouldEqual, "carlreed")
			})

			Convey("Then wins count rank-one boards", func() {
				So(res.OpenRanking[0].Wins, ShouldEqual, 1)
				So(res.OpenRanking[1].Wins, ShouldEqual, 1)
			})

			Convey("Then runs count distinct courses", func() {
				So(res.OpenRanking[0].Runs, ShouldEqual, 2)
			})
		})
	})
}

func TestLiveFeedNoHeader(t *testing.T) {
	Convey("Given text with no recognizable header", t, func() {
		res := aggregate.LiveFeed("garbage,data\n1,2\n", nil, nil, testRules())

		Convey("Then the aggregates come back empty but non-nil", func() {
			So(res.AllTime.Best, ShouldBeEmpty)
			So(res.Open.Best, ShouldBeEmpty)
			So(res.OpenRanking, ShouldBeEmpty)
			So(res.Athletes, ShouldNotBeNil)
		})
	})
}
