package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	service "github.com/ryanmford/apexspeedrun/internal/app"
	"github.com/ryanmford/apexspeedrun/internal/config"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const (
	menSheet = "Rank,Name,Country,Flag,Rating,Points,Runs,Wins,Sets,Contribution,Fire\n" +
		"1,\"Bob Jones\",USA,🇺🇸,91,400,12,4,2,50,3\n" +
		"2,\"Carl Reed\",France,🇫🇷,88,380,10,2,1,40,1\n"

	womenSheet = "Rank,Name,Country,Flag,Rating,Points,Runs,Wins,Sets,Contribution,Fire\n" +
		"1,\"Alice Smith\",Brazil,🇧🇷,93,410,11,5,1,60,4\n"

	courseSheet = "Course,City,State,Country,Flag,Difficulty,Length,Elevation,Type,Date Set,Lead Setter,Assistant Setter,Video,Coordinates\n" +
		"\"Granite Spire\",Boulder,Colorado,USA,🇺🇸,V5,140m,1650,technical,2026-03-15,\"Bram Oster\",,,\n"

	setterSheet = "Setter,Country,Flag,Sets,Leads,Assists\n" +
		"\"Bram Oster\",Netherlands,🇳🇱,6,4,2\n"

	feedSheet = "Athlete,Course,PB,Division,Date,Video,Event Tag\n" +
		"\"Bob Jones\",\"Granite Spire\",48.0,M,2026-02-01,,\"ASR OPEN 2026\"\n" +
		"\"Carl Reed\",\"Granite Spire\",60.0,M,,,\n" +
		"\"Alice Smith\",\"Granite Spire\",55.2,F,2026-02-15,,\"ASR OPEN 2026\"\n"
)

func sheetServer(routes map[string]string) *httptest.Server {
	mux := http.NewServeMux()
	for path, body := range routes {
		text := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(text))
		})
	}
	return httptest.NewServer(mux)
}

func testConfig(base string) *config.Config {
	cfg := config.New()
	cfg.MenRankingsURL = base + "/men"
	cfg.WomenRankingsURL = base + "/women"
	cfg.CoursesURL = base + "/courses"
	cfg.SettersURL = base + "/setters"
	cfg.LiveFeedURL = base + "/feed"
	return cfg
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given sheet exports served over HTTP", t, func() {
		srv := sheetServer(map[string]string{
			"/men":     menSheet,
			"/women":   womenSheet,
			"/courses": courseSheet,
			"/setters": setterSheet,
			"/feed":    feedSheet,
		})
		defer srv.Close()

		svc := service.New(service.WithConfig(testConfig(srv.URL)))
		ctx := context.Background()

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			snap, err := svc.Current(ctx)
			So(err, ShouldBeNil)

			Convey("Then the snapshot is healthy", func() {
				So(snap.Health.State, ShouldEqual, model.StateOK)
				So(snap.ID, ShouldNotBeEmpty)
			})

			Convey("Then athletes merge rankings and the feed", func() {
				So(snap.Athletes, ShouldHaveLength, 3)
				So(snap.Athletes["bobjones"].CountryName, ShouldEqual, "USA")
				So(snap.Athletes["alicesmith"].Gender, ShouldEqual, model.Women)
			})

			Convey("Then leaderboards carry the feed results", func() {
				So(snap.AllTime.Boards[model.Men]["GRANITE SPIRE"]["bobjones"], ShouldEqual, 48.0)
				So(snap.AllTime.Boards[model.Women]["GRANITE SPIRE"]["alicesmith"], ShouldEqual, 55.2)
			})

			Convey("Then the open ranking reflects tagged runs only", func() {
				keys := make([]string, 0, len(snap.OpenRanking))
				for _, row := range snap.OpenRanking {
					keys = append(keys, row.Key)
				}
				So(keys, ShouldContain, "bobjones")
				So(keys, ShouldContain, "alicesmith")
				So(keys, ShouldNotContain, "carlreed")
			})

			Convey("Then season runs count current-season courses", func() {
				So(snap.SeasonRuns["bobjones"], ShouldEqual, 1)
			})

			Convey("Then setter impact and links are derived", func() {
				So(snap.Setters, ShouldHaveLength, 1)
				So(snap.Setters[0].Impact, ShouldEqual, 3)
				So(snap.SetterLinks, ShouldHaveLength, 1)
				So(snap.SetterLinks[0].Fuzzy, ShouldBeFalse)
			})

			Convey("Then the medal table credits podium countries", func() {
				So(len(snap.Medals), ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When reloading", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			first, _ := svc.Current(ctx)
			snap, err := svc.Reload(ctx)
			So(err, ShouldBeNil)
			So(snap.ID, ShouldNotEqual, first.ID)
		})

		Convey("When requesting course summaries", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			courses, err := svc.CourseSummaries(ctx, false)
			So(err, ShouldBeNil)
			So(courses, ShouldHaveLength, 1)
			So(courses[0].Name, ShouldEqual, "GRANITE SPIRE")
			So(courses[0].Runs, ShouldEqual, 3)
		})

		Convey("When reading service stats", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["athletes"], ShouldEqual, 3)
		})
	})
}

func TestServiceDegradedStates(t *testing.T) {
	Convey("Given a live feed that fails to fetch", t, func() {
		srv := sheetServer(map[string]string{
			"/men":     menSheet,
			"/women":   womenSheet,
			"/courses": courseSheet,
			"/setters": setterSheet,
		})
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.LiveFeedURL = srv.URL + "/missing"
		svc := service.New(service.WithConfig(cfg))
		ctx := context.Background()

		Convey("When starting", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			snap, err := svc.Current(ctx)
			So(err, ShouldBeNil)

			Convey("Then the snapshot is published in the partial state", func() {
				So(snap.Health.State, ShouldEqual, model.StatePartial)
				So(snap.Health.EmptySheets, ShouldResemble, []string{"live_feed"})
			})

			Convey("Then ranked athletes survive without leaderboards", func() {
				So(snap.Athletes, ShouldHaveLength, 3)
				So(snap.AllTime.Best, ShouldBeEmpty)
			})
		})
	})

	Convey("Given every primary sheet failing", t, func() {
		srv := sheetServer(map[string]string{"/setters": setterSheet, "/courses": courseSheet})
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.MenRankingsURL = srv.URL + "/missing1"
		cfg.WomenRankingsURL = srv.URL + "/missing2"
		cfg.LiveFeedURL = srv.URL + "/missing3"
		svc := service.New(service.WithConfig(cfg))
		ctx := context.Background()

		Convey("When starting", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then a failed snapshot is still published", func() {
				snap, err := svc.Current(ctx)
				So(err, ShouldBeNil)
				So(snap.Health.State, ShouldEqual, model.StateFailed)
				So(snap.Health.EmptySheets, ShouldHaveLength, 3)
			})
		})
	})
}
