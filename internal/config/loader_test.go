package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ryanmford/apexspeedrun/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given a fresh config", t, func() {
		cfg := config.New()

		Convey("Then the season and scoring defaults are set", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.SeasonTag, ShouldEqual, "ASR OPEN")
			So(cfg.SeasonCutoff, ShouldEqual, "2026-01-01")
			So(cfg.CurrentSeasonMarker, ShouldEqual, "2026")
			So(cfg.FireBandsMen, ShouldResemble, []float64{7, 8, 9})
			So(cfg.FireBandsWomen, ShouldResemble, []float64{9, 10, 11})
			So(cfg.QualifyingRunsMen, ShouldEqual, 4)
			So(cfg.QualifyingRunsWomen, ShouldEqual, 2)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("ASR_ADDR", ":7070")
		t.Setenv("ASR_SEASON_TAG", "ASR OPEN 2027")
		t.Setenv("ASR_LIVE_FEED_URL", "https://sheets.example/feed.csv")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then env values win over defaults", func() {
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.SeasonTag, ShouldEqual, "ASR OPEN 2027")
				So(cfg.LiveFeedURL, ShouldEqual, "https://sheets.example/feed.csv")
			})

			Convey("Then untouched fields keep defaults", func() {
				So(cfg.SeasonCutoff, ShouldEqual, "2026-01-01")
			})
		})
	})

	Convey("Given an invalid season cutoff", t, func() {
		t.Setenv("ASR_SEASON_CUTOFF", "not-a-date")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given an empty listen address", t, func() {
		t.Setenv("ASR_ADDR", "")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestCutoffDate(t *testing.T) {
	Convey("Given a validated config", t, func() {
		cfg := config.New()

		Convey("When reading the cutoff", func() {
			So(cfg.CutoffDate().Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})
	})
}
