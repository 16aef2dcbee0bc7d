package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ryanmford/apexspeedrun/internal/adapters/fetch"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFetchAll(t *testing.T) {
	Convey("Given servers with mixed health", t, func() {
		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Name,PB\nAlice,55.2\n"))
		}))
		defer good.Close()

		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer bad.Close()

		f := fetch.New(fetch.WithTimeout(5 * time.Second))

		Convey("When fetching all sheets concurrently", func() {
			out := f.FetchAll(context.Background(), []fetch.Sheet{
				{Name: "live_feed", URL: good.URL},
				{Name: "courses", URL: bad.URL},
				{Name: "setters", URL: "http://127.0.0.1:1/unreachable"},
			})

			Convey("Then healthy sheets return their text", func() {
				So(out["live_feed"], ShouldEqual, "Name,PB\nAlice,55.2\n")
			})

			Convey("Then failures resolve to empty text, never an error", func() {
				So(out, ShouldHaveLength, 3)
				So(out["courses"], ShouldEqual, "")
				So(out["setters"], ShouldEqual, "")
			})
		})

		Convey("When a sheet has no URL configured", func() {
			out := f.FetchAll(context.Background(), []fetch.Sheet{{Name: "extra_feed", URL: ""}})
			So(out["extra_feed"], ShouldEqual, "")
		})

		Convey("When the custom user agent is set", func() {
			var seen string
			ua := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Header.Get("User-Agent")
			}))
			defer ua.Close()

			custom := fetch.New(fetch.WithUserAgent("asr-test/1.0"))
			custom.FetchAll(context.Background(), []fetch.Sheet{{Name: "x", URL: ua.URL}})
			So(seen, ShouldEqual, "asr-test/1.0")
		})
	})
}

func TestFetchAllCancellation(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("data"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When fetching", func() {
			out := fetch.New().FetchAll(ctx, []fetch.Sheet{{Name: "live_feed", URL: srv.URL}})

			Convey("Then the sheet resolves to empty text", func() {
				So(out["live_feed"], ShouldEqual, "")
			})
		})
	})
}
