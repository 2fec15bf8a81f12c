package history_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/sdc-standings/internal/adapters/history"
	"github.com/okian/sdc-standings/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// pagedServer serves total pages of one game each; failAt, when positive,
// answers that page with 500.
func pagedServer(total, failAt int, hits *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == failAt {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":` + strconv.Itoa(page) + `,"total_pages":` + strconv.Itoa(total) +
			`,"game_history":[{"display_date":"09/01/2025 20:00:00","game_mode":"LEAGUE","home_name":"a","away_name":"b","home_runs":"` +
			strconv.Itoa(page) + `","away_runs":0}]}`))
	}))
}

func TestClient_FetchPage(t *testing.T) {
	Convey("Given a game history server", t, func() {
		var gotQuery, gotUA, gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			_, _ = w.Write([]byte(`{"page":1,"total_pages":3,"game_history":[{"home_name":"x","home_runs":5}]}`))
		}))
		defer srv.Close()

		c := history.NewClient(
			history.WithBaseURL(srv.URL),
			history.WithUserAgent("test-agent/1"),
			history.WithHTTPClient(srv.Client()),
		)

		Convey("When fetching a page", func() {
			hp, err := c.FetchPage(context.Background(), "Junior192415", "psn", 1)

			Convey("Then the page is decoded", func() {
				So(err, ShouldBeNil)
				So(hp.TotalPages, ShouldEqual, 3)
				So(hp.GameHistory, ShouldHaveLength, 1)
				runs, err := hp.GameHistory[0].HomeRuns.Int()
				So(err, ShouldBeNil)
				So(runs, ShouldEqual, 5)
			})

			Convey("And the request carries the query and headers", func() {
				So(gotQuery, ShouldEqual, "page=1&platform=psn&username=Junior192415")
				So(gotUA, ShouldEqual, "test-agent/1")
				So(gotAccept, ShouldEqual, "application/json")
			})
		})
	})

	Convey("Given a server answering with a non-2xx status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := history.NewClient(history.WithBaseURL(srv.URL)).FetchPage(context.Background(), "u", "psn", 1)

		Convey("Then ErrStatus is returned", func() {
			So(errors.Is(err, history.ErrStatus), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "404")
		})
	})

	Convey("Given bodies that are not usable pages", t, func() {
		for name, body := range map[string]string{
			"missing game_history": `{"page":1,"total_pages":1}`,
			"null game_history":    `{"game_history":null}`,
			"invalid json":         `<html>`,
		} {
			body := body
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))

			_, err := history.NewClient(history.WithBaseURL(srv.URL)).FetchPage(context.Background(), "u", "psn", 1)
			srv.Close()

			Convey("Then "+name+" is a malformed page", func() {
				So(errors.Is(err, history.ErrMalformedPage), ShouldBeTrue)
			})
		}
	})

	Convey("Given a server slower than the request deadline", t, func() {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c := history.NewClient(history.WithBaseURL(srv.URL), history.WithTimeout(50*time.Millisecond))
		_, err := c.FetchPage(context.Background(), "u", "psn", 1)

		Convey("Then the request fails", func() {
			So(errors.Is(err, history.ErrRequest), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}

func TestClient_FetchAll(t *testing.T) {
	Convey("Given a history spread over three pages", t, func() {
		var hits int32
		srv := pagedServer(3, 0, &hits)
		defer srv.Close()

		games, err := history.NewClient(history.WithBaseURL(srv.URL)).FetchAll(context.Background(), "u", "psn")

		Convey("Then every page is fetched once, in order", func() {
			So(err, ShouldBeNil)
			So(atomic.LoadInt32(&hits), ShouldEqual, 3)
			So(games, ShouldHaveLength, 3)
			So(string(games[0].HomeRuns), ShouldEqual, "1")
			So(string(games[2].HomeRuns), ShouldEqual, "3")
		})
	})

	Convey("Given a history whose second page fails", t, func() {
		var hits int32
		srv := pagedServer(3, 2, &hits)
		defer srv.Close()

		games, err := history.NewClient(history.WithBaseURL(srv.URL)).FetchAll(context.Background(), "u", "psn")

		Convey("Then the first page is kept and the loop stops", func() {
			So(errors.Is(err, history.ErrStatus), ShouldBeTrue)
			So(games, ShouldHaveLength, 1)
			So(atomic.LoadInt32(&hits), ShouldEqual, 2)
		})
	})

	Convey("Given a page without total_pages", t, func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			_, _ = w.Write([]byte(`{"game_history":[]}`))
		}))
		defer srv.Close()

		games, err := history.NewClient(history.WithBaseURL(srv.URL)).FetchAll(context.Background(), "u", "psn")

		Convey("Then only the first page is requested", func() {
			So(err, ShouldBeNil)
			So(games, ShouldBeEmpty)
			So(atomic.LoadInt32(&hits), ShouldEqual, 1)
		})
	})
}
