package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/okian/sdc-standings/internal/adapters/http/api"
	"github.com/okian/sdc-standings/internal/domain/model"
	"github.com/okian/sdc-standings/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockProvider is a StandingsProvider backed by a fixed payload.
type mockProvider struct {
	mu      sync.Mutex
	payload types.Payload
	ready   bool
}

func (m *mockProvider) Latest() (types.Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload, m.ready
}

func readyProvider() *mockProvider {
	return &mockProvider{
		ready: true,
		payload: types.Payload{
			GeneratedAt: time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC),
			Rows: []model.Row{
				{Team: "Dodgers", Participant: "Junior192415", Points: 11, Won: 3, Lost: 1, Played: 4},
				{Team: "Cubs", Participant: "alpha", Points: 6, Won: 2, Played: 2},
				{Team: "Mets", Participant: "beta", Points: 2, Lost: 1, Played: 1},
			},
		},
	}
}

func newMux(p api.StandingsProvider, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(p, opts...).Register(mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestServer_Standings(t *testing.T) {
	Convey("Given a server with built standings", t, func() {
		mux := newMux(readyProvider())

		Convey("When getting /standings", func() {
			w := do(mux, http.MethodGet, "/standings")

			Convey("Then the full payload is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var p types.Payload
				So(json.Unmarshal(w.Body.Bytes(), &p), ShouldBeNil)
				So(p.Rows, ShouldHaveLength, 3)
				So(p.Rows[0].Team, ShouldEqual, "Dodgers")
				So(w.Body.String(), ShouldContainSubstring, `"pts":11`)
			})
		})

		Convey("When getting /standings with a limit", func() {
			w := do(mux, http.MethodGet, "/standings?limit=2")

			Convey("Then only the top rows are returned", func() {
				var p types.Payload
				So(json.Unmarshal(w.Body.Bytes(), &p), ShouldBeNil)
				So(p.Rows, ShouldHaveLength, 2)
			})
		})

		Convey("When the limit is invalid", func() {
			w := do(mux, http.MethodGet, "/standings?limit=zero")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			})
		})

		Convey("When using another method", func() {
			w := do(mux, http.MethodPost, "/standings")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given a server before the first build", t, func() {
		mux := newMux(&mockProvider{})

		Convey("Then /standings and /tabla are unavailable", func() {
			for _, path := range []string{"/standings", "/tabla"} {
				w := do(mux, http.MethodGet, path)
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(w.Body.String(), ShouldContainSubstring, `"code":"not_ready"`)
			}
		})
	})
}

func TestServer_Table(t *testing.T) {
	Convey("Given a server with a cutoff after the second row", t, func() {
		mux := newMux(readyProvider(), api.WithCutoff(2))

		Convey("When getting /tabla", func() {
			w := do(mux, http.MethodGet, "/tabla")

			Convey("Then an HTML table is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "text/html")

				doc, err := goquery.NewDocumentFromReader(w.Body)
				So(err, ShouldBeNil)
				So(doc.Find("tr").Length(), ShouldEqual, 4)
				So(doc.Find("tr[style]").Find("td").First().Text(), ShouldEqual, "Cubs")
			})
		})
	})
}

func TestServer_Health(t *testing.T) {
	Convey("Given a server", t, func() {
		mux := newMux(readyProvider())

		Convey("When a request has been served and /healthz is scraped", func() {
			_ = do(mux, http.MethodGet, "/standings")
			w := do(mux, http.MethodGet, "/healthz")

			Convey("Then the Prometheus exposition includes the HTTP metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "sdc_standings_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `endpoint="standings"`)
			})
		})
	})
}

func TestServer_MCP(t *testing.T) {
	Convey("Given a server", t, func() {
		mux := newMux(readyProvider(), api.WithVersion("1.2.3"))

		Convey("When an MCP client initializes a session", func() {
			body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
			req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json, text/event-stream")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the server identifies itself", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"sdc-standings"`)
				So(w.Body.String(), ShouldContainSubstring, `"1.2.3"`)
			})
		})
	})
}
