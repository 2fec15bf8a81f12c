// Package api serves the latest standings over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/sdc-standings/internal/adapters/render"
	"github.com/okian/sdc-standings/internal/domain/types"
)

// StandingsProvider exposes the most recent standings build. ok is false
// until the first build completes.
type StandingsProvider interface {
	Latest() (payload types.Payload, ok bool)
}

// Option configures a Server.
type Option func(*Server)

// WithCutoff sets the rank marked by the HTML table's cutoff line.
func WithCutoff(n int) Option {
	return func(s *Server) {
		if n >= 0 {
			s.cutoff = n
		}
	}
}

// WithVersion sets the version reported by the MCP endpoint.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// Server wires HTTP routes for the standings API.
type Server struct {
	cutoff  int
	version string

	healthHandler    *HealthHandler
	standingsHandler *StandingsHandler
	tableHandler     *TableHandler
	mcpHandler       http.Handler
}

// NewServer creates a new API server with all handlers.
func NewServer(provider StandingsProvider, opts ...Option) *Server {
	s := &Server{
		cutoff:  render.DefaultCutoff,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.standingsHandler = NewStandingsHandler(provider)
	s.tableHandler = NewTableHandler(provider, s.cutoff)
	s.mcpHandler = NewMCPHandler(provider, s.version)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/tabla", MetricsMiddleware(s.tableHandler.HandleGetTable, "tabla"))
	mux.HandleFunc("/mcp", MetricsMiddleware(s.mcpHandler.ServeHTTP, "mcp"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
