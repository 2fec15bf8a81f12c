package api

import (
	"net/http"
	"strconv"
)

// StandingsHandler serves the latest standings payload.
type StandingsHandler struct {
	provider StandingsProvider
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(provider StandingsProvider) *StandingsHandler {
	return &StandingsHandler{provider: provider}
}

// HandleGetStandings handles GET /standings[?limit=N]. Without a limit every
// row is returned.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", opError(op, ErrBadRequest))
			return
		}
		limit = n
	}
	payload, ok := h.provider.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "not_ready", opError(op, ErrNotReady))
		return
	}
	if limit > 0 && limit < len(payload.Rows) {
		payload.Rows = payload.Rows[:limit]
	}
	writeJSON(w, http.StatusOK, payload)
}
