package api

import (
	"bytes"
	"net/http"

	"github.com/okian/sdc-standings/internal/adapters/render"
)

// TableHandler serves the standings as an HTML page.
type TableHandler struct {
	provider StandingsProvider
	cutoff   int
}

// NewTableHandler creates a new HTML table handler.
func NewTableHandler(provider StandingsProvider, cutoff int) *TableHandler {
	return &TableHandler{provider: provider, cutoff: cutoff}
}

// HandleGetTable handles GET /tabla requests.
func (h *TableHandler) HandleGetTable(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_table"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	payload, ok := h.provider.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "not_ready", opError(op, ErrNotReady))
		return
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, payload.Rows, h.cutoff); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", opError(op, ErrRender))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
