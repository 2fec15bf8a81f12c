// Package site serves the published standings files.
package site

import (
	"context"
	"net/http"
)

// Register serves the files in dir (tabla_SDC.html, standings.json and
// standings.js) at the root of mux, so a page embedding standings.js can be
// hosted alongside the API.
func Register(_ context.Context, mux *http.ServeMux, dir string) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewRootHandler(dir))
}

// RootHandler serves read-only files from the output directory.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a root handler for dir.
func NewRootHandler(dir string) *RootHandler {
	return &RootHandler{files: http.FileServer(http.Dir(dir))}
}

// ServeHTTP serves GET and HEAD requests from the output directory.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.files.ServeHTTP(w, r)
}
