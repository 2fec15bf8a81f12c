package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/sdc-standings/internal/domain/types"
)

// Writer writes the standings files into one directory.
type Writer struct {
	dir      string
	htmlFile string
	jsonFile string
	jsFile   string
	variable string
	cutoff   int
}

// NewWriter returns a Writer with the default file names in the current
// directory.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		dir:      ".",
		htmlFile: "tabla_SDC.html",
		jsonFile: "standings.json",
		jsFile:   "standings.js",
		variable: DefaultVariable,
		cutoff:   DefaultCutoff,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Paths returns the HTML, JSON and script file paths.
func (w *Writer) Paths() (html, json, js string) {
	return filepath.Join(w.dir, w.htmlFile), filepath.Join(w.dir, w.jsonFile), filepath.Join(w.dir, w.jsFile)
}

// Write renders p into the three output files, rendering each in memory
// before it touches the disk.
func (w *Writer) Write(p types.Payload) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	htmlPath, jsonPath, jsPath := w.Paths()

	var buf bytes.Buffer
	if err := HTML(&buf, p.Rows, w.cutoff); err != nil {
		return err
	}
	if err := writeFile(htmlPath, buf.Bytes()); err != nil {
		return err
	}

	buf.Reset()
	if err := JSON(&buf, p); err != nil {
		return err
	}
	if err := writeFile(jsonPath, buf.Bytes()); err != nil {
		return err
	}

	buf.Reset()
	if err := JS(&buf, p, w.variable); err != nil {
		return err
	}
	return writeFile(jsPath, buf.Bytes())
}

func writeFile(path string, b []byte) error {
	if err := os.WriteFile(path, b, 0o644); err != nil { //nolint:gosec // published files
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
