package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/sdc-standings/internal/domain/types"
)

// DefaultVariable is the global assigned by the script payload.
const DefaultVariable = "window.STANDINGS"

// JSON writes p as indented JSON.
func JSON(w io.Writer, p types.Payload) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("%w: json: %w", ErrWrite, err)
	}
	return nil
}

// JS writes p as a script assigning the compact payload to variable.
func JS(w io.Writer, p types.Payload, variable string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("%w: js: %w", ErrWrite, err)
	}
	body := bytes.TrimRight(buf.Bytes(), "\n")
	if _, err := fmt.Fprintf(w, "%s = %s;", variable, body); err != nil {
		return fmt.Errorf("%w: js: %w", ErrWrite, err)
	}
	return nil
}

// DecodePayload reads a JSON payload from r.
func DecodePayload(r io.Reader) (types.Payload, error) {
	var p types.Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return types.Payload{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return p, nil
}

// ReadPayload loads a payload file written by JSON.
func ReadPayload(path string) (types.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Payload{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer func() { _ = f.Close() }()
	return DecodePayload(f)
}
