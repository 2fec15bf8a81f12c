package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrNotReady   = errors.New("standings not built yet")
	ErrBadRequest = errors.New("bad request")
	ErrRender     = errors.New("render failed")
)

// opError tags err with the operation that produced it.
func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
