package history

import (
	"errors"
)

// Sentinel kinds for history fetch errors.
var (
	ErrStatus        = errors.New("unexpected game history status")
	ErrMalformedPage = errors.New("game history page has no game_history")
	ErrRequest       = errors.New("game history request failed")
)
