package render

import (
	"errors"
)

// Sentinel kinds for render errors.
var (
	ErrWrite = errors.New("standings output write failed")
	ErrRead  = errors.New("standings payload read failed")
)
