package service

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrNotConfigured = errors.New("standings service is missing a fetcher or roster")
)
