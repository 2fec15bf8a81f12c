package league

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrEmptyRoster   = errors.New("roster is empty")
	ErrNotBijective  = errors.New("roster is not a one-to-one participant/team mapping")
	ErrBlankIdentity = errors.New("participant or team is blank")
)
