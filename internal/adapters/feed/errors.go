package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrRequest   = errors.New("feed request failed")
	ErrStatus    = errors.New("feed returned unexpected status")
	ErrDecode    = errors.New("feed payload malformed")
	ErrEmptyFeed = errors.New("feed has no players")
)
