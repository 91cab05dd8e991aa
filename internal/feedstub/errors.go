package feedstub

import "errors"

// Error constants.
var (
	ErrSeedFile   = errors.New("invalid seed file")
	ErrPlayerList = errors.New("player count must be positive")
)
