package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotLoaded = errors.New("player collection not loaded")
	ErrClosed    = errors.New("store closed")
)
