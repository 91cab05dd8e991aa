// Package feedstub serves a generated player feed in the remote API's wire
// format so the board can be run without the real upstream.
package feedstub

// Config holds configuration for the feed stub.
type Config struct {
	Addr     string // listen address
	Players  int    // number of generated players
	SeedFile string // optional JSON feed served verbatim instead
}

// Default configuration values.
const (
	DefaultAddr    = ":9090"
	DefaultPlayers = 24
)
