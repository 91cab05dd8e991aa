// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, .env, an optional YAML file and env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIURL is the remote player feed read once at startup.
	APIURL string `koanf:"api_url"`

	// FetchTimeoutMS bounds the single feed request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FeedMaxBytes caps the feed response body.
	FeedMaxBytes int64 `koanf:"feed_max_bytes"`

	// ImagesDir holds per-player images named {id}.jpg. Empty disables disk lookups.
	ImagesDir string `koanf:"images_dir"`

	// TimeZone is the IANA zone used to render match times.
	TimeZone string `koanf:"time_zone"`

	// MetricsEnabled turns the Prometheus recorders on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		APIURL:         "http://localhost:9090/players",
		FetchTimeoutMS: 10_000,
		FeedMaxBytes:   8 << 20,
		ImagesDir:      "player-images",
		TimeZone:       "Local",
		MetricsEnabled: true,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Location resolves TimeZone. Validate has already rejected unknown zones.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
