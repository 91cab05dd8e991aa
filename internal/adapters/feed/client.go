// Package feed reads the remote player feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/playerboard/internal/domain/model"
	"github.com/okian/playerboard/pkg/metrics"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 8 << 20
)

// Source is anything that can produce the player list once.
type Source interface {
	Fetch(ctx context.Context) ([]model.Player, error)
}

// Client fetches the feed over HTTP.
type Client struct {
	url      string
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
}

// NewClient creates a feed client for url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:      url,
		http:     &http.Client{},
		timeout:  defaultTimeout,
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the configured endpoint.
func (c *Client) URL() string { return c.url }

// Fetch issues a single GET and decodes the playerList envelope.
// It does not retry.
func (c *Client) Fetch(ctx context.Context) ([]model.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrDecode, c.maxBytes)
	}
	metrics.UpdateFeedPayloadBytes(int64(len(body)))

	var feed model.Feed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(feed.PlayerList) == 0 {
		return nil, ErrEmptyFeed
	}
	return feed.PlayerList, nil
}
