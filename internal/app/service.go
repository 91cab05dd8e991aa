// Package service provides the board service: it loads the authoritative
// player collection once and derives visible collections from it.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/playerboard/internal/adapters/feed"
	repository "github.com/okian/playerboard/internal/adapters/repository"
	"github.com/okian/playerboard/internal/domain/model"
	"github.com/okian/playerboard/internal/domain/search"
	"github.com/okian/playerboard/pkg/logger"
	"github.com/okian/playerboard/pkg/metrics"
)

// ErrNoSource is returned by Start when no feed source was configured.
var ErrNoSource = errors.New("no feed source configured")

// Service implements the dependencies of the HTTP layers.
type Service struct {
	mu sync.RWMutex

	source feed.Source
	store  repository.Store

	// State
	started       bool
	lastErr       error
	fetchDuration time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the feed the collection is loaded from.
func WithSource(src feed.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore replaces the default in-memory store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// New constructs a Service. Without WithStore an in-memory store is used.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Start loads the authoritative collection with a single fetch. A failed,
// empty or malformed feed leaves the collection empty and is only logged:
// Start returns an error only when the service is misconfigured.
// Calling Start again is a no-op. The fetch runs without holding s.mu, so
// GetStats answers while the feed is slow.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		s.mu.Unlock()
		return ErrNoSource
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting player board service...")
	s.load(ctx)
	return nil
}

// load performs the one fetch and commits its outcome under s.mu.
func (s *Service) load(ctx context.Context) {
	start := time.Now()
	players, err := s.source.Fetch(ctx)
	took := time.Since(start)
	ms := float64(took.Microseconds()) / 1000

	if err != nil {
		s.commit(took, err)
		result := metrics.FetchError
		if errors.Is(err, feed.ErrEmptyFeed) {
			result = metrics.FetchEmpty
		}
		metrics.RecordFeedFetch(result, ms)
		metrics.RecordErrorByComponent("feed", result)
		metrics.RecordErrorLatency("feed", result, ms)
		s.logger.Warn(ctx, "player feed unavailable; board stays empty",
			logger.Error(err),
			logger.Duration("took", took),
		)
		return
	}

	sorted := search.SortByValue(players)
	if err := s.store.Replace(ctx, sorted); err != nil {
		s.commit(took, err)
		metrics.RecordErrorByComponent("repository", "replace")
		s.logger.Error(ctx, "failed to store players", logger.Error(err))
		return
	}
	s.commit(took, nil)
	metrics.RecordFeedFetch(metrics.FetchOK, ms)
	s.logger.Info(ctx, "player board loaded",
		logger.Int("players", len(sorted)),
		logger.Duration("took", took),
	)
}

func (s *Service) commit(took time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchDuration = took
	s.lastErr = err
}

// Stop releases the store. Calling Stop on a stopped service is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "player board service stopped")
}

// Players returns the authoritative collection in value-ascending order.
func (s *Service) Players(ctx context.Context) []model.Player {
	return s.store.All(ctx)
}

// Visible returns the players shown for query.
func (s *Service) Visible(ctx context.Context, query string) []model.Player {
	visible := search.Filter(s.store.All(ctx), query)
	metrics.RecordSearch(query, len(visible))
	return visible
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"players":         s.store.Count(ctx),
		"loaded":          false,
		"fetchDurationMs": s.fetchDuration.Milliseconds(),
	}
	if at, err := s.store.LoadedAt(ctx); err == nil {
		stats["loaded"] = true
		stats["loadedAt"] = at.UTC().Format(time.RFC3339)
	}
	if s.lastErr != nil {
		stats["lastError"] = s.lastErr.Error()
	}
	return stats
}
