package repository

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/okian/playerboard/internal/domain/model"
	"github.com/okian/playerboard/pkg/metrics"
)

// snapshot is an immutable view of the collection. A new snapshot is
// swapped in on Replace; readers never see a partial write.
type snapshot struct {
	players  []model.Player
	loadedAt time.Time
}

// MemoryStore is an in-memory Store backed by an atomically swapped snapshot.
type MemoryStore struct {
	snap   atomic.Pointer[snapshot]
	closed atomic.Bool
	now    func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdatePlayersTotal(0)
	return s
}

// Replace implements Store.
func (s *MemoryStore) Replace(_ context.Context, players []model.Player) error {
	if s.closed.Load() {
		return ErrClosed
	}
	next := &snapshot{
		players:  slices.Clone(players),
		loadedAt: s.now(),
	}
	s.snap.Store(next)

	metrics.UpdatePlayersTotal(len(next.players))
	metrics.UpdatePlayersLoadedAt(next.loadedAt)
	return nil
}

// All implements Store.
func (s *MemoryStore) All(_ context.Context) []model.Player {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	snap := s.snap.Load()
	if snap == nil {
		return []model.Player{}
	}
	return slices.Clone(snap.players)
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	snap := s.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.players)
}

// LoadedAt implements Store.
func (s *MemoryStore) LoadedAt(_ context.Context) (time.Time, error) {
	snap := s.snap.Load()
	if snap == nil {
		return time.Time{}, ErrNotLoaded
	}
	return snap.loadedAt, nil
}

// Close rejects further writes. Reads keep serving the last snapshot.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}
