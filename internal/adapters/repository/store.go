// Package repository holds the authoritative player collection.
package repository

import (
	"context"
	"time"

	"github.com/okian/playerboard/internal/domain/model"
)

// Store provides read/write access to the authoritative collection.
type Store interface {
	// Replace stores players as the authoritative collection. The caller
	// passes them already ordered; the store never re-sorts.
	Replace(ctx context.Context, players []model.Player) error

	// All returns the authoritative collection in stored order. The
	// returned slice is a copy.
	All(ctx context.Context) []model.Player

	// Count returns the number of stored players.
	Count(ctx context.Context) int

	// LoadedAt returns when Replace last succeeded, or ErrNotLoaded.
	LoadedAt(ctx context.Context) (time.Time, error)
}
