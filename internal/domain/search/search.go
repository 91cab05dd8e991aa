// Package search derives the visible player collection from the
// authoritative one.
package search

import (
	"slices"
	"strings"

	"github.com/okian/playerboard/internal/domain/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SortByValue returns a copy of players ordered by ascending Value.
// Equal values keep their feed order.
func SortByValue(players []model.Player) []model.Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b model.Player) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
	return out
}

// Filter returns the players whose TName or PFName contains query,
// ignoring case. An empty query returns players unchanged. The result
// keeps the input order and is always a subset of it.
func Filter(players []model.Player, query string) []model.Player {
	if query == "" {
		return players
	}
	// Casers carry state and must not be shared across goroutines.
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if strings.Contains(lower.String(p.TName), needle) ||
			strings.Contains(lower.String(p.PFName), needle) {
			out = append(out, p)
		}
	}
	return out
}

