// Package card maps players to the view models rendered as board cards.
// It holds no state beyond formatting settings.
package card

import (
	"net/url"
	"strconv"
	"time"

	"github.com/okian/playerboard/internal/domain/model"
)

const (
	// TimeLayout renders match times as DD-MM-YYYY h:mm:ss am/pm.
	TimeLayout = "02-01-2006 3:04:05 pm"
	// InvalidDate is shown when a match date cannot be parsed.
	InvalidDate = "Invalid date"

	// ImagePrefix is the route serving player images.
	ImagePrefix = "/player-images/"
	// FallbackImage is the placeholder shown when a player image is missing.
	FallbackImage = ImagePrefix + "avatar.png"
)

// Card is the presentational form of a player.
type Card struct {
	ID       string
	Name     string
	Skill    string
	Value    string // button label, e.g. "$10.5"
	ImageURL string
	Fallback string
	Matches  []MatchRow
}

// MatchRow is one upcoming match line of a card. Hidden rows are still
// rendered so the card height stays stable.
type MatchRow struct {
	Fixture string // "RCB VS. CSK"
	Time    string
	Hidden  bool
}

// Mapper converts players to cards.
type Mapper struct {
	loc *time.Location
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLocation sets the zone used to render match times.
func WithLocation(loc *time.Location) Option {
	return func(m *Mapper) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// NewMapper creates a Mapper rendering times in the local zone by default.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{loc: time.Local}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Card maps one player.
func (m *Mapper) Card(p model.Player) Card {
	c := Card{
		ID:       p.ID,
		Name:     p.PFName,
		Skill:    p.SkillDesc,
		Value:    FormatValue(p.Value),
		ImageURL: ImageURL(p.ID),
		Fallback: FallbackImage,
	}
	if len(p.Matches) > 0 {
		c.Matches = make([]MatchRow, 0, len(p.Matches))
		for _, match := range p.Matches {
			c.Matches = append(c.Matches, m.Row(match))
		}
	}
	return c
}

// Cards maps players keeping their order.
func (m *Mapper) Cards(players []model.Player) []Card {
	out := make([]Card, len(players))
	for i, p := range players {
		out[i] = m.Card(p)
	}
	return out
}

// Row maps one match.
func (m *Mapper) Row(match model.Match) MatchRow {
	row := MatchRow{
		Fixture: match.CCode + " VS. " + match.VsCCode,
		Time:    InvalidDate,
		Hidden:  !match.Complete(),
	}
	if ts, ok := model.ParseMatchDate(match.Date, m.loc); ok {
		row.Time = ts.In(m.loc).Format(TimeLayout)
	}
	return row
}

// FormatValue renders a value as a price label without trailing zeros.
func FormatValue(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

// ImageURL is the image route for a player id.
func ImageURL(id string) string {
	return ImagePrefix + url.PathEscape(id) + ".jpg"
}
