// Package model contains the player feed models shared across layers.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFieldType is returned when a feed field has a JSON type it cannot be
// read as.
var ErrFieldType = errors.New("unsupported field type")

// Player is one entry of the remote player feed. Field names follow the
// feed's wire format. Players are never mutated after they are fetched.
type Player struct {
	ID        string  `json:"Id"`
	PFName    string  `json:"PFName"`    // display name
	TName     string  `json:"TName"`     // name
	SkillDesc string  `json:"SkillDesc"` // skill description, e.g. "Batsman"
	Value     float64 `json:"Value"`     // monetary value
	Matches   []Match `json:"UpComingMatchesList,omitempty"`
}

// Match is an upcoming fixture listed under a player.
type Match struct {
	Date    string `json:"MDate"`   // as delivered by the feed
	CCode   string `json:"CCode"`   // home competitor code
	VsCCode string `json:"VsCCode"` // visiting competitor code
}

// Feed is the envelope returned by the remote API.
type Feed struct {
	PlayerList []Player `json:"playerList"`
}

// UnmarshalJSON reads a feed player. Id may arrive as a string or a number
// and Value as a number or a numeric string; both are kept as the feed
// meant them rather than failing the whole payload.
func (p *Player) UnmarshalJSON(b []byte) error {
	type plain Player
	aux := struct {
		*plain
		ID    json.RawMessage `json:"Id"`
		Value json.RawMessage `json:"Value"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return fmt.Errorf("Id: %w", err)
	}
	value, err := decodeValue(aux.Value)
	if err != nil {
		return fmt.Errorf("Value: %w", err)
	}
	p.ID, p.Value = id, value
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrFieldType, raw)
}

// decodeValue coerces Value to a number. Missing, null and non-numeric
// strings read as 0 so one odd player cannot empty the board.
func decodeValue(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, nil
		}
		return v, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrFieldType, raw)
	}
	return v, nil
}

// Layouts accepted for Match.Date, tried in order. They cover ISO dates
// with or without an offset, slash dates and US style month/day dates.
// Zone-less layouts are interpreted in the caller's location.
var matchDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 pm",
	"1/2/2006 15:04:05",
	"1/2/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseMatchDate parses a feed date in loc.
func ParseMatchDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range matchDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Complete reports whether the match carries a date and both competitor
// codes. A date that is present but unreadable still counts. Incomplete
// matches are still shown, just suppressed.
func (m Match) Complete() bool {
	return strings.TrimSpace(m.Date) != "" && m.CCode != "" && m.VsCCode != ""
}
