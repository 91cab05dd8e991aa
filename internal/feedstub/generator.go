package feedstub

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/playerboard/internal/domain/model"
)

// Constants for random value generation.
const (
	randomFloatDivisor = 1000000
	valueMin           = 4.0
	valueRange         = 8.0
	maxMatches         = 3
	// one in incompleteOneIn matches is delivered broken
	incompleteOneIn = 4
	matchDateLayout = "2006-01-02T15:04:05"
)

var (
	firstNames = []string{"Lionel", "Cristiano", "Kylian", "Erling", "Kevin", "Mohamed", "Vinicius", "Jude", "Harry", "Luka", "Bukayo", "Pedri"}
	lastNames  = []string{"Messi", "Ronaldo", "Mbappé", "Haaland", "De Bruyne", "Salah", "Júnior", "Bellingham", "Kane", "Modrić", "Saka", "González"}
	skills     = []string{"Forward", "Winger", "Playmaker", "Box-to-box", "Target man", "Defensive midfielder"}
	countries  = []string{"ARG", "POR", "FRA", "NOR", "BEL", "EGY", "BRA", "ENG", "CRO", "ESP"}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomIndex(n int) int {
	i, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(i.Int64())
}

func pick(values []string) string {
	return values[randomIndex(len(values))]
}

// Generate creates n players with unique ids. Match dates start after now.
func Generate(n int, now time.Time) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		name := pick(firstNames) + " " + pick(lastNames)
		players[i] = model.Player{
			ID:        uuid.New().String(),
			PFName:    name,
			TName:     name,
			SkillDesc: pick(skills),
			// two decimals, like the upstream's prices
			Value:   roundCents(valueMin + getRandomFloat()*valueRange),
			Matches: generateMatches(now),
		}
	}
	return players
}

func generateMatches(now time.Time) []model.Match {
	count := randomIndex(maxMatches + 1)
	if count == 0 {
		return nil
	}
	matches := make([]model.Match, count)
	for i := range matches {
		kickoff := now.Add(time.Duration(24*(i+1)+randomIndex(12)) * time.Hour).Truncate(time.Minute)
		m := model.Match{
			Date:    kickoff.Format(matchDateLayout),
			CCode:   pick(countries),
			VsCCode: pick(countries),
		}
		if randomIndex(incompleteOneIn) == 0 {
			breakMatch(&m)
		}
		matches[i] = m
	}
	return matches
}

// breakMatch drops one field so the board renders the row hidden.
func breakMatch(m *model.Match) {
	switch randomIndex(3) {
	case 0:
		m.Date = ""
	case 1:
		m.CCode = ""
	default:
		m.VsCCode = ""
	}
}

func roundCents(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return f
}
