package espn

import (
	"time"

	"github.com/fortuna/augur/internal/domain"
)

// SportPaths maps sport keys to ESPN URL segments
var SportPaths = map[string]string{
	domain.SportNHL: "hockey/nhl",
	domain.SportNBA: "basketball/nba",
	domain.SportMLB: "baseball/mlb",
	domain.SportNFL: "football/nfl",
}

// TeamMeta captures ESPN team identifiers needed for mapping.
type TeamMeta struct {
	Abbreviation string
	ESPNID       string
	DisplayName  string
}

// ParsedGame is one scoreboard or schedule event
type ParsedGame struct {
	ID         string
	Date       time.Time
	Status     string
	Home       TeamMeta
	Away       TeamMeta
	HomeScore  int
	AwayScore  int
	HomeWinner bool
	AwayWinner bool
}

// ParsedStanding is one team's standings entry
type ParsedStanding struct {
	Team          TeamMeta
	Wins          int
	Losses        int
	OTLosses      int
	Streak        string
	LastTen       string
	GamesPlayed   float64
	PointsFor     float64
	PointsAgainst float64
}

// ParsedInjury is one injury-report row tagged with the team label ESPN used
type ParsedInjury struct {
	Team   string
	Injury domain.Injury
}
