package domain

import (
	"strings"
	"time"
)

// Sport keys follow the odds provider's naming
const (
	SportNHL = "icehockey_nhl"
	SportNBA = "basketball_nba"
	SportMLB = "baseball_mlb"
	SportNFL = "americanfootball_nfl"
)

// Sports returns every supported sport key
func Sports() []string {
	return []string{SportNHL, SportNBA, SportMLB, SportNFL}
}

// IsSupportedSport reports whether key names a supported sport
func IsSupportedSport(key string) bool {
	switch key {
	case SportNHL, SportNBA, SportMLB, SportNFL:
		return true
	}
	return false
}

// MarketH2H is the head-to-head (moneyline) market key
const MarketH2H = "h2h"

// Sport-specific stat keys carried in TeamStats.Stats
const (
	StatPointsFor     = "points_for"     // goals/points/runs scored per game
	StatPointsAgainst = "points_against" // goals/points/runs allowed per game
	StatOPS           = "ops"
	StatERA           = "era"
)

// Game is a scheduled matchup as delivered by the odds provider
type Game struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime time.Time   `json:"commence_time"`
	Bookmakers   []Bookmaker `json:"bookmakers,omitempty"`
}

// Bookmaker holds one book's markets for a game
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title,omitempty"`
	Markets []Market `json:"markets"`
}

// Market is a single betting market (h2h, spreads, totals)
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a priced selection; Price is decimal odds
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Involves reports whether team plays in this game
func (g Game) Involves(team string) bool {
	return strings.EqualFold(g.HomeTeam, team) || strings.EqualFold(g.AwayTeam, team)
}

// IsHome reports whether team is the home side
func (g Game) IsHome(team string) bool {
	return strings.EqualFold(g.HomeTeam, team)
}

// MoneylineOdds returns decimal h2h prices for both sides from the primary bookmaker.
// When primary is empty or absent the first listed bookmaker is used.
func (g Game) MoneylineOdds(primary string) (home, away float64, ok bool) {
	if len(g.Bookmakers) == 0 {
		return 0, 0, false
	}

	book := g.Bookmakers[0]
	if primary != "" {
		for _, b := range g.Bookmakers {
			if b.Key == primary {
				book = b
				break
			}
		}
	}

	for _, market := range book.Markets {
		if market.Key != MarketH2H {
			continue
		}
		for _, outcome := range market.Outcomes {
			switch {
			case strings.EqualFold(outcome.Name, g.HomeTeam):
				home = outcome.Price
			case strings.EqualFold(outcome.Name, g.AwayTeam):
				away = outcome.Price
			}
		}
	}

	// decimal odds below 1.0 are not valid prices
	if home <= 1 || away <= 1 {
		return 0, 0, false
	}
	return home, away, true
}

// TeamStats is the season snapshot for one team
type TeamStats struct {
	Team    string             `json:"team"`
	Record  string             `json:"record"`
	Streak  string             `json:"streak,omitempty"`
	LastTen string             `json:"last_ten,omitempty"`
	Stats   map[string]float64 `json:"stats,omitempty"`
}

// Stat returns a sport-specific stat when present
func (ts TeamStats) Stat(key string) (float64, bool) {
	if ts.Stats == nil {
		return 0, false
	}
	v, ok := ts.Stats[key]
	return v, ok
}

// Injury is a single injured-list entry
type Injury struct {
	Player   string `json:"player"`
	Position string `json:"position,omitempty"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

// H2H is the season series between two teams, from each side's perspective
type H2H struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Weather is current conditions at a venue
type Weather struct {
	TempF     float64 `json:"temp_f"`
	WindMPH   float64 `json:"wind_mph"`
	PrecipMM  float64 `json:"precip_mm"`
	Condition string  `json:"condition,omitempty"`
}

// Adverse reports conditions that hamper the visiting side
func (w Weather) Adverse() bool {
	return w.WindMPH >= 15 || w.PrecipMM > 0 || w.TempF < 40
}

// Pitcher is a probable starting pitcher with season rates
type Pitcher struct {
	Name string  `json:"name"`
	ERA  float64 `json:"era"`
	WHIP float64 `json:"whip"`
}

// Goalie is a projected starting goaltender
type Goalie struct {
	Name      string   `json:"name"`
	GAA       float64  `json:"gaa"`
	SavePct   float64  `json:"save_pct"`
	GSAx      *float64 `json:"gsax,omitempty"`
	Confirmed bool     `json:"confirmed"`
}

// SentimentSource names the tier that produced a sentiment score
type SentimentSource string

const (
	SentimentFlairSearch    SentimentSource = "flair_search"
	SentimentBroadSearch    SentimentSource = "broad_search"
	SentimentWinPctFallback SentimentSource = "win_pct_fallback"
)

// SentimentScore is a 1-10 fan sentiment reading for both sides
type SentimentScore struct {
	Home   float64         `json:"home"`
	Away   float64         `json:"away"`
	Source SentimentSource `json:"source"`
}
