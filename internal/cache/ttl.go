package cache

import (
	"fmt"
	"time"
)

// TTL per data class
const (
	DefaultTTL    = 1 * time.Hour
	OddsTTL       = 15 * time.Minute
	ScoreboardTTL = 1 * time.Minute
	TeamStatsTTL  = 1 * time.Hour
	StandingsTTL  = 24 * time.Hour
	InjuriesTTL   = 1 * time.Hour
	WeatherTTL    = DefaultTTL
	SentimentTTL  = 30 * time.Minute
	PitcherTTL    = 4 * time.Hour
	GoalieTTL     = 30 * time.Minute
	H2HTTL        = 4 * time.Hour
	BatchTTL      = 5 * time.Minute
)

// Key helpers keep the key space low-cardinality: one entry per sport/team/coordinate/game

func OddsKey(sport string) string { return fmt.Sprintf("odds:%s", sport) }

func ScheduleKey(sport string) string { return fmt.Sprintf("schedule:%s", sport) }

func TeamStatsKey(sport string) string { return fmt.Sprintf("teamstats:%s", sport) }

func TeamRatesKey(season int) string { return fmt.Sprintf("teamrates:%d", season) }

func InjuriesKey(sport string) string { return fmt.Sprintf("injuries:%s", sport) }

func WeatherKey(lat, lon float64) string { return fmt.Sprintf("weather:%.2f:%.2f", lat, lon) }

func SentimentKey(sport, home, away string) string {
	return fmt.Sprintf("sentiment:%s:%s:%s", sport, home, away)
}

func PitchersKey(date time.Time) string { return fmt.Sprintf("pitchers:%s", date.Format("2006-01-02")) }

func GoaliesKey(date time.Time) string { return fmt.Sprintf("goalies:%s", date.Format("2006-01-02")) }

func H2HKey(sport, home, away string) string { return fmt.Sprintf("h2h:%s:%s:%s", sport, home, away) }

func BatchKey(sport string) string { return fmt.Sprintf("batch:%s", sport) }
