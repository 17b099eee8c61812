package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Team is a row of the canonical team directory
type Team struct {
	TeamID       int             `json:"team_id" db:"team_id"`
	League       string          `json:"league" db:"league"`
	Name         string          `json:"name" db:"name"`
	Abbreviation string          `json:"abbreviation" db:"abbreviation"`
	Aliases      []string        `json:"aliases" db:"aliases"`
	Community    sql.NullString  `json:"community,omitempty" db:"community"`
	Latitude     sql.NullFloat64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    sql.NullFloat64 `json:"longitude,omitempty" db:"longitude"`
	Outdoor      bool            `json:"outdoor" db:"outdoor"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// BatchSummary describes a stored prediction batch without its payload
type BatchSummary struct {
	BatchID     uuid.UUID `json:"batch_id" db:"batch_id"`
	Sport       string    `json:"sport" db:"sport"`
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
	GameCount   int       `json:"game_count" db:"game_count"`
}

// GamePrediction is one game's row within a stored batch
type GamePrediction struct {
	BatchID      uuid.UUID       `json:"batch_id" db:"batch_id"`
	GameID       string          `json:"game_id" db:"game_id"`
	Sport        string          `json:"sport" db:"sport"`
	HomeTeam     string          `json:"home_team" db:"home_team"`
	AwayTeam     string          `json:"away_team" db:"away_team"`
	CommenceTime time.Time       `json:"commence_time" db:"commence_time"`
	Winner       string          `json:"winner" db:"winner"`
	Confidence   string          `json:"confidence" db:"confidence"`
	HomeScore    float64         `json:"home_score" db:"home_score"`
	Factors      json.RawMessage `json:"factors" db:"factors"`
	GeneratedAt  time.Time       `json:"generated_at" db:"generated_at"`
}
