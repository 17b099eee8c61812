package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/fortuna/augur/internal/store"
	"github.com/fortuna/augur/internal/teams"
)

// TeamRepository mirrors the canonical team directory into Atlas
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Sync upserts every identity and returns the number written
func (r *TeamRepository) Sync(ctx context.Context, identities []teams.TeamIdentity) (int, error) {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO teams (league, name, abbreviation, aliases, community, latitude, longitude, outdoor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (league, name) DO UPDATE SET
			abbreviation = EXCLUDED.abbreviation,
			aliases = EXCLUDED.aliases,
			community = EXCLUDED.community,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			outdoor = EXCLUDED.outdoor,
			updated_at = NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range identities {
		_, err := stmt.ExecContext(ctx,
			t.League, t.Name, t.Abbreviation, pq.Array(t.Aliases),
			sql.NullString{String: t.Community, Valid: t.Community != ""},
			t.Latitude, t.Longitude, t.Outdoor,
		)
		if err != nil {
			return 0, fmt.Errorf("upserting %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(identities), nil
}

// GetByLeague returns a league's teams ordered by abbreviation
func (r *TeamRepository) GetByLeague(ctx context.Context, league string) ([]*store.Team, error) {
	query := `
		SELECT team_id, league, name, abbreviation, aliases, community,
			latitude, longitude, outdoor, updated_at
		FROM teams
		WHERE league = $1
		ORDER BY abbreviation
	`

	rows, err := r.db.DB().QueryContext(ctx, query, league)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var out []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.League, &team.Name, &team.Abbreviation,
			pq.Array(&team.Aliases), &team.Community,
			&team.Latitude, &team.Longitude, &team.Outdoor, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		out = append(out, team)
	}

	return out, rows.Err()
}
