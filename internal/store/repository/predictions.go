package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/store"
)

// PredictionRepository persists prediction batches as JSONB
type PredictionRepository struct {
	db *store.Database
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *store.Database) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// SaveBatch stores the batch payload and one row per game in a transaction
func (r *PredictionRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO prediction_batches (batch_id, sport, generated_at, game_count, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (batch_id) DO NOTHING
	`, batch.ID, batch.Sport, batch.GeneratedAt, len(batch.Predictions), payload)
	if err != nil {
		return fmt.Errorf("inserting batch: %w", err)
	}

	for _, p := range batch.Predictions {
		factors, err := json.Marshal(p.Factors)
		if err != nil {
			return fmt.Errorf("encoding factors for %s: %w", p.Game.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO game_predictions (
				batch_id, game_id, sport, home_team, away_team, commence_time,
				winner, confidence, home_score, factors
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (batch_id, game_id) DO NOTHING
		`, batch.ID, p.Game.ID, batch.Sport, p.Game.HomeTeam, p.Game.AwayTeam, p.Game.CommenceTime,
			p.Winner, string(p.Confidence), p.HomeScore, factors)
		if err != nil {
			return fmt.Errorf("inserting prediction %s: %w", p.Game.ID, err)
		}
	}

	return tx.Commit()
}

// LatestBatch returns the most recently generated batch for sport
func (r *PredictionRepository) LatestBatch(ctx context.Context, sport string) (domain.Batch, error) {
	query := `
		SELECT payload
		FROM prediction_batches
		WHERE sport = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var payload []byte
	err := r.db.DB().QueryRowContext(ctx, query, sport).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Batch{}, fmt.Errorf("no batch for %s: %w", sport, store.ErrNotFound)
	}
	if err != nil {
		return domain.Batch{}, fmt.Errorf("querying latest batch: %w", err)
	}

	var batch domain.Batch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return domain.Batch{}, fmt.Errorf("decoding batch: %w", err)
	}
	return batch, nil
}

// History lists recent batches for sport, newest first
func (r *PredictionRepository) History(ctx context.Context, sport string, limit int) ([]store.BatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT batch_id, sport, generated_at, game_count
		FROM prediction_batches
		WHERE sport = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, sport, limit)
	if err != nil {
		return nil, fmt.Errorf("querying batch history: %w", err)
	}
	defer rows.Close()

	var out []store.BatchSummary
	for rows.Next() {
		var s store.BatchSummary
		if err := rows.Scan(&s.BatchID, &s.Sport, &s.GeneratedAt, &s.GameCount); err != nil {
			return nil, fmt.Errorf("scanning batch summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GameHistory returns every stored prediction for a game, newest first
func (r *PredictionRepository) GameHistory(ctx context.Context, gameID string) ([]store.GamePrediction, error) {
	query := `
		SELECT gp.batch_id, gp.game_id, gp.sport, gp.home_team, gp.away_team, gp.commence_time,
			gp.winner, gp.confidence, gp.home_score, gp.factors, pb.generated_at
		FROM game_predictions gp
		JOIN prediction_batches pb ON pb.batch_id = gp.batch_id
		WHERE gp.game_id = $1
		ORDER BY pb.generated_at DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying game history: %w", err)
	}
	defer rows.Close()

	var out []store.GamePrediction
	for rows.Next() {
		var p store.GamePrediction
		var factors []byte
		err := rows.Scan(
			&p.BatchID, &p.GameID, &p.Sport, &p.HomeTeam, &p.AwayTeam, &p.CommenceTime,
			&p.Winner, &p.Confidence, &p.HomeScore, &factors, &p.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game prediction: %w", err)
		}
		p.Factors = json.RawMessage(factors)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("game %s: %w", gameID, store.ErrNotFound)
	}
	return out, nil
}

// Prune deletes batches generated before cutoff; game rows cascade
func (r *PredictionRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM prediction_batches WHERE generated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning batches: %w", err)
	}
	return result.RowsAffected()
}
