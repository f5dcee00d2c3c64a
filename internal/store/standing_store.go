package store

import (
	"context"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	upsertStandingQuery = `
		INSERT INTO entrant_standings (entrant_id, total_score)
		VALUES (?, ?)
		ON CONFLICT (entrant_id)
		DO UPDATE SET total_score = excluded.total_score
	`
	getStandingQuery    = "SELECT * FROM entrant_standings WHERE entrant_id = ?"
	deleteStandingQuery = "DELETE FROM entrant_standings WHERE entrant_id = ?"
	// No secondary sort key: ties come back in whatever order sqlite picks.
	listStandingsQuery = `
		SELECT e.*, COALESCE(s.total_score, 0) AS total_score
		FROM entrants e
		LEFT JOIN entrant_standings s ON s.entrant_id = e.id
		ORDER BY COALESCE(s.total_score, 0) DESC
	`
)

func (s *PoolStore) UpsertStanding(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID, total int) error {
	_, err := tx.ExecContext(ctx, upsertStandingQuery, entrantID, total)
	return err
}

func (s *PoolStore) GetStanding(ctx context.Context, entrantID uuid.UUID) (*pool.Standing, error) {
	var standing pool.Standing
	if err := s.db.GetContext(ctx, &standing, getStandingQuery, entrantID); err != nil {
		return nil, err
	}
	return &standing, nil
}

func (s *PoolStore) DeleteStanding(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, deleteStandingQuery, entrantID)
	return err
}

// ListStandings returns every entrant with its total, highest first. Entrants without a standing row score 0.
func (s *PoolStore) ListStandings(ctx context.Context) ([]pool.EntrantScore, error) {
	var scores []pool.EntrantScore
	err := s.db.SelectContext(ctx, &scores, listStandingsQuery)
	return scores, err
}
