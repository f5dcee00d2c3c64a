package store

import (
	"context"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	getEntrantQuery           = "SELECT * FROM entrants WHERE id = ?"
	getEntrantByNameQuery     = "SELECT * FROM entrants WHERE name = ?"
	getEntrantByTeamNameQuery = `
		SELECT * FROM entrants
		WHERE team_name = ?
		ORDER BY created_at ASC, name ASC
		LIMIT 1
	`
	createEntrantQuery = `
		INSERT INTO entrants (id, name, team_name, tiebreaker) VALUES
		(:id, :name, :team_name, :tiebreaker)
	`
	updateEntrantQuery = `
		UPDATE entrants SET
		team_name = :team_name,
		tiebreaker = :tiebreaker
		WHERE id = :id
	`
	deleteEntrantQuery = "DELETE FROM entrants WHERE id = ?"
	listEntrantIDsQuery = "SELECT id FROM entrants ORDER BY name ASC"
	listEntrantsQuery   = "SELECT * FROM entrants ORDER BY name ASC"
	listTeamNamesQuery = `
		SELECT DISTINCT team_name FROM entrants
		WHERE team_name IS NOT NULL AND team_name != ''
		ORDER BY team_name ASC
	`
)

func (s *PoolStore) CreateEntrant(ctx context.Context, tx *sqlx.Tx, entrant *pool.Entrant) error {
	_, err := tx.NamedExecContext(ctx, createEntrantQuery, entrant)
	return err
}

func (s *PoolStore) UpdateEntrant(ctx context.Context, tx *sqlx.Tx, entrant *pool.Entrant) error {
	_, err := tx.NamedExecContext(ctx, updateEntrantQuery, entrant)
	return err
}

func (s *PoolStore) GetEntrantTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*pool.Entrant, error) {
	var entrant pool.Entrant
	if err := tx.GetContext(ctx, &entrant, getEntrantQuery, id); err != nil {
		return nil, err
	}
	return &entrant, nil
}

func (s *PoolStore) GetEntrantByNameTx(ctx context.Context, tx *sqlx.Tx, name string) (*pool.Entrant, error) {
	var entrant pool.Entrant
	if err := tx.GetContext(ctx, &entrant, getEntrantByNameQuery, name); err != nil {
		return nil, err
	}
	return &entrant, nil
}

// GetEntrantByTeamName returns the oldest entrant using teamName. Team names are not unique.
func (s *PoolStore) GetEntrantByTeamName(ctx context.Context, teamName string) (*pool.Entrant, error) {
	var entrant pool.Entrant
	if err := s.db.GetContext(ctx, &entrant, getEntrantByTeamNameQuery, teamName); err != nil {
		return nil, err
	}
	return &entrant, nil
}

func (s *PoolStore) GetEntrantByTeamNameTx(ctx context.Context, tx *sqlx.Tx, teamName string) (*pool.Entrant, error) {
	var entrant pool.Entrant
	if err := tx.GetContext(ctx, &entrant, getEntrantByTeamNameQuery, teamName); err != nil {
		return nil, err
	}
	return &entrant, nil
}

// DeleteEntrant removes the entrant row. Predictions and standing go with it through ON DELETE CASCADE.
func (s *PoolStore) DeleteEntrant(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (int64, error) {
	res, err := tx.ExecContext(ctx, deleteEntrantQuery, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PoolStore) ListEntrantIDsTx(ctx context.Context, tx *sqlx.Tx) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.SelectContext(ctx, &ids, listEntrantIDsQuery)
	return ids, err
}

func (s *PoolStore) ListEntrants(ctx context.Context) ([]pool.Entrant, error) {
	var entrants []pool.Entrant
	err := s.db.SelectContext(ctx, &entrants, listEntrantsQuery)
	return entrants, err
}

func (s *PoolStore) ListTeamNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, listTeamNamesQuery)
	return names, err
}
