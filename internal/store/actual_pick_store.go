package store

import (
	"context"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/jmoiron/sqlx"
)

const (
	upsertActualPickQuery = `
		INSERT INTO actual_picks (pick_number, player_name, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (pick_number)
		DO UPDATE SET player_name = excluded.player_name, updated_at = CURRENT_TIMESTAMP
	`
	getActualPickQuery    = "SELECT * FROM actual_picks WHERE pick_number = ?"
	deleteActualPickQuery = "DELETE FROM actual_picks WHERE pick_number = ?"
	listActualPicksQuery = "SELECT * FROM actual_picks ORDER BY pick_number ASC"
)

// UpsertActualPick records the drafted player. A nil player keeps the slot but marks it pending.
func (s *PoolStore) UpsertActualPick(ctx context.Context, tx *sqlx.Tx, pickNumber int, player *string) error {
	_, err := tx.ExecContext(ctx, upsertActualPickQuery, pickNumber, player)
	return err
}

func (s *PoolStore) GetActualPick(ctx context.Context, pickNumber int) (*pool.ActualPick, error) {
	var pick pool.ActualPick
	if err := s.db.GetContext(ctx, &pick, getActualPickQuery, pickNumber); err != nil {
		return nil, err
	}
	return &pick, nil
}

func (s *PoolStore) DeleteActualPick(ctx context.Context, tx *sqlx.Tx, pickNumber int) (int64, error) {
	res, err := tx.ExecContext(ctx, deleteActualPickQuery, pickNumber)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PoolStore) ListActualPicks(ctx context.Context) ([]pool.ActualPick, error) {
	var picks []pool.ActualPick
	err := s.db.SelectContext(ctx, &picks, listActualPicksQuery)
	return picks, err
}

func (s *PoolStore) ListActualPicksTx(ctx context.Context, tx *sqlx.Tx) ([]pool.ActualPick, error) {
	var picks []pool.ActualPick
	err := tx.SelectContext(ctx, &picks, listActualPicksQuery)
	return picks, err
}
