package store

import (
	"context"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	upsertPredictionQuery = `
		INSERT INTO predictions (entrant_id, pick_number, predicted_player_name)
		VALUES (?, ?, ?)
		ON CONFLICT (entrant_id, pick_number)
		DO UPDATE SET predicted_player_name = excluded.predicted_player_name
	`
	getPredictionQuery   = "SELECT * FROM predictions WHERE entrant_id = ? AND pick_number = ?"
	clearPredictionQuery = `
		UPDATE predictions SET predicted_player_name = ''
		WHERE entrant_id = ? AND pick_number = ?
	`
	scorePredictionsQuery = `
		UPDATE predictions SET points_awarded = CASE
			WHEN ? != '' AND predicted_player_name = ? THEN pick_number
			ELSE 0
		END
		WHERE pick_number = ?
	`
	deletePredictionsForEntrantQuery = "DELETE FROM predictions WHERE entrant_id = ?"
	listPredictionsQuery             = "SELECT * FROM predictions ORDER BY entrant_id ASC, pick_number ASC"
	listPredictionsForEntrantQuery   = "SELECT * FROM predictions WHERE entrant_id = ? ORDER BY pick_number ASC"
	sumPointsQuery = "SELECT COALESCE(SUM(points_awarded), 0) FROM predictions WHERE entrant_id = ?"
)

// UpsertPrediction sets the predicted name for (entrant, pick), creating the row if needed.
// Points are left alone; rescoring sets them.
func (s *PoolStore) UpsertPrediction(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID, pickNumber int, player string) error {
	_, err := tx.ExecContext(ctx, upsertPredictionQuery, entrantID, pickNumber, player)
	return err
}

func (s *PoolStore) GetPredictionTx(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID, pickNumber int) (*pool.Prediction, error) {
	var prediction pool.Prediction
	if err := tx.GetContext(ctx, &prediction, getPredictionQuery, entrantID, pickNumber); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// ClearPrediction blanks the stored name but keeps the row. Does nothing if there is no row.
func (s *PoolStore) ClearPrediction(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID, pickNumber int) error {
	_, err := tx.ExecContext(ctx, clearPredictionQuery, entrantID, pickNumber)
	return err
}

func (s *PoolStore) DeletePredictionsForEntrant(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, deletePredictionsForEntrantQuery, entrantID)
	return err
}

func (s *PoolStore) ListPredictions(ctx context.Context) ([]pool.Prediction, error) {
	var predictions []pool.Prediction
	err := s.db.SelectContext(ctx, &predictions, listPredictionsQuery)
	return predictions, err
}

func (s *PoolStore) ListPredictionsForEntrant(ctx context.Context, entrantID uuid.UUID) ([]pool.Prediction, error) {
	var predictions []pool.Prediction
	err := s.db.SelectContext(ctx, &predictions, listPredictionsForEntrantQuery, entrantID)
	return predictions, err
}

// ScorePredictionsForPick awards pickNumber points to every prediction at that pick matching actual,
// and zero to the rest. An empty actual zeroes the whole pick.
func (s *PoolStore) ScorePredictionsForPick(ctx context.Context, tx *sqlx.Tx, pickNumber int, actual string) error {
	_, err := tx.ExecContext(ctx, scorePredictionsQuery, actual, actual, pickNumber)
	return err
}

func (s *PoolStore) SumPointsForEntrantTx(ctx context.Context, tx *sqlx.Tx, entrantID uuid.UUID) (int, error) {
	var total int
	err := tx.GetContext(ctx, &total, sumPointsQuery, entrantID)
	return total, err
}
