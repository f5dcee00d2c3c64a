package service

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/jmoiron/sqlx"
)

// ScoringEngine keeps prediction points and standings in line with the recorded actual picks.
// Both methods run inside the caller's transaction and never commit it.
type ScoringEngine interface {
	// RecalcForPick rescores every prediction at pickNumber against actualPlayer ("" = pending)
	// and then refreshes every entrant's total.
	RecalcForPick(ctx context.Context, tx *sqlx.Tx, pickNumber int, actualPlayer string) error
	// RecalcAll runs RecalcForPick for each recorded actual pick in pick order.
	RecalcAll(ctx context.Context, tx *sqlx.Tx) error
}

// FullRescore recomputes every entrant's total on each call, O(entrants × picks).
// Fine for a pool of a few hundred rows.
type FullRescore struct {
	store *store.PoolStore
}

func NewFullRescore(store *store.PoolStore) *FullRescore {
	return &FullRescore{store: store}
}

func (e *FullRescore) RecalcForPick(ctx context.Context, tx *sqlx.Tx, pickNumber int, actualPlayer string) error {
	if err := e.store.ScorePredictionsForPick(ctx, tx, pickNumber, actualPlayer); err != nil {
		return fmt.Errorf("failed to score pick %d: %w", pickNumber, err)
	}
	return e.refreshStandings(ctx, tx)
}

func (e *FullRescore) RecalcAll(ctx context.Context, tx *sqlx.Tx) error {
	picks, err := e.store.ListActualPicksTx(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to list actual picks: %w", err)
	}

	// Nothing recorded yet, but new entrants still need a standing row
	if len(picks) == 0 {
		return e.refreshStandings(ctx, tx)
	}

	for _, p := range picks {
		if err := e.RecalcForPick(ctx, tx, p.PickNumber, p.Player()); err != nil {
			return err
		}
	}
	return nil
}

func (e *FullRescore) refreshStandings(ctx context.Context, tx *sqlx.Tx) error {
	ids, err := e.store.ListEntrantIDsTx(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to list entrants: %w", err)
	}

	for _, id := range ids {
		total, err := e.store.SumPointsForEntrantTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to sum points for %s: %w", id, err)
		}
		if err := e.store.UpsertStanding(ctx, tx, id, total); err != nil {
			return fmt.Errorf("failed to update standing for %s: %w", id, err)
		}
	}
	return nil
}
