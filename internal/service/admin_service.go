package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// AdminService holds the actions only the pool admin may take. Every method refuses with
// ErrUnauthorized before touching anything when the AdminContext was not granted.
type AdminService struct {
	db      *sqlx.DB
	store   *store.PoolStore
	scoring ScoringEngine
	catalog pool.Catalog
}

func NewAdminService(db *sqlx.DB, store *store.PoolStore, scoring ScoringEngine, catalog pool.Catalog) *AdminService {
	return &AdminService{db: db, store: store, scoring: scoring, catalog: catalog}
}

type PanelData struct {
	ActualPicks []pool.ActualPick
	Entrants    []pool.Entrant
}

func (s *AdminService) Panel(ctx context.Context, admin pool.AdminContext) (*PanelData, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	picks, err := s.store.ListActualPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list actual picks: %w", err)
	}
	entrants, err := s.store.ListEntrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entrants: %w", err)
	}

	return &PanelData{ActualPicks: picks, Entrants: entrants}, nil
}

func (s *AdminService) RecordActualPick(ctx context.Context, admin pool.AdminContext, pickNumber int, player string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if err := pool.ValidateActualPick(pickNumber, player, s.catalog); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.UpsertActualPick(ctx, tx, pickNumber, &player); err != nil {
		return fmt.Errorf("failed to record pick %d: %w", pickNumber, err)
	}
	if err := s.scoring.RecalcForPick(ctx, tx, pickNumber, player); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("actual pick recorded", "pick", pickNumber, "player", player)
	return nil
}

// ClearActualPick puts a pick back to pending and takes away any points it gave out.
func (s *AdminService) ClearActualPick(ctx context.Context, admin pool.AdminContext, pickNumber int) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if !pool.ValidPickNumber(pickNumber) {
		return &pool.ValidationError{Message: pool.MsgPickOutOfRange}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.store.DeleteActualPick(ctx, tx, pickNumber); err != nil {
		return fmt.Errorf("failed to delete pick %d: %w", pickNumber, err)
	}
	if err := s.scoring.RecalcForPick(ctx, tx, pickNumber, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("actual pick cleared", "pick", pickNumber)
	return nil
}

func (s *AdminService) DeleteEntrant(ctx context.Context, admin pool.AdminContext, entrantID uuid.UUID) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entrant, err := s.store.GetEntrantTx(ctx, tx, entrantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get entrant: %w", err)
	}

	if err := s.store.DeletePredictionsForEntrant(ctx, tx, entrant.ID); err != nil {
		return fmt.Errorf("failed to delete predictions: %w", err)
	}
	if err := s.store.DeleteStanding(ctx, tx, entrant.ID); err != nil {
		return fmt.Errorf("failed to delete standing: %w", err)
	}
	if _, err := s.store.DeleteEntrant(ctx, tx, entrant.ID); err != nil {
		return fmt.Errorf("failed to delete entrant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("entrant deleted", "entrant_id", entrant.ID, "name", entrant.Name)
	return nil
}

func (s *AdminService) RecalculateAll(ctx context.Context, admin pool.AdminContext) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.scoring.RecalcAll(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}
