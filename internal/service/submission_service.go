package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/AdamBeresnev/draft-pool/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SubmissionService struct {
	db      *sqlx.DB
	store   *store.PoolStore
	scoring ScoringEngine
	catalog pool.Catalog
}

func NewSubmissionService(db *sqlx.DB, store *store.PoolStore, scoring ScoringEngine, catalog pool.Catalog) *SubmissionService {
	return &SubmissionService{db: db, store: store, scoring: scoring, catalog: catalog}
}

// SubmitPicks validates the submission and, only if it passes, saves the entrant and its picks
// and rescores the whole pool in one transaction. Validation failures come back as *pool.ValidationError.
func (s *SubmissionService) SubmitPicks(ctx context.Context, in pool.Submission) (*pool.Entrant, error) {
	if err := pool.ValidateSubmission(in, s.catalog); err != nil {
		return nil, err
	}
	tiebreaker, _ := pool.ParseTiebreaker(in.Tiebreaker)
	name := strings.TrimSpace(in.EntrantName)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entrant, err := s.store.GetEntrantByNameTx(ctx, tx, name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		entrant = &pool.Entrant{
			ID:         uuid.New(),
			Name:       name,
			TeamName:   utils.StringOrNil(in.TeamName),
			Tiebreaker: tiebreaker,
		}
		if err := s.store.CreateEntrant(ctx, tx, entrant); err != nil {
			return nil, fmt.Errorf("failed to create entrant: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to look up entrant: %w", err)
	default:
		// Blank fields keep what was stored before
		if team := utils.StringOrNil(in.TeamName); team != nil {
			entrant.TeamName = team
		}
		if tiebreaker != nil {
			entrant.Tiebreaker = tiebreaker
		}
		if err := s.store.UpdateEntrant(ctx, tx, entrant); err != nil {
			return nil, fmt.Errorf("failed to update entrant: %w", err)
		}
	}

	for pickNumber := 1; pickNumber <= pool.MaxPickNumber; pickNumber++ {
		player := in.Picks[pickNumber]
		if player == "" {
			continue
		}
		if err := s.store.UpsertPrediction(ctx, tx, entrant.ID, pickNumber, player); err != nil {
			return nil, fmt.Errorf("failed to save pick %d: %w", pickNumber, err)
		}
	}

	if err := s.scoring.RecalcAll(ctx, tx); err != nil {
		return nil, err
	}

	return entrant, tx.Commit()
}

type TeamPicks struct {
	Entrant *pool.Entrant
	Picks   pool.PickMap
}

func (s *SubmissionService) TeamNames(ctx context.Context, admin pool.AdminContext) ([]string, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.store.ListTeamNames(ctx)
}

// TeamPredictions loads the current picks of the entrant behind teamName for the editor.
func (s *SubmissionService) TeamPredictions(ctx context.Context, admin pool.AdminContext, teamName string) (*TeamPicks, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	entrant, err := s.store.GetEntrantByTeamName(ctx, teamName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	predictions, err := s.store.ListPredictionsForEntrant(ctx, entrant.ID)
	if err != nil {
		return nil, err
	}

	picks := make(pool.PickMap, len(predictions))
	for _, p := range predictions {
		picks[p.PickNumber] = p.PredictedPlayerName
	}
	return &TeamPicks{Entrant: entrant, Picks: picks}, nil
}

// SaveTeam overwrites all 32 slots of the entrant behind teamName. A blank slot clears the stored
// name but keeps the prediction row.
func (s *SubmissionService) SaveTeam(ctx context.Context, admin pool.AdminContext, teamName string, picks pool.PickMap) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entrant, err := s.store.GetEntrantByTeamNameTx(ctx, tx, teamName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up team: %w", err)
	}

	if err := pool.ValidatePicks(picks, s.catalog); err != nil {
		return err
	}

	for pickNumber := 1; pickNumber <= pool.MaxPickNumber; pickNumber++ {
		player := picks[pickNumber]
		if player == "" {
			err = s.store.ClearPrediction(ctx, tx, entrant.ID, pickNumber)
		} else {
			err = s.store.UpsertPrediction(ctx, tx, entrant.ID, pickNumber, player)
		}
		if err != nil {
			return fmt.Errorf("failed to save pick %d: %w", pickNumber, err)
		}
	}

	if err := s.scoring.RecalcAll(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}
