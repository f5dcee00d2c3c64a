package service

import (
	"context"
	"log/slog"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type StandingsService struct {
	store *store.PoolStore
}

func NewStandingsService(store *store.PoolStore) *StandingsService {
	return &StandingsService{store: store}
}

type StandingsData struct {
	Entrants    []pool.EntrantScore
	ActualPicks []pool.ActualPick
	// Predictions[entrantID][pickNumber] is the predicted player name
	Predictions map[uuid.UUID]map[int]string
}

func (d *StandingsData) Prediction(entrantID uuid.UUID, pickNumber int) string {
	return d.Predictions[entrantID][pickNumber]
}

// GetStandings never fails. A query that errors is logged and its part of the page is left empty,
// so a fresh or broken database just shows "no data yet". The goroutines never return an error.
func (s *StandingsService) GetStandings(ctx context.Context) *StandingsData {
	data := &StandingsData{Predictions: make(map[uuid.UUID]map[int]string)}

	var predictions []pool.Prediction
	var g errgroup.Group

	g.Go(func() error {
		picks, err := s.store.ListActualPicks(ctx)
		if err != nil {
			slog.Warn("actual picks not available yet", "error", err)
			return nil
		}
		data.ActualPicks = picks
		return nil
	})
	g.Go(func() error {
		scores, err := s.store.ListStandings(ctx)
		if err != nil {
			slog.Warn("standings query failed", "error", err)
			return nil
		}
		data.Entrants = scores
		return nil
	})
	g.Go(func() error {
		preds, err := s.store.ListPredictions(ctx)
		if err != nil {
			slog.Warn("predictions query failed", "error", err)
			return nil
		}
		predictions = preds
		return nil
	})
	g.Wait()

	for _, p := range predictions {
		if _, ok := data.Predictions[p.EntrantID]; !ok {
			data.Predictions[p.EntrantID] = make(map[int]string)
		}
		data.Predictions[p.EntrantID][p.PickNumber] = p.PredictedPlayerName
	}

	return data
}
