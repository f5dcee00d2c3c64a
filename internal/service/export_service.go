package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/AdamBeresnev/draft-pool/internal/utils"
	"github.com/google/uuid"
)

type ExportService struct {
	store *store.PoolStore
}

func NewExportService(store *store.PoolStore) *ExportService {
	return &ExportService{store: store}
}

var (
	standingsHeader   = []string{"rank", "entrant", "team", "tiebreaker", "total_score"}
	predictionsHeader = []string{"entrant", "team", "pick_number", "predicted_player", "points_awarded"}
)

// WriteCSV writes a Standings section, a blank line, then a Predictions section.
// Sections have different widths so readers need FieldsPerRecord = -1.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	scores, err := s.store.ListStandings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list standings: %w", err)
	}
	predictions, err := s.store.ListPredictions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list predictions: %w", err)
	}

	cw := csv.NewWriter(w)

	records := [][]string{{"Standings"}, standingsHeader}
	entrants := make(map[uuid.UUID]pool.Entrant, len(scores))
	for i, sc := range scores {
		entrants[sc.ID] = sc.Entrant
		tiebreaker := ""
		if sc.Tiebreaker != nil {
			tiebreaker = strconv.Itoa(*sc.Tiebreaker)
		}
		records = append(records, []string{
			strconv.Itoa(i + 1),
			sc.Name,
			utils.OrZero(sc.TeamName),
			tiebreaker,
			strconv.Itoa(sc.TotalScore),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write standings: %w", err)
	}

	// Blank line between the sections
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	records = [][]string{{"Predictions"}, predictionsHeader}
	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := entrants[predictions[i].EntrantID].Name, entrants[predictions[j].EntrantID].Name
		if a != b {
			return a < b
		}
		return predictions[i].PickNumber < predictions[j].PickNumber
	})
	for _, p := range predictions {
		e := entrants[p.EntrantID]
		records = append(records, []string{
			e.Name,
			utils.OrZero(e.TeamName),
			strconv.Itoa(p.PickNumber),
			p.PredictedPlayerName,
			strconv.Itoa(p.PointsAwarded),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	return nil
}
