package pool

import (
	"time"

	"github.com/google/uuid"
)

// Picks run 1..MaxPickNumber and a correct guess is worth its pick number in points.
const MaxPickNumber = 32

func ValidPickNumber(n int) bool {
	return n >= 1 && n <= MaxPickNumber
}

type Prediction struct {
	ID                  int64     `db:"id"`
	EntrantID           uuid.UUID `db:"entrant_id"`
	PickNumber          int       `db:"pick_number"`
	PredictedPlayerName string    `db:"predicted_player_name"`
	PointsAwarded       int       `db:"points_awarded"`
}

type ActualPick struct {
	PickNumber int       `db:"pick_number"`
	PlayerName *string   `db:"player_name"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Player is the drafted name or "" while the pick is still pending.
func (a *ActualPick) Player() string {
	if a.PlayerName == nil {
		return ""
	}
	return *a.PlayerName
}

// Points awarded to a prediction of predicted at pickNumber when actual was drafted there.
// A pending pick (empty actual) never scores.
func Points(pickNumber int, predicted, actual string) int {
	if actual != "" && predicted == actual {
		return pickNumber
	}
	return 0
}
