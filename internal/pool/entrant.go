package pool

import (
	"time"

	"github.com/google/uuid"
)

type Entrant struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	TeamName   *string   `db:"team_name"`
	Tiebreaker *int      `db:"tiebreaker"`
	CreatedAt  time.Time `db:"created_at"`
}

// DisplayName is "Name (Team)" or just the name when no team was given.
func (e *Entrant) DisplayName() string {
	if e.TeamName == nil || *e.TeamName == "" {
		return e.Name
	}
	return e.Name + " (" + *e.TeamName + ")"
}

// EntrantScore is an entrant joined with its standing. TotalScore is 0 when no standing row exists yet.
type EntrantScore struct {
	Entrant
	TotalScore int `db:"total_score"`
}

type Standing struct {
	EntrantID  uuid.UUID `db:"entrant_id"`
	TotalScore int       `db:"total_score"`
}
