package views

import (
	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/service"
)

type PickSlot struct {
	Number    int
	Value     string
	Duplicate bool
}

// PicksForm is the 32-slot pick form, filled with whatever the user last typed.
type PicksForm struct {
	Nav
	Error       string
	EntrantName string
	TeamName    string
	Tiebreaker  string
	Slots       []PickSlot
	PlayerNames []string
}

func NewPicksForm(nav Nav, players []string, in pool.Submission, err *pool.ValidationError) PicksForm {
	form := PicksForm{
		Nav:         nav,
		EntrantName: in.EntrantName,
		TeamName:    in.TeamName,
		Tiebreaker:  in.Tiebreaker,
		Slots:       slots(in.Picks, err),
		PlayerNames: players,
	}
	if err != nil {
		form.Error = err.Message
	}
	return form
}

func slots(picks pool.PickMap, err *pool.ValidationError) []PickSlot {
	duplicates := make(map[int]bool)
	if err != nil {
		for _, n := range err.Duplicates {
			duplicates[n] = true
		}
	}

	out := make([]PickSlot, 0, pool.MaxPickNumber)
	for n := 1; n <= pool.MaxPickNumber; n++ {
		out = append(out, PickSlot{Number: n, Value: picks[n], Duplicate: duplicates[n]})
	}
	return out
}

type EditTeamPage struct {
	Nav
	TeamName    string
	Found       bool
	EntrantName string
	Error       string
	Slots       []PickSlot
	PlayerNames []string
}

func NewEditTeamPage(nav Nav, players []string, teamName string, team *service.TeamPicks, picks pool.PickMap, err *pool.ValidationError) EditTeamPage {
	page := EditTeamPage{
		Nav:         nav,
		TeamName:    teamName,
		Found:       team != nil,
		PlayerNames: players,
	}
	if team == nil {
		return page
	}
	if picks == nil {
		picks = team.Picks
	}
	page.EntrantName = team.Entrant.Name
	page.Slots = slots(picks, err)
	if err != nil {
		page.Error = err.Message
	}
	return page
}

type AdminPage struct {
	Nav
	Flash       string
	ActualPicks []pool.ActualPick
	Entrants    []pool.Entrant
	PlayerNames []string
	MaxPick     int
}

type TeamSelectPage struct {
	Nav
	Teams []string
}
