package views

import (
	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/service"
	"github.com/AdamBeresnev/draft-pool/internal/utils"
)

// Recorded picks are shown in tables this many columns wide.
const PicksPerTable = 10

type CellStatus string

const (
	CellCorrect   CellStatus = "correct"
	CellIncorrect CellStatus = "incorrect"
	CellPending   CellStatus = "pending-cell"
	CellEmpty     CellStatus = ""
)

type PickCell struct {
	Predicted string
	Status    CellStatus
}

type PickRow struct {
	Entrant string
	Cells   []PickCell
}

type PickTable struct {
	First int
	Last  int
	Picks []pool.ActualPick
	Rows  []PickRow
}

type StandingsPage struct {
	Nav
	Flash    string
	Entrants []pool.EntrantScore
	Tables   []PickTable
}

func cellFor(predicted string, actual string) PickCell {
	switch {
	case predicted == "":
		return PickCell{Status: CellEmpty}
	case actual == "":
		return PickCell{Predicted: predicted, Status: CellPending}
	case predicted == actual:
		return PickCell{Predicted: predicted, Status: CellCorrect}
	default:
		return PickCell{Predicted: predicted, Status: CellIncorrect}
	}
}

func PrepareStandings(nav Nav, flash string, data *service.StandingsData) StandingsPage {
	page := StandingsPage{
		Nav:      nav,
		Flash:    flash,
		Entrants: data.Entrants,
	}

	for _, chunk := range utils.Chunk(data.ActualPicks, PicksPerTable) {
		table := PickTable{
			First: chunk[0].PickNumber,
			Last:  chunk[len(chunk)-1].PickNumber,
			Picks: chunk,
		}
		for _, e := range data.Entrants {
			row := PickRow{Entrant: e.DisplayName()}
			for _, pick := range chunk {
				row.Cells = append(row.Cells, cellFor(data.Prediction(e.ID, pick.PickNumber), pick.Player()))
			}
			table.Rows = append(table.Rows, row)
		}
		page.Tables = append(page.Tables, table)
	}

	return page
}

func playerOrPending(player string) string {
	if player == "" {
		return "Pending"
	}
	return player
}
