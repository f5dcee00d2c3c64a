package pool

import (
	"sort"
	"strconv"
	"strings"
)

// PickMap maps a pick number to the submitted player name. "" means the slot was left blank.
type PickMap map[int]string

// Catalog is the allow-list the validator checks names against.
type Catalog interface {
	IsValidName(name string) bool
}

type InvalidPick struct {
	PickNumber int
	Name       string
}

// Submission is a pick set as it arrived from the form, before any parsing.
type Submission struct {
	EntrantName string
	TeamName    string
	Tiebreaker  string
	Picks       PickMap
}

// FindDuplicates returns every pick number whose player also appears under another pick, sorted.
func FindDuplicates(picks PickMap) []int {
	used := make(map[string][]int)
	for pickNumber, player := range picks {
		if player == "" {
			continue
		}
		used[player] = append(used[player], pickNumber)
	}

	var duplicates []int
	for _, pickNumbers := range used {
		if len(pickNumbers) > 1 {
			duplicates = append(duplicates, pickNumbers...)
		}
	}
	sort.Ints(duplicates)
	return duplicates
}

func FindInvalidNames(picks PickMap, catalog Catalog) []InvalidPick {
	var invalid []InvalidPick
	for pickNumber, player := range picks {
		if player != "" && !catalog.IsValidName(player) {
			invalid = append(invalid, InvalidPick{PickNumber: pickNumber, Name: player})
		}
	}
	sort.Slice(invalid, func(i, j int) bool {
		return invalid[i].PickNumber < invalid[j].PickNumber
	})
	return invalid
}

// ParseTiebreaker returns nil for a blank value. Only plain digits are accepted, no sign.
func ParseTiebreaker(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "+") {
		return nil, &ValidationError{Message: MsgInvalidTiebreaker}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, &ValidationError{Message: MsgInvalidTiebreaker}
	}
	return &n, nil
}

// ValidatePicks runs the duplicate check and then the catalog check, reporting only the first that fails.
func ValidatePicks(picks PickMap, catalog Catalog) error {
	if duplicates := FindDuplicates(picks); len(duplicates) > 0 {
		return &ValidationError{Message: MsgDuplicatePicks, Duplicates: duplicates}
	}
	if invalid := FindInvalidNames(picks, catalog); len(invalid) > 0 {
		return &ValidationError{Message: invalidNameMessage(invalid[0].Name)}
	}
	return nil
}

// ValidateSubmission checks tiebreaker, duplicates, catalog membership and entrant name, in that order.
func ValidateSubmission(s Submission, catalog Catalog) error {
	if _, err := ParseTiebreaker(s.Tiebreaker); err != nil {
		return err
	}
	if err := ValidatePicks(s.Picks, catalog); err != nil {
		return err
	}
	if strings.TrimSpace(s.EntrantName) == "" {
		return &ValidationError{Message: MsgNameRequired}
	}
	return nil
}

// ValidateActualPick checks an admin-recorded result.
func ValidateActualPick(pickNumber int, player string, catalog Catalog) error {
	if !ValidPickNumber(pickNumber) {
		return &ValidationError{Message: MsgPickOutOfRange}
	}
	if player == "" {
		return &ValidationError{Message: MsgPlayerRequired}
	}
	if !catalog.IsValidName(player) {
		return &ValidationError{Message: invalidNameMessage(player)}
	}
	return nil
}
