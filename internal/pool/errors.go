package pool

import "fmt"

const (
	MsgDuplicatePicks    = "Duplicate picks detected! Please ensure each player is unique."
	MsgInvalidTiebreaker = "Tiebreaker must be a whole number of zero or more."
	MsgNameRequired      = "Please enter your name."
	MsgPickOutOfRange    = "Pick number must be between 1 and 32."
	MsgPlayerRequired    = "Please choose a player for this pick."
)

// ValidationError is a user-correctable problem with submitted input. Duplicates lists the pick
// numbers to flag in the form, if any.
type ValidationError struct {
	Message    string
	Duplicates []int
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidNameMessage(name string) string {
	return fmt.Sprintf("'%s' is not in the official suggestions. Please select only from the list.", name)
}
