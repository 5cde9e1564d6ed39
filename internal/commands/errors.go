package commands

import (
	"errors"

	"github.com/pixil98/go-cavia/internal/game"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// gameMessages translates game errors a player can cause into what they see.
var gameMessages = []struct {
	err error
	msg string
}{
	{game.ErrUnknownItem, "Dat ken ik niet."},
	{game.ErrUnknownWorld, "Die wereld bestaat niet."},
	{game.ErrNotAtHome, "Dat kan alleen thuis."},
	{game.ErrItemNotHeld, "Dat heb je niet bij je."},
	{game.ErrNoMissionOpen, "Praat eerst met iemand die een missie heeft."},
	{game.ErrUnknownHolder, "Die is hier niet."},
	{game.ErrChallengeState, "Dat kan nu niet."},
	{game.ErrNotInWheel, "Loop eerst het hamsterrad in."},
	{game.ErrNoMinigame, "Daar kun je geen spelletje mee spelen."},
	{game.ErrNotPlaying, "Je speelt geen spelletje."},
}

// fromGame turns player-caused game errors into UserErrors. Anything else
// is returned as is and ends the session.
func fromGame(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range gameMessages {
		if errors.Is(err, m.err) {
			return NewUserError(m.msg)
		}
	}
	return err
}
