package game

import "errors"

var (
	ErrUnknownItem      = errors.New("unknown item")
	ErrUnknownWorld     = errors.New("unknown world")
	ErrNotAtHome        = errors.New("items can only be placed at home")
	ErrItemNotHeld      = errors.New("item not in inventory")
	ErrNoMissionOpen    = errors.New("no mission open")
	ErrUnknownHolder    = errors.New("nobody here by that name")
	ErrChallengeState   = errors.New("challenge not in the right state")
	ErrEmptyMissionPool = errors.New("mission pool is empty")
	ErrSessionClosed    = errors.New("session closed")
	ErrNotInWheel       = errors.New("not standing in the hamster wheel")
	ErrNoMinigame       = errors.New("item has no minigame")
	ErrNotPlaying       = errors.New("no minigame running")
)
