package game

// ModalID names a dialog the front end can show.
type ModalID string

const (
	ModalMission   ModalID = "mission"
	ModalChallenge ModalID = "challenge"
	ModalShop      ModalID = "shop"
	ModalMinigame  ModalID = "minigame"
)

// Display is the numeric status shown alongside the game.
type Display struct {
	Carrots int `json:"carrots"`
}

// Notifier receives short player-facing messages.
type Notifier interface {
	ShowNotification(msg string)
}

// UI is everything the game core asks of a front end. Implementations must
// not call back into the session.
type UI interface {
	Notifier
	UpdateDisplay(d Display)
	OpenModal(id ModalID, view any)
	CloseModal(id ModalID)
}
