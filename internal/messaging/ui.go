package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-cavia/internal/game"
)

// EventType names what a UI event asks the front end to do.
type EventType string

const (
	EventNotification EventType = "notification"
	EventDisplay      EventType = "display"
	EventModalOpen    EventType = "modal_open"
	EventModalClose   EventType = "modal_close"
	// EventText carries command output that is not part of the game UI.
	EventText EventType = "text"
)

// Event is the envelope every UI event is published in.
type Event struct {
	Type    EventType       `json:"type"`
	Message string          `json:"message,omitempty"`
	Display *game.Display   `json:"display,omitempty"`
	Modal   game.ModalID    `json:"modal,omitempty"`
	View    json.RawMessage `json:"view,omitempty"`
}

// Publisher sends raw bytes to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NatsUI is the game.UI for one player. Every call becomes an Event on the
// player's subject. Publishing is best effort: failures are logged and the
// game carries on.
type NatsUI struct {
	pub     Publisher
	subject string
}

func NewNatsUI(pub Publisher, playerID string) *NatsUI {
	return &NatsUI{pub: pub, subject: PlayerSubject(playerID)}
}

func (u *NatsUI) ShowNotification(msg string) {
	u.send(Event{Type: EventNotification, Message: msg})
}

func (u *NatsUI) UpdateDisplay(d game.Display) {
	u.send(Event{Type: EventDisplay, Display: &d})
}

func (u *NatsUI) OpenModal(id game.ModalID, view any) {
	raw, err := json.Marshal(view)
	if err != nil {
		slog.Warn("encoding modal view", "modal", id, "error", err)
		return
	}
	u.send(Event{Type: EventModalOpen, Modal: id, View: raw})
}

func (u *NatsUI) CloseModal(id game.ModalID) {
	u.send(Event{Type: EventModalClose, Modal: id})
}

func (u *NatsUI) send(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("encoding ui event", "type", ev.Type, "error", err)
		return
	}
	if err := u.pub.Publish(u.subject, data); err != nil {
		slog.Warn("publishing ui event", "subject", u.subject, "type", ev.Type, "error", err)
	}
}

// DecodeEvent parses a published event.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decoding ui event: %w", err)
	}
	return ev, nil
}
