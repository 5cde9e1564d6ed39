package messaging

import (
	"encoding/json"
	"fmt"
)

// NatsPublisher sends command output to individual player subjects.
type NatsPublisher struct {
	pub Publisher
}

func NewNatsPublisher(pub Publisher) *NatsPublisher {
	return &NatsPublisher{pub: pub}
}

// PublishToPlayer sends text to the player as a text event.
func (p *NatsPublisher) PublishToPlayer(playerID string, text string) error {
	data, err := json.Marshal(Event{Type: EventText, Message: text})
	if err != nil {
		return fmt.Errorf("encoding text event: %w", err)
	}
	return p.pub.Publish(PlayerSubject(playerID), data)
}
