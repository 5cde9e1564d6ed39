package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval  string              `json:"tick_interval"`
	Listeners     []ListenerConfig    `json:"listeners"`
	Storage       StorageConfig       `json:"storage"`
	Saves         SavesConfig         `json:"saves"`
	Nats          NatsConfig          `json:"nats"`
	PlayerManager PlayerManagerConfig `json:"player_manager"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Saves.validate())
	el.Add(c.Nats.validate())
	el.Add(c.PlayerManager.validate())

	return el.Err()
}

// tickInterval returns the configured driver tick, or zero for the default.
func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}
