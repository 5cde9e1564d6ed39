package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-cavia/internal/commands"
	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-cavia/internal/player"
	"github.com/pixil98/go-errors"
)

type PlayerManagerConfig struct {
	// DefaultWorld is offered first at login.
	DefaultWorld string `json:"default_world"`
}

func (c *PlayerManagerConfig) validate() error {
	el := errors.NewErrorList()

	if c.DefaultWorld == "" {
		el.Add(fmt.Errorf("default_world is required"))
	}

	return el.Err()
}

func (c *PlayerManagerConfig) BuildPlayerManager(
	cmdHandler *commands.Handler,
	content *game.Content,
	saves localstore.Store,
	bus player.Bus,
	autosave time.Duration,
) (*player.PlayerManager, error) {
	if content.Worlds.Get(c.DefaultWorld) == nil {
		return nil, fmt.Errorf("default_world %q does not exist", c.DefaultWorld)
	}

	return player.NewPlayerManager(cmdHandler, content, saves, bus,
		player.WithDefaultWorld(c.DefaultWorld),
		player.WithAutosave(autosave),
	), nil
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}
