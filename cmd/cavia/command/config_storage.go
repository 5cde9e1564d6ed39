package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-cavia/internal/commands"
	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Commands AssetConfig[*commands.Command]     `json:"commands"`
	Items    AssetConfig[*game.Item]            `json:"items"`
	Worlds   AssetConfig[*game.World]           `json:"worlds"`
	Missions AssetConfig[*game.MissionTemplate] `json:"missions"`

	// HomeWorld is the world players place items in.
	HomeWorld string `json:"home_world"`
	// Words replaces the built in spelling list when set.
	Words []string `json:"words,omitempty"`
}

func (c *StorageConfig) BuildContent() (*game.Content, error) {
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	worlds, err := c.Worlds.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating world store: %w", err)
	}
	missions, err := c.Missions.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating mission store: %w", err)
	}

	content := &game.Content{
		Items:     items,
		Worlds:    worlds,
		Missions:  missions,
		Words:     c.Words,
		HomeWorld: c.HomeWorld,
	}
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("validating content: %w", err)
	}

	return content, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Commands.Validate("commands"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Worlds.Validate("worlds"))
	el.Add(c.Missions.Validate("missions"))
	if c.HomeWorld == "" {
		el.Add(fmt.Errorf("home_world is required"))
	}
	for i, w := range c.Words {
		if w == "" {
			el.Add(fmt.Errorf("words %d: must not be empty", i))
		}
	}
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
