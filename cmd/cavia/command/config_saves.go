package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-errors"
)

type SavesType int

const (
	SavesTypeDir SavesType = iota
	SavesTypeSQLite
	SavesTypeMemory
)

func (st *SavesType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "dir":
		*st = SavesTypeDir
	case "sqlite":
		*st = SavesTypeSQLite
	case "memory":
		*st = SavesTypeMemory
	default:
		return fmt.Errorf("unknown saves type: %s", text)
	}
	return nil
}

// SavesConfig selects where player progress is kept.
type SavesConfig struct {
	Type SavesType `json:"type"`
	Path string    `json:"path"`
	// AutosaveInterval saves every connected player this often.
	AutosaveInterval string `json:"autosave_interval,omitempty"`
}

func (c *SavesConfig) validate() error {
	el := errors.NewErrorList()

	if c.Type != SavesTypeMemory && c.Path == "" {
		el.Add(fmt.Errorf("saves: path is required"))
	}
	if c.AutosaveInterval != "" {
		if _, err := parsePositiveDuration(c.AutosaveInterval); err != nil {
			el.Add(fmt.Errorf("saves: autosave_interval: %w", err))
		}
	}

	return el.Err()
}

func (c *SavesConfig) BuildStore(ctx context.Context) (localstore.Store, error) {
	switch c.Type {
	case SavesTypeDir:
		return localstore.NewDirStore(c.Path)
	case SavesTypeSQLite:
		return localstore.OpenSQLite(ctx, c.Path)
	case SavesTypeMemory:
		return localstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown saves type: %v", c.Type)
	}
}
