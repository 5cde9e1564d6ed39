package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultTickLength is short enough for the home grid animations to
	// look smooth on clients that poll positions.
	DefaultTickLength = 50 * time.Millisecond
)

type Manager interface {
	Tick(context.Context) error
}

// GameDriver advances every manager on a fixed interval.
type GameDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "game driver started", "tick", d.tickLength)

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs one round over the managers, stopping at the first error.
func (d *GameDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
