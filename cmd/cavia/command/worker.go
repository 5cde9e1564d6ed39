package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-cavia/internal/commands"
	"github.com/pixil98/go-cavia/internal/driver"
	"github.com/pixil98/go-cavia/internal/listener"
	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-cavia/internal/messaging"
	"github.com/pixil98/go-cavia/internal/player"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Static game content
	content, err := cfg.Storage.BuildContent()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	// Messaging
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Commands
	cmdStore, err := cfg.Storage.Commands.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}
	cmdHandler, err := commands.NewHandler(cmdStore, content.Worlds, messaging.NewNatsPublisher(natsServer))
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling commands: %w", err)
	}

	// Player progress
	saves, err := cfg.Saves.BuildStore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("opening saves: %w", err)
	}
	var autosave time.Duration
	if cfg.Saves.AutosaveInterval != "" {
		autosave, err = parsePositiveDuration(cfg.Saves.AutosaveInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing autosave_interval: %w", err)
		}
	}

	pm, err := cfg.PlayerManager.BuildPlayerManager(cmdHandler, content, saves, natsServer, autosave)
	if err != nil {
		return nil, fmt.Errorf("creating player manager: %w", err)
	}

	// Create Listeners
	cm := listener.NewConnectionManager(pm)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lw, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = &afterReady{wait: natsServer.WaitReady, w: lw}
	}

	// Setup the game driver
	var driverOpts []driver.GameDriverOpt
	if d := cfg.tickInterval(); d > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	gameDriver := driver.NewGameDriver([]driver.Manager{pm}, driverOpts...)

	return service.WorkerList{
		"nats":      natsServer,
		"driver":    gameDriver,
		"players":   &playerService{pm: pm, saves: saves},
		"listeners": &listeners,
	}, nil
}

// afterReady holds a worker back until the message bus is up.
type afterReady struct {
	wait func(context.Context) error
	w    worker
}

func (a *afterReady) Start(ctx context.Context) error {
	if err := a.wait(ctx); err != nil {
		// Shutdown before the bus came up.
		return nil
	}
	return a.w.Start(ctx)
}

// playerService runs the player manager and closes the save store once
// every session has been written.
type playerService struct {
	pm    *player.PlayerManager
	saves localstore.Store
}

func (s *playerService) Start(ctx context.Context) error {
	err := s.pm.Start(ctx)
	if cerr := s.saves.Close(); cerr != nil {
		slog.Warn("closing saves", "error", cerr)
	}
	return err
}
