package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/pixil98/go-cavia/internal/commands"
	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-cavia/internal/messaging"
	"github.com/pixil98/go-errors"
)

const (
	msgBuffer           = 64
	defaultShutdownWait = 5 * time.Second
)

// Bus carries UI events between sessions and connections.
type Bus interface {
	messaging.Publisher
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

type PlayerManager struct {
	mu       sync.Mutex
	players  map[string]*Player
	sessions sync.WaitGroup
	closing  bool

	content    *game.Content
	saves      localstore.Store
	cmdHandler *commands.Handler
	bus        Bus

	loginFlow *loginFlow

	autosave time.Duration
	lastSave time.Time
	// shutdownWait bounds how long Start waits for sessions to close.
	shutdownWait time.Duration
	now          func() time.Time
	opts         []game.SessionOpt
}

type PlayerManagerOpt func(*PlayerManager)

// WithAutosave saves every session once per interval from Tick.
func WithAutosave(d time.Duration) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.autosave = d
	}
}

// WithDefaultWorld sets the world offered first at login.
func WithDefaultWorld(id string) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.loginFlow.defaultWorld = id
	}
}

// WithSessionOpts passes options to every session the manager creates.
func WithSessionOpts(opts ...game.SessionOpt) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.opts = append(m.opts, opts...)
	}
}

func NewPlayerManager(cmd *commands.Handler, content *game.Content, saves localstore.Store, bus Bus, opts ...PlayerManagerOpt) *PlayerManager {
	pm := &PlayerManager{
		players:      map[string]*Player{},
		content:      content,
		saves:        saves,
		cmdHandler:   cmd,
		bus:          bus,
		now:          time.Now,
		shutdownWait: defaultShutdownWait,
	}
	pm.loginFlow = &loginFlow{
		worlds:       content.Worlds,
		defaultWorld: "dierenstad",
		taken:        pm.connected,
	}
	for _, opt := range opts {
		opt(pm)
	}
	pm.lastSave = pm.now()

	return pm
}

// Start blocks until ctx ends, then waits for running sessions to close
// and save. Whoever is still connected after the wait is saved here.
func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()

	m.mu.Lock()
	m.closing = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(m.shutdownWait):
		slog.Warn("sessions still open at shutdown", "count", len(m.snapshot()))
	}

	el := errors.NewErrorList()
	for _, p := range m.snapshot() {
		el.Add(p.state.Session.Save(context.WithoutCancel(ctx)))
	}
	return el.Err()
}

func (m *PlayerManager) Tick(ctx context.Context) error {
	players := m.snapshot()
	for _, p := range players {
		if err := p.state.Session.Tick(ctx); err != nil {
			return fmt.Errorf("ticking %s: %w", p.Id(), err)
		}
	}

	if m.autosave <= 0 || m.now().Sub(m.lastSave) < m.autosave {
		return nil
	}
	m.lastSave = m.now()
	for _, p := range players {
		if err := p.state.Session.Save(ctx); err != nil {
			slog.WarnContext(ctx, "autosave failed", "player", p.Id(), "error", err)
		}
	}
	return nil
}

// RunSession logs a connection in and plays until it quits or drops.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	login, err := m.loginFlow.Run(conn)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	p, err := m.newPlayer(conn, login)
	if err != nil {
		return err
	}
	defer m.closePlayer(ctx, p)

	unsub, err := m.bus.Subscribe(messaging.PlayerSubject(p.Id()), p.deliver)
	if err != nil {
		return fmt.Errorf("subscribing to player events: %w", err)
	}
	defer unsub()

	if err := p.state.Session.Load(ctx); err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}

	slog.InfoContext(ctx, "player connected", "player", p.Id(), "world", login.world)
	return p.Play(ctx)
}

func (m *PlayerManager) newPlayer(conn io.ReadWriter, login *loginResult) (*Player, error) {
	id := playerID(login.name)

	sess, err := game.NewSession(
		login.name,
		login.world,
		m.content,
		localstore.Scoped(m.saves, id),
		messaging.NewNatsUI(m.bus, id),
		m.opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	p := &Player{
		conn:       conn,
		state:      &commands.PlayerState{ID: id, Session: sess},
		cmdHandler: m.cmdHandler,
		msgs:       make(chan []byte, msgBuffer),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closing {
		return nil, fmt.Errorf("server is shutting down")
	}
	if _, ok := m.players[id]; ok {
		return nil, fmt.Errorf("player %q is already connected", id)
	}
	m.players[id] = p
	// Start waits for closePlayer to release this.
	m.sessions.Add(1)

	return p, nil
}

func (m *PlayerManager) closePlayer(ctx context.Context, p *Player) {
	m.mu.Lock()
	delete(m.players, p.Id())
	m.mu.Unlock()

	defer m.sessions.Done()

	if err := p.state.Session.Close(context.WithoutCancel(ctx)); err != nil {
		slog.WarnContext(ctx, "closing session", "player", p.Id(), "error", err)
	}
	slog.InfoContext(ctx, "player disconnected", "player", p.Id())
}

func (m *PlayerManager) connected(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.players[id]
	return ok
}

func (m *PlayerManager) snapshot() []*Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Collect(maps.Values(m.players))
}
