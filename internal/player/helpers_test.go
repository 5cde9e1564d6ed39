package player

import (
	"bytes"
	"io"
	"maps"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-cavia/internal/commands"
	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-cavia/internal/messaging"
	"github.com/pixil98/go-cavia/internal/storage"
)

// mockStore implements storage.Storer for testing
type mockStore[T storage.ValidatingSpec] struct {
	records map[string]T
}

func (m *mockStore[T]) Get(id string) T {
	return m.records[id]
}

func (m *mockStore[T]) GetAll() map[string]T {
	return maps.Clone(m.records)
}

func (m *mockStore[T]) Save(id string, v T) error {
	m.records[id] = v
	return nil
}

// memoryBus delivers published events synchronously to subscribers.
type memoryBus struct {
	mu   sync.Mutex
	subs map[string]map[int]func([]byte)
	next int
}

func (b *memoryBus) Publish(subject string, data []byte) error {
	b.mu.Lock()
	handlers := make([]func([]byte), 0, len(b.subs[subject]))
	for _, h := range b.subs[subject] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (b *memoryBus) Subscribe(subject string, handler func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = map[string]map[int]func([]byte){}
	}
	if b.subs[subject] == nil {
		b.subs[subject] = map[int]func([]byte){}
	}
	id := b.next
	b.next++
	b.subs[subject][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[subject], id)
	}, nil
}

func (b *memoryBus) subscribers(subject string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[subject])
}

// scriptedConn plays back fixed input and records everything written.
type scriptedConn struct {
	io.Reader
	out bytes.Buffer
}

func newScriptedConn(lines ...string) *scriptedConn {
	return &scriptedConn{Reader: strings.NewReader(strings.Join(lines, "\n") + "\n")}
}

func (c *scriptedConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func testContent() *game.Content {
	return &game.Content{
		Items: &mockStore[*game.Item]{records: map[string]*game.Item{
			"carrot":  {Name: "Wortel", Price: 5, Emoji: "🥕", Category: game.CategoryFood, Shop: "Groente Markt"},
			"lettuce": {Name: "Sla", Price: 3, Emoji: "🥬", Category: game.CategoryFood, Shop: "Groente Markt"},
		}},
		Worlds: &mockStore[*game.World]{records: map[string]*game.World{
			"thuis": {
				Name: "Thuis",
				Home: true,
				NPCs: []*game.NPCSpec{
					{ID: "ginger", Name: "Ginger", Kind: game.KindGuineaPig, X: 600, Y: 520,
						Mission: &game.Mission{RequiredItemID: "carrot", TargetCount: 3, Text: "Ik heb zo'n honger!"}},
				},
			},
			"stad": {
				Name:    "Stad",
				Animals: []*game.Animal{{Type: "hond", Name: "Hond", Emoji: "🐕", X: 300, Y: 520}},
			},
		}},
		Missions: &mockStore[*game.MissionTemplate]{records: map[string]*game.MissionTemplate{
			"want-lettuce": {Item: storage.NewSmartIdentifier[*game.Item]("lettuce"), Target: 2, Text: "Ik wil graag 2 stukken sla!"},
		}},
		HomeWorld: "thuis",
	}
}

func testCommands() *mockStore[*commands.Command] {
	return &mockStore[*commands.Command]{records: map[string]*commands.Command{
		"look":   {Handler: "look", Category: "world"},
		"wortel": {Handler: "buy", Category: "items", Config: map[string]any{"item": "carrot"}},
		"carrots": {Handler: "message", Category: "info",
			Config: map[string]any{"text": "Je hebt {{ .Status.Carrots }} wortels."}},
		"quit": {Handler: "quit", Category: "info"},
	}}
}

type testRig struct {
	pm    *PlayerManager
	bus   *memoryBus
	saves *localstore.MemoryStore
}

func newTestRig(t *testing.T, opts ...PlayerManagerOpt) *testRig {
	t.Helper()

	content := testContent()
	bus := &memoryBus{}
	h, err := commands.NewHandler(testCommands(), content.Worlds, messaging.NewNatsPublisher(bus))
	if err != nil {
		t.Fatalf("creating handler: %v", err)
	}
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling commands: %v", err)
	}

	saves := localstore.NewMemoryStore()
	opts = append([]PlayerManagerOpt{
		WithDefaultWorld("thuis"),
		WithSessionOpts(game.WithSessionRNG(game.NewRNG(1))),
	}, opts...)

	return &testRig{
		pm:    NewPlayerManager(h, content, saves, bus, opts...),
		bus:   bus,
		saves: saves,
	}
}
