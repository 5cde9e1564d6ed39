package commands

import (
	"context"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/localstore"
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

// recordingPublisher captures command output per player.
type recordingPublisher struct {
	texts map[string][]string
}

func (p *recordingPublisher) PublishToPlayer(playerID string, text string) error {
	if p.texts == nil {
		p.texts = map[string][]string{}
	}
	p.texts[playerID] = append(p.texts[playerID], text)
	return nil
}

func (p *recordingPublisher) last(playerID string) string {
	t := p.texts[playerID]
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

// recordingUI captures what the game sends to the front end.
type recordingUI struct {
	notes  []string
	opened []game.ModalID
}

func (r *recordingUI) ShowNotification(msg string)         { r.notes = append(r.notes, msg) }
func (r *recordingUI) UpdateDisplay(game.Display)          {}
func (r *recordingUI) OpenModal(id game.ModalID, view any) { r.opened = append(r.opened, id) }
func (r *recordingUI) CloseModal(game.ModalID)             {}

func (r *recordingUI) noted(substr string) bool {
	return slices.ContainsFunc(r.notes, func(n string) bool { return strings.Contains(n, substr) })
}

func testContent() *game.Content {
	return &game.Content{
		Items: &mockStore[*game.Item]{records: map[string]*game.Item{
			"carrot":  {Name: "Wortel", Price: 5, Emoji: "🥕", Category: game.CategoryFood, Shop: "Groente Markt"},
			"lettuce": {Name: "Sla", Price: 3, Emoji: "🥬", Category: game.CategoryFood, Shop: "Groente Markt"},
			"ball":    {Name: "Bal", Price: 10, Emoji: "⚽", Category: game.CategoryToy, Shop: "Speelgoedwinkel"},
			"puzzle": {Name: "Puzzel", Price: 15, Emoji: "🧩", Category: game.CategoryToy, Shop: "Speelgoedwinkel",
				Minigame: game.MinigamePuzzle},
		}},
		Worlds: &mockStore[*game.World]{records: map[string]*game.World{
			"thuis": {
				Name: "Thuis",
				Home: true,
				NPCs: []*game.NPCSpec{
					{ID: "ginger", Name: "Ginger", Kind: game.KindGuineaPig, X: 600, Y: 520,
						Mission: &game.Mission{RequiredItemID: "carrot", TargetCount: 3, Text: "Ik heb zo'n honger!"}},
				},
				Wheel: &game.WheelSpec{X: 1500, Y: 500, Radius: 80},
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

// testCommands is a trimmed copy of the shipped command assets.
func testCommands() *mockStore[*Command] {
	xy := []InputSpec{
		{Name: "x", Type: InputTypeNumber, Required: true},
		{Name: "y", Type: InputTypeNumber, Required: true},
	}
	xyConfig := func(extra map[string]any) map[string]any {
		c := map[string]any{"x": "{{ .Inputs.x }}", "y": "{{ .Inputs.y }}"}
		maps.Copy(c, extra)
		return c
	}
	item := []InputSpec{{Name: "item", Type: InputTypeString, Required: true}}
	itemConfig := map[string]any{"item": "{{ .Inputs.item }}"}

	return &mockStore[*Command]{records: map[string]*Command{
		"help": {Handler: "help", Category: "info", Description: "Laat zien wat je kunt doen.",
			Inputs: []InputSpec{{Name: "command", Type: InputTypeString}},
			Config: map[string]any{"command": "{{ .Inputs.command | default \"\" }}"}},
		"inventory": {Handler: "inventory", Category: "items", Aliases: []string{"i"}},
		"shop": {Handler: "shop", Category: "items",
			Inputs: []InputSpec{{Name: "shop", Type: InputTypeString, Rest: true}},
			Config: map[string]any{"shop": "{{ .Inputs.shop | default \"\" }}"}},
		"buy":        {Handler: "buy", Category: "items", Description: "Koop iets.", Inputs: item, Config: itemConfig},
		"wortel":     {Handler: "buy", Category: "items", Config: map[string]any{"item": "carrot"}},
		"select":     {Handler: "select", Category: "items", Inputs: item, Config: itemConfig},
		"place":      {Handler: "place", Category: "home", Inputs: item, Config: itemConfig},
		"reorganize": {Handler: "reorganize", Category: "home"},
		"home":       {Handler: "home", Category: "home"},
		"grab":       {Handler: "pointer", Category: "home", Inputs: xy, Config: xyConfig(map[string]any{"action": "down"})},
		"drag":       {Handler: "pointer", Category: "home", Inputs: xy, Config: xyConfig(map[string]any{"action": "move"})},
		"drop":       {Handler: "pointer", Category: "home", Inputs: xy, Config: xyConfig(map[string]any{"action": "up"})},
		"cancel":     {Handler: "pointer", Category: "home", Config: map[string]any{"action": "cancel"}},
		"use": {Handler: "use", Category: "missions",
			Inputs: []InputSpec{{Name: "item", Type: InputTypeString}},
			Config: map[string]any{"item": "{{ .Inputs.item | default \"\" }}"}},
		"talk": {Handler: "talk", Category: "missions",
			Inputs: []InputSpec{{Name: "holder", Type: InputTypeString, Required: true}},
			Config: map[string]any{"holder": "{{ .Inputs.holder }}"}},
		"world": {Handler: "world", Category: "world",
			Inputs: []InputSpec{{Name: "world", Type: InputTypeString}},
			Config: map[string]any{"world": "{{ .Inputs.world | default \"\" }}"}},
		"look":  {Handler: "look", Category: "world"},
		"walk":  {Handler: "walk", Category: "world", Inputs: xy, Config: xyConfig(nil)},
		"click": {Handler: "click", Category: "world", Inputs: xy, Config: xyConfig(nil)},
		"close": {Handler: "close", Category: "world"},
		"math":  {Handler: "challenge", Category: "challenges", Config: map[string]any{"kind": "math"}},
		"answer": {Handler: "answer", Category: "challenges",
			Inputs: []InputSpec{{Name: "answer", Type: InputTypeString, Required: true, Rest: true}},
			Config: map[string]any{"answer": "{{ .Inputs.answer }}"}},
		"play": {Handler: "play", Category: "games", Inputs: item, Config: itemConfig},
		"slide": {Handler: "slide", Category: "games",
			Inputs: []InputSpec{{Name: "tile", Type: InputTypeNumber, Required: true}},
			Config: map[string]any{"tile": "{{ .Inputs.tile }}"}},
		"spin":   {Handler: "spin", Category: "home"},
		"status": {Handler: "status", Category: "info"},
		"tables": {Handler: "tables", Category: "challenges",
			Inputs: []InputSpec{{Name: "tables", Type: InputTypeString, Rest: true}},
			Config: map[string]any{"tables": "{{ .Inputs.tables | default \"\" }}"}},
		"customize": {Handler: "customize", Category: "info",
			Inputs: []InputSpec{
				{Name: "body", Type: InputTypeString, Required: true},
				{Name: "belly", Type: InputTypeString},
			},
			Config: map[string]any{"body": "{{ .Inputs.body }}", "belly": "{{ .Inputs.belly | default \"\" }}"}},
		"carrots": {Handler: "message", Category: "info",
			Config: map[string]any{"text": "Je hebt {{ .Status.Carrots }} wortels."}},
		"save": {Handler: "save", Category: "info"},
		"quit": {Handler: "quit", Category: "info"},
	}}
}

type testRig struct {
	handler *Handler
	pub     *recordingPublisher
	ui      *recordingUI
	store   *localstore.MemoryStore
	player  *PlayerState
}

func newTestRig(t *testing.T, start string) *testRig {
	t.Helper()

	content := testContent()
	pub := &recordingPublisher{}
	h, err := NewHandler(testCommands(), content.Worlds, pub)
	if err != nil {
		t.Fatalf("creating handler: %v", err)
	}
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling commands: %v", err)
	}

	ui := &recordingUI{}
	st := localstore.NewMemoryStore()
	sess, err := game.NewSession("Tess", start, content, st, ui, game.WithSessionRNG(game.NewRNG(1)))
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	return &testRig{
		handler: h,
		pub:     pub,
		ui:      ui,
		store:   st,
		player:  &PlayerState{ID: "tess", Session: sess},
	}
}

// run executes a command line the way the connection loop splits it.
func (r *testRig) run(t *testing.T, line string) error {
	t.Helper()
	parts := strings.Fields(line)
	return r.handler.Exec(context.Background(), r.player, parts[0], parts[1:]...)
}

func (r *testRig) mustRun(t *testing.T, line string) {
	t.Helper()
	if err := r.run(t, line); err != nil {
		t.Fatalf("%s: %v", line, err)
	}
}
