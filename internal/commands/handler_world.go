package commands

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/storage"
)

// WorldHandlerFactory creates handlers that travel between worlds, or list
// them when no world is given.
// Config:
//   - world (optional): the world id to travel to
type WorldHandlerFactory struct {
	worlds storage.Storer[*game.World]
	pub    Publisher
}

func NewWorldHandlerFactory(worlds storage.Storer[*game.World], pub Publisher) *WorldHandlerFactory {
	return &WorldHandlerFactory{worlds: worlds, pub: pub}
}

func (f *WorldHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "world", Required: false},
		},
	}
}

func (f *WorldHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *WorldHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id := strings.ToLower(strings.TrimSpace(cmdCtx.Config["world"]))
		if id == "" {
			return publish(f.pub, cmdCtx, f.list())
		}

		w, err := cmdCtx.Session().ChangeWorld(id)
		if err != nil {
			return fromGame(err)
		}
		return publish(f.pub, cmdCtx, describeWorld(w, nil))
	}, nil
}

func (f *WorldHandlerFactory) list() string {
	all := f.worlds.GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	lines := []string{"Werelden:"}
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("  %-12s %s", id, all[id].Name))
	}
	return strings.Join(lines, "\n")
}

// describeWorld lists what can be clicked in a world.
func describeWorld(w *game.World, holders []game.MissionHolder) string {
	lines := []string{fmt.Sprintf("== %s ==", w.Name)}
	if w.Description != "" {
		lines = append(lines, w.Description)
	}

	animals := slices.Clone(w.Animals)
	slices.SortFunc(animals, func(a, b *game.Animal) int { return cmp.Compare(a.X, b.X) })
	for _, a := range animals {
		lines = append(lines, fmt.Sprintf("  %s %s bij (%.0f, %.0f)", a.Emoji, a.Name, a.X, a.Y))
	}
	for _, h := range holders {
		line := fmt.Sprintf("  %s %s bij (%.0f, %.0f)", h.Emoji(), h.Name(), h.Position().X, h.Position().Y)
		if m := h.Mission(); m.Active() {
			line += fmt.Sprintf(" wil %d x %s (talk %s)", m.Remaining(), m.RequiredItemID, h.ID())
		}
		lines = append(lines, line)
	}
	if w.Wheel != nil {
		lines = append(lines, fmt.Sprintf("  🎡 Hamsterrad bij (%.0f, %.0f) (loop erin en typ spin)", w.Wheel.X, w.Wheel.Y))
	}
	return strings.Join(lines, "\n")
}

// LookHandlerFactory creates handlers that describe the current world.
type LookHandlerFactory struct {
	pub Publisher
}

func NewLookHandlerFactory(pub Publisher) *LookHandlerFactory {
	return &LookHandlerFactory{pub: pub}
}

func (f *LookHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *LookHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *LookHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		w, holders, err := cmdCtx.Session().Look()
		if err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, describeWorld(w, holders))
	}, nil
}

// WalkHandlerFactory creates handlers that move the player's guinea pig.
// Config:
//   - x, y (required): where to walk to
type WalkHandlerFactory struct {
	pub Publisher
}

func NewWalkHandlerFactory(pub Publisher) *WalkHandlerFactory {
	return &WalkHandlerFactory{pub: pub}
}

func (f *WalkHandlerFactory) Spec() *HandlerSpec {
	return coordinateSpec
}

func (f *WalkHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *WalkHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		x, y, err := coordinates(cmdCtx)
		if err != nil {
			return err
		}
		if err := cmdCtx.Session().Walk(x, y); err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, fmt.Sprintf("Je loopt naar (%.0f, %.0f).", x, y))
	}, nil
}

// ClickHandlerFactory creates handlers that click a spot in the world.
// Config:
//   - x, y (required): where to click
type ClickHandlerFactory struct {
	pub Publisher
}

func NewClickHandlerFactory(pub Publisher) *ClickHandlerFactory {
	return &ClickHandlerFactory{pub: pub}
}

func (f *ClickHandlerFactory) Spec() *HandlerSpec {
	return coordinateSpec
}

func (f *ClickHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ClickHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		x, y, err := coordinates(cmdCtx)
		if err != nil {
			return err
		}
		hit, err := cmdCtx.Session().Click(x, y)
		if err != nil {
			return err
		}
		if hit.Holder == nil && hit.Animal == nil {
			return publish(f.pub, cmdCtx, "Daar is niemand.")
		}
		return nil
	}, nil
}

// TalkHandlerFactory creates handlers that open a mission holder's dialog
// by id.
// Config:
//   - holder (required): the holder id
type TalkHandlerFactory struct{}

func NewTalkHandlerFactory() *TalkHandlerFactory {
	return &TalkHandlerFactory{}
}

func (f *TalkHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "holder", Required: true},
		},
	}
}

func (f *TalkHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "holder")
}

func (f *TalkHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		_, err := cmdCtx.Session().Talk(strings.ToLower(cmdCtx.Config["holder"]))
		return fromGame(err)
	}, nil
}

// CloseHandlerFactory creates handlers that close any open dialog.
type CloseHandlerFactory struct{}

func NewCloseHandlerFactory() *CloseHandlerFactory {
	return &CloseHandlerFactory{}
}

func (f *CloseHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *CloseHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *CloseHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		return cmdCtx.Session().CloseModals()
	}, nil
}
