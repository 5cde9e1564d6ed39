package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// PlayHandlerFactory creates handlers that start the minigame of a carried
// item.
// Config:
//   - item (required): the item id to play with
type PlayHandlerFactory struct{}

func NewPlayHandlerFactory() *PlayHandlerFactory {
	return &PlayHandlerFactory{}
}

func (f *PlayHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "item", Required: true},
		},
	}
}

func (f *PlayHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "item")
}

func (f *PlayHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		// The board arrives as a modal event.
		_, err := cmdCtx.Session().Play(strings.ToLower(cmdCtx.Config["item"]))
		return fromGame(err)
	}, nil
}

// SlideHandlerFactory creates handlers that slide a tile of the running
// puzzle into the gap.
// Config:
//   - tile (required): the number on the tile
type SlideHandlerFactory struct{}

func NewSlideHandlerFactory() *SlideHandlerFactory {
	return &SlideHandlerFactory{}
}

func (f *SlideHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "tile", Required: true},
		},
	}
}

func (f *SlideHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "tile")
}

func (f *SlideHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		tile, err := strconv.Atoi(strings.TrimSpace(cmdCtx.Config["tile"]))
		if err != nil {
			return NewUserError(fmt.Sprintf("%q is geen getal.", cmdCtx.Config["tile"]))
		}

		moved, err := cmdCtx.Session().Slide(tile)
		if err != nil {
			return fromGame(err)
		}
		if !moved {
			return NewUserError(fmt.Sprintf("Tegel %d ligt niet naast het gat.", tile))
		}
		return nil
	}, nil
}

// SpinHandlerFactory creates handlers that run in the home hamster wheel.
type SpinHandlerFactory struct {
	pub Publisher
}

func NewSpinHandlerFactory(pub Publisher) *SpinHandlerFactory {
	return &SpinHandlerFactory{pub: pub}
}

func (f *SpinHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *SpinHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *SpinHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Session().Spin(); err != nil {
			return fromGame(err)
		}
		return publish(f.pub, cmdCtx, "Je rent in het hamsterrad. Het rad draait!")
	}, nil
}
