package commands

import (
	"context"
	"fmt"
	"strings"
)

// PlaceHandlerFactory creates handlers that put an inventory item down in
// the home world.
// Config:
//   - item (required): the item id to place
type PlaceHandlerFactory struct{}

func NewPlaceHandlerFactory() *PlaceHandlerFactory {
	return &PlaceHandlerFactory{}
}

func (f *PlaceHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "item", Required: true},
		},
	}
}

func (f *PlaceHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "item")
}

func (f *PlaceHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		_, err := cmdCtx.Session().PlaceItem(strings.ToLower(cmdCtx.Config["item"]))
		return fromGame(err)
	}, nil
}

// ReorganizeHandlerFactory creates handlers that tidy the home into grid
// order.
type ReorganizeHandlerFactory struct {
	pub Publisher
}

func NewReorganizeHandlerFactory(pub Publisher) *ReorganizeHandlerFactory {
	return &ReorganizeHandlerFactory{pub: pub}
}

func (f *ReorganizeHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *ReorganizeHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ReorganizeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Session().Reorganize(); err != nil {
			return fromGame(err)
		}
		return publish(f.pub, cmdCtx, "Alles wordt netjes opgeruimd.")
	}, nil
}

// HomeHandlerFactory creates handlers that list the items standing in the
// home world.
type HomeHandlerFactory struct {
	pub Publisher
}

func NewHomeHandlerFactory(pub Publisher) *HomeHandlerFactory {
	return &HomeHandlerFactory{pub: pub}
}

func (f *HomeHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *HomeHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HomeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		items, err := cmdCtx.Session().PlacedItems()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return publish(f.pub, cmdCtx, "Er staat nog niets in je huis.")
		}

		lines := []string{"In je huis staat:"}
		for _, it := range items {
			line := fmt.Sprintf("  %s %s op (%.0f, %.0f)", it.Emoji, it.Name, it.X, it.Y)
			if it.Animating {
				line += " ..."
			}
			lines = append(lines, line)
		}
		return publish(f.pub, cmdCtx, strings.Join(lines, "\n"))
	}, nil
}
