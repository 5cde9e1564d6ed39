package commands

import (
	"context"
	"fmt"
	"strings"
)

// SelectHandlerFactory creates handlers that mark an inventory item as the
// one to hand over.
// Config:
//   - item (required): the item id to select
type SelectHandlerFactory struct {
	pub Publisher
}

func NewSelectHandlerFactory(pub Publisher) *SelectHandlerFactory {
	return &SelectHandlerFactory{pub: pub}
}

func (f *SelectHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "item", Required: true},
		},
	}
}

func (f *SelectHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "item")
}

func (f *SelectHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		item := strings.ToLower(cmdCtx.Config["item"])
		if err := cmdCtx.Session().Select(item); err != nil {
			return fromGame(err)
		}
		return publish(f.pub, cmdCtx, fmt.Sprintf("Je houdt %s klaar.", item))
	}, nil
}

// UseHandlerFactory creates handlers that hand an item to the mission
// holder whose dialog is open.
// Config:
//   - item (optional): the item id to hand over; the selected item when empty
type UseHandlerFactory struct{}

func NewUseHandlerFactory() *UseHandlerFactory {
	return &UseHandlerFactory{}
}

func (f *UseHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "item", Required: false},
		},
	}
}

func (f *UseHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *UseHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		// Acceptance and refusal are both reported through notifications.
		_, err := cmdCtx.Session().UseItem(strings.ToLower(strings.TrimSpace(cmdCtx.Config["item"])))
		return fromGame(err)
	}, nil
}
