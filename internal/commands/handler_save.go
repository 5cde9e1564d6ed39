package commands

import (
	"context"
	"fmt"
)

// SaveHandlerFactory creates handlers that persist the player's progress.
type SaveHandlerFactory struct {
	pub Publisher
}

func NewSaveHandlerFactory(pub Publisher) *SaveHandlerFactory {
	return &SaveHandlerFactory{pub: pub}
}

func (f *SaveHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *SaveHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *SaveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Session().Save(ctx); err != nil {
			return fmt.Errorf("saving progress: %w", err)
		}
		return publish(f.pub, cmdCtx, "Je voortgang is opgeslagen.")
	}, nil
}

// QuitHandlerFactory creates handlers that save and quit.
type QuitHandlerFactory struct {
	pub Publisher
}

func NewQuitHandlerFactory(pub Publisher) *QuitHandlerFactory {
	return &QuitHandlerFactory{pub: pub}
}

func (f *QuitHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Session().Save(ctx); err != nil {
			return fmt.Errorf("saving progress on quit: %w", err)
		}

		cmdCtx.Player.Quit = true
		return nil
	}, nil
}
