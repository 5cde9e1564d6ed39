package commands

import (
	"context"
)

// MessageHandlerFactory creates handlers that send a fixed text to the
// player. The text is a template over the player's inputs and status.
// Config:
//   - text (required): the message to send
type MessageHandlerFactory struct {
	pub Publisher
}

func NewMessageHandlerFactory(pub Publisher) *MessageHandlerFactory {
	return &MessageHandlerFactory{pub: pub}
}

func (f *MessageHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "text", Required: true},
		},
	}
}

func (f *MessageHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "text")
}

func (f *MessageHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		return publish(f.pub, cmdCtx, cmdCtx.Config["text"])
	}, nil
}
