package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-cavia/internal/game"
)

// ChallengeHandlerFactory creates handlers that pick the kind of task in
// an open challenge.
// Config:
//   - kind (required): spelling or math
type ChallengeHandlerFactory struct{}

func NewChallengeHandlerFactory() *ChallengeHandlerFactory {
	return &ChallengeHandlerFactory{}
}

func (f *ChallengeHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "kind", Required: true},
		},
	}
}

func (f *ChallengeHandlerFactory) ValidateConfig(config map[string]any) error {
	kind, _ := config["kind"].(string)
	switch kind {
	case "spelling", "math":
		return nil
	}
	return fmt.Errorf("unknown challenge kind %q", kind)
}

func (f *ChallengeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		sess := cmdCtx.Session()
		var err error
		if cmdCtx.Config["kind"] == "spelling" {
			_, err = sess.StartSpelling()
		} else {
			_, err = sess.StartMath()
		}
		if errors.Is(err, game.ErrChallengeState) {
			return NewUserError("Klik eerst op een dier om een opdracht te krijgen.")
		}
		return err
	}, nil
}

// AnswerHandlerFactory creates handlers that answer the open challenge task.
// Config:
//   - answer (required): the answer
type AnswerHandlerFactory struct{}

func NewAnswerHandlerFactory() *AnswerHandlerFactory {
	return &AnswerHandlerFactory{}
}

func (f *AnswerHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "answer", Required: true},
		},
	}
}

func (f *AnswerHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "answer")
}

func (f *AnswerHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		_, err := cmdCtx.Session().Answer(cmdCtx.Config["answer"])
		if errors.Is(err, game.ErrChallengeState) {
			return NewUserError("Er is geen vraag om te beantwoorden.")
		}
		return err
	}, nil
}
