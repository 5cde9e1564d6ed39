package commands

import (
	"context"
	"fmt"
)

const (
	pointerDown   = "down"
	pointerMove   = "move"
	pointerUp     = "up"
	pointerCancel = "cancel"
)

// PointerHandlerFactory creates handlers that drive home item dragging
// from a text client.
// Config:
//   - action (required): down, move, up or cancel
//   - x, y: the pointer position; required for every action but cancel
type PointerHandlerFactory struct {
	pub Publisher
}

func NewPointerHandlerFactory(pub Publisher) *PointerHandlerFactory {
	return &PointerHandlerFactory{pub: pub}
}

func (f *PointerHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "action", Required: true},
			{Name: "x", Required: false},
			{Name: "y", Required: false},
		},
	}
}

func (f *PointerHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case pointerCancel:
		return nil
	case pointerDown, pointerMove, pointerUp:
		if config["x"] == nil || config["y"] == nil {
			return fmt.Errorf("action %q needs x and y", action)
		}
		return nil
	default:
		return fmt.Errorf("unknown pointer action %q", action)
	}
}

func (f *PointerHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		sess := cmdCtx.Session()
		action := cmdCtx.Config["action"]

		if action == pointerCancel {
			if !sess.Dragging() {
				return NewUserError("Je sleept niets.")
			}
			return sess.PointerCancel()
		}

		x, y, err := coordinates(cmdCtx)
		if err != nil {
			return err
		}

		switch action {
		case pointerDown:
			grabbed, err := sess.PointerDown(x, y)
			if err != nil {
				return fromGame(err)
			}
			if !grabbed {
				return NewUserError("Daar ligt niets.")
			}
			return publish(f.pub, cmdCtx, "Je pakt het op.")

		case pointerMove:
			if !sess.Dragging() {
				return NewUserError("Je sleept niets.")
			}
			return sess.PointerMove(x, y)

		default:
			if !sess.Dragging() {
				return NewUserError("Je sleept niets.")
			}
			// Text clients drop at a spot rather than dragging there first.
			if err := sess.PointerMove(x, y); err != nil {
				return err
			}
			res, err := sess.PointerUp(x, y)
			if err != nil {
				return err
			}
			if res.Target == nil {
				return publish(f.pub, cmdCtx, fmt.Sprintf("%s staat nu op (%.0f, %.0f).", res.Item.Name, res.Item.X, res.Item.Y))
			}
			return nil
		}
	}, nil
}
