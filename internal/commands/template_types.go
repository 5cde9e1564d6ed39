package commands

import "github.com/pixil98/go-cavia/internal/game"

// InputContext is used when expanding command config. Templates reach the
// player's typed inputs as {{ .Inputs.name }} and the session as
// {{ .Status.Carrots }}, {{ .Status.WorldName }} and so on.
type InputContext struct {
	Inputs map[string]any
	Status game.Status
}
