package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/storage"
)

// ParsedInput represents a validated and parsed command input.
type ParsedInput struct {
	Spec  *InputSpec
	Raw   string // Original player input
	Value any    // Parsed value: int for number, string for string
}

// PlayerState is what a command runs against: the connected player and
// their game session.
type PlayerState struct {
	ID      string
	Session *game.Session
	// Quit is set by the quit command; the connection loop ends after it.
	Quit bool
}

// CommandContext is handed to every compiled command.
type CommandContext struct {
	Player *PlayerState
	Inputs map[string]any
	// Config holds the command's config with templates expanded.
	Config map[string]string
}

// Session is shorthand for the acting player's game session.
func (c *CommandContext) Session() *game.Session {
	return c.Player.Session
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// ConfigRequirement declares a config key a handler reads.
type ConfigRequirement struct {
	Name     string
	Required bool
}

// HandlerSpec declares what a handler needs from the command definition.
type HandlerSpec struct {
	Config []ConfigRequirement
}

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// Spec returns the config the handler expects, or nil for none.
	Spec() *HandlerSpec
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a CommandFunc.
	Create() (CommandFunc, error)
}

// Publisher delivers command output to a player.
type Publisher interface {
	PublishToPlayer(playerID string, text string) error
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	cmd     *Command
	cmdFunc CommandFunc
}

type Handler struct {
	store     storage.Storer[*Command]
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
}

// NewHandler creates a handler with every game command factory registered.
func NewHandler(c storage.Storer[*Command], worlds storage.Storer[*game.World], pub Publisher) (*Handler, error) {
	h := &Handler{
		store:     c,
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
	}

	builtins := map[string]HandlerFactory{
		"message":    NewMessageHandlerFactory(pub),
		"help":       NewHelpHandlerFactory(c, pub),
		"inventory":  NewInventoryHandlerFactory(pub),
		"shop":       NewShopHandlerFactory(pub),
		"buy":        NewBuyHandlerFactory(),
		"select":     NewSelectHandlerFactory(pub),
		"use":        NewUseHandlerFactory(),
		"place":      NewPlaceHandlerFactory(),
		"reorganize": NewReorganizeHandlerFactory(pub),
		"home":       NewHomeHandlerFactory(pub),
		"pointer":    NewPointerHandlerFactory(pub),
		"world":      NewWorldHandlerFactory(worlds, pub),
		"walk":       NewWalkHandlerFactory(pub),
		"look":       NewLookHandlerFactory(pub),
		"click":      NewClickHandlerFactory(pub),
		"talk":       NewTalkHandlerFactory(),
		"close":      NewCloseHandlerFactory(),
		"challenge":  NewChallengeHandlerFactory(),
		"answer":     NewAnswerHandlerFactory(),
		"play":       NewPlayHandlerFactory(),
		"slide":      NewSlideHandlerFactory(),
		"spin":       NewSpinHandlerFactory(pub),
		"status":     NewStatusHandlerFactory(pub),
		"tables":     NewTablesHandlerFactory(pub),
		"customize":  NewCustomizeHandlerFactory(pub),
		"save":       NewSaveHandlerFactory(pub),
		"quit":       NewQuitHandlerFactory(pub),
	}
	for name, f := range builtins {
		if err := h.RegisterFactory(name, f); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	for id, cmd := range h.store.GetAll() {
		err := h.compile(id, cmd)
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := h.validateSpec(cmd, factory.Spec()); err != nil {
		return err
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create()
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	if existing, ok := h.compiled[id]; ok && existing.cmd != cmd {
		return fmt.Errorf("command %q conflicts with an existing alias", id)
	}
	for _, alias := range cmd.Aliases {
		alias = strings.ToLower(alias)
		if _, ok := h.compiled[alias]; ok {
			return fmt.Errorf("alias %q conflicts with an existing command", alias)
		}
		if h.store != nil && h.store.Get(alias) != nil {
			return fmt.Errorf("alias %q conflicts with an existing command", alias)
		}
	}

	c := &compiledCommand{cmd: cmd, cmdFunc: cmdFunc}
	h.compiled[id] = c
	for _, alias := range cmd.Aliases {
		h.compiled[strings.ToLower(alias)] = c
	}
	return nil
}

// validateSpec checks the command carries every config key the handler
// requires.
func (h *Handler) validateSpec(cmd *Command, spec *HandlerSpec) error {
	if spec == nil {
		return nil
	}
	for _, req := range spec.Config {
		if !req.Required {
			continue
		}
		if _, ok := cmd.Config[req.Name]; !ok {
			return fmt.Errorf("missing required config %q", req.Name)
		}
	}
	return nil
}

// Exec executes a command line for the player.
func (h *Handler) Exec(ctx context.Context, ps *PlayerState, cmdName string, rawArgs ...string) error {
	compiled, ok := h.compiled[strings.ToLower(cmdName)]
	if !ok {
		return NewUserError(fmt.Sprintf("Onbekend commando: %s. Typ 'help' voor een lijst.", cmdName))
	}

	inputs, err := h.parseInputs(compiled.cmd.Inputs, rawArgs)
	if err != nil {
		return err
	}

	status, err := ps.Session.Status()
	if err != nil {
		return err
	}

	inputCtx := &InputContext{Inputs: make(map[string]any, len(inputs)), Status: status}
	for _, in := range inputs {
		inputCtx.Inputs[in.Spec.Name] = in.Value
	}

	config, err := h.expandConfig(compiled.cmd.Config, inputCtx)
	if err != nil {
		return err
	}

	return compiled.cmdFunc(ctx, &CommandContext{
		Player: ps,
		Inputs: inputCtx.Inputs,
		Config: config,
	})
}

// expandConfig renders every config value against the parsed inputs.
// Non-string values are formatted with %v first.
func (h *Handler) expandConfig(config map[string]any, inputCtx *InputContext) (map[string]string, error) {
	out := make(map[string]string, len(config))
	for k, v := range config {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		expanded, err := ExpandTemplate(s, inputCtx)
		if err != nil {
			return nil, fmt.Errorf("expanding config %q: %w", k, err)
		}
		out[k] = expanded
	}
	return out, nil
}

// parseInputs validates raw string arguments against input specs.
func (h *Handler) parseInputs(specs []InputSpec, rawArgs []string) ([]ParsedInput, error) {
	requiredCount := 0
	for _, spec := range specs {
		if spec.Required {
			requiredCount++
		}
	}

	if len(rawArgs) < requiredCount {
		return nil, NewUserError(fmt.Sprintf("Dit commando wil minstens %d woord(en), je gaf er %d.", requiredCount, len(rawArgs)))
	}

	// If no rest input, check we don't have too many args
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Dit commando wil hoogstens %d woord(en), je gaf er %d.", len(specs), len(rawArgs)))
	}

	inputs := make([]ParsedInput, 0, len(specs))
	argIndex := 0

	for i := range specs {
		spec := &specs[i]

		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserError(fmt.Sprintf("Je bent %s vergeten.", spec.Name))
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, ParsedInput{
			Spec:  spec,
			Raw:   raw,
			Value: value,
		})
	}

	return inputs, nil
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is geen getal.", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown parameter type %q", inputType)
	}
}

// coordinates reads the x and y config values.
func coordinates(cmdCtx *CommandContext) (float64, float64, error) {
	x, errX := strconv.ParseFloat(strings.TrimSpace(cmdCtx.Config["x"]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(cmdCtx.Config["y"]), 64)
	if errX != nil || errY != nil {
		return 0, 0, NewUserError("Geef een positie op, bijvoorbeeld: 600 520")
	}
	return x, y, nil
}

// coordinateSpec is shared by handlers that act on a position.
var coordinateSpec = &HandlerSpec{
	Config: []ConfigRequirement{
		{Name: "x", Required: true},
		{Name: "y", Required: true},
	},
}

func requireString(config map[string]any, key string) error {
	s, ok := config[key].(string)
	if !ok || s == "" {
		return fmt.Errorf("%s is required", key)
	}
	return nil
}

func publish(pub Publisher, cmdCtx *CommandContext, text string) error {
	if pub == nil {
		return nil
	}
	return pub.PublishToPlayer(cmdCtx.Player.ID, text)
}
