package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-cavia/internal/display"
	"github.com/pixil98/go-cavia/internal/storage"
)

// HelpHandlerFactory creates handlers that display command help.
// Config:
//   - command (optional): show the usage of one command
type HelpHandlerFactory struct {
	commands storage.Storer[*Command]
	pub      Publisher
}

func NewHelpHandlerFactory(commands storage.Storer[*Command], pub Publisher) *HelpHandlerFactory {
	return &HelpHandlerFactory{commands: commands, pub: pub}
}

func (f *HelpHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "command", Required: false},
		},
	}
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if command := strings.TrimSpace(cmdCtx.Config["command"]); command != "" {
			text, err := f.showCommand(command)
			if err != nil {
				return err
			}
			return publish(f.pub, cmdCtx, text)
		}
		return publish(f.pub, cmdCtx, f.listCommands())
	}, nil
}

// listCommands lists all commands grouped by category.
func (f *HelpHandlerFactory) listCommands() string {
	groups := make(map[string][]string)
	for id, cmd := range f.commands.GetAll() {
		category := cmd.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], id)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	lines := []string{"Commando's:"}
	for _, cat := range categories {
		cmds := groups[cat]
		sort.Strings(cmds)
		lines = append(lines, fmt.Sprintf("  %s: %s", display.Capitalize(cat), strings.Join(cmds, ", ")))
	}
	lines = append(lines, "Typ 'help <commando>' voor meer uitleg.")
	return strings.Join(lines, "\n")
}

// showCommand describes a single command and its usage.
func (f *HelpHandlerFactory) showCommand(name string) (string, error) {
	name = strings.ToLower(name)
	cmd := f.commands.Get(name)
	if cmd == nil {
		return "", NewUserError(fmt.Sprintf("Commando %q bestaat niet.", name))
	}

	lines := []string{fmt.Sprintf("%s: %s", name, cmd.Description)}

	parts := []string{name}
	for _, input := range cmd.Inputs {
		if input.Required {
			parts = append(parts, fmt.Sprintf("<%s>", input.Name))
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", input.Name))
		}
	}
	lines = append(lines, fmt.Sprintf("Gebruik: %s", strings.Join(parts, " ")))

	if len(cmd.Aliases) > 0 {
		lines = append(lines, fmt.Sprintf("Ook: %s", strings.Join(cmd.Aliases, ", ")))
	}
	return strings.Join(lines, "\n"), nil
}
