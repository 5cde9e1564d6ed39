package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-cavia/internal/game"
)

const statusBoxWidth = 44

// StatusHandlerFactory creates handlers that show the player's progress.
type StatusHandlerFactory struct {
	pub Publisher
}

func NewStatusHandlerFactory(pub Publisher) *StatusHandlerFactory {
	return &StatusHandlerFactory{pub: pub}
}

func (f *StatusHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *StatusHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *StatusHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		st, err := cmdCtx.Session().Status()
		if err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, renderBox(statusSections(st), statusBoxWidth))
	}, nil
}

type statSection struct {
	Header string
	Lines  []string
}

func statusSections(st game.Status) []statSection {
	accessory := st.Accessory
	if accessory == "" {
		accessory = "geen"
	}

	tables := make([]string, 0, len(st.Settings.SelectedTables))
	for _, t := range st.Settings.SelectedTables {
		done := ""
		if slices.Contains(st.Progress.CompletedTables, t) {
			done = "*"
		}
		tables = append(tables, fmt.Sprintf("%d%s (%d)", t, done, st.Progress.TableProgress[t]))
	}

	return []statSection{
		{
			Header: st.Name,
			Lines: []string{
				fmt.Sprintf("Wereld: %s", st.WorldName),
				fmt.Sprintf("Wortels: %d", st.Carrots),
				fmt.Sprintf("Accessoire: %s", accessory),
				fmt.Sprintf("Kleuren: %s / %s", st.Colors.Body, st.Colors.Belly),
				fmt.Sprintf("In huis: %d", st.Placed),
			},
		},
		{
			Header: "Oefenen",
			Lines: []string{
				fmt.Sprintf("Tafels: %s", strings.Join(tables, " ")),
				fmt.Sprintf("Tafels klaar: %d", len(st.Progress.CompletedTables)),
				fmt.Sprintf("Woorden goed: %d", len(st.Progress.CorrectSpellings)),
			},
		},
	}
}

func renderBox(sections []statSection, width int) string {
	var lines []string
	lines = append(lines, boxBorder(width))
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, boxBorder(width))
		}
		if section.Header != "" {
			lines = append(lines, boxLine(section.Header, width))
		}
		for _, line := range section.Lines {
			lines = append(lines, boxLine(line, width))
		}
	}
	lines = append(lines, boxBorder(width))
	return strings.Join(lines, "\n")
}

func boxBorder(width int) string {
	return "+" + strings.Repeat("-", width-2) + "+"
}

func boxLine(text string, width int) string {
	inner := width - 4
	if r := []rune(text); len(r) > inner {
		text = string(r[:inner])
	}
	return fmt.Sprintf("| %-*s |", inner, text)
}

// TablesHandlerFactory creates handlers that show or set the times tables
// math tasks are drawn from.
// Config:
//   - tables (optional): table numbers separated by spaces or commas
type TablesHandlerFactory struct {
	pub Publisher
}

func NewTablesHandlerFactory(pub Publisher) *TablesHandlerFactory {
	return &TablesHandlerFactory{pub: pub}
}

func (f *TablesHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "tables", Required: false},
		},
	}
}

func (f *TablesHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *TablesHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		sess := cmdCtx.Session()

		raw := strings.TrimSpace(cmdCtx.Config["tables"])
		if raw != "" {
			tables, err := parseTables(raw)
			if err != nil {
				return err
			}
			if err := sess.SelectTables(tables); err != nil {
				if errors.Is(err, game.ErrSessionClosed) {
					return err
				}
				return NewUserError(fmt.Sprintf("Kies tafels van 1 tot en met %d.", game.MaxMultiplier))
			}
		}

		st, err := sess.Status()
		if err != nil {
			return err
		}
		parts := make([]string, len(st.Settings.SelectedTables))
		for i, t := range st.Settings.SelectedTables {
			parts[i] = strconv.Itoa(t)
		}
		return publish(f.pub, cmdCtx, fmt.Sprintf("Je oefent de tafels van %s.", strings.Join(parts, ", ")))
	}, nil
}

func parseTables(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	tables := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is geen getal.", f))
		}
		tables = append(tables, n)
	}
	return tables, nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CustomizeHandlerFactory creates handlers that recolour the player's
// guinea pig.
// Config:
//   - body (optional): body colour as #RRGGBB
//   - belly (optional): belly colour as #RRGGBB
type CustomizeHandlerFactory struct {
	pub Publisher
}

func NewCustomizeHandlerFactory(pub Publisher) *CustomizeHandlerFactory {
	return &CustomizeHandlerFactory{pub: pub}
}

func (f *CustomizeHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "body", Required: false},
			{Name: "belly", Required: false},
		},
	}
}

func (f *CustomizeHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *CustomizeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		body := strings.TrimSpace(cmdCtx.Config["body"])
		belly := strings.TrimSpace(cmdCtx.Config["belly"])
		if body == "" && belly == "" {
			return NewUserError("Geef een kleur op, bijvoorbeeld: customize #D2691E #F5DEB3")
		}
		for _, c := range []string{body, belly} {
			if c != "" && !hexColor.MatchString(c) {
				return NewUserError(fmt.Sprintf("%q is geen kleur. Gebruik de vorm #RRGGBB.", c))
			}
		}

		if err := cmdCtx.Session().Customize(strings.ToUpper(body), strings.ToUpper(belly)); err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, "Je cavia heeft nieuwe kleuren!")
	}, nil
}
