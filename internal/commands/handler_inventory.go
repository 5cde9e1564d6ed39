package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-cavia/internal/game"
)

// InventoryHandlerFactory creates handlers that list the player's inventory.
type InventoryHandlerFactory struct {
	pub Publisher
}

func NewInventoryHandlerFactory(pub Publisher) *InventoryHandlerFactory {
	return &InventoryHandlerFactory{pub: pub}
}

func (f *InventoryHandlerFactory) Spec() *HandlerSpec {
	return nil
}

func (f *InventoryHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *InventoryHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		st, err := cmdCtx.Session().Status()
		if err != nil {
			return err
		}

		lines := []string{"Je draagt:"}
		lines = append(lines, FormatInventory(st.Inventory, st.Selected)...)
		return publish(f.pub, cmdCtx, strings.Join(lines, "\n"))
	}, nil
}

// FormatInventory returns indented lines describing inventory slots. The
// selected slot is marked with an arrow.
func FormatInventory(slots []game.Slot, selected string) []string {
	if len(slots) == 0 {
		return []string{"  Niets"}
	}
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		marker := " "
		if s.ItemID == selected {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf(" %s%s %s x%d (%s)", marker, s.Emoji, s.Name, s.Quantity, s.ItemID))
	}
	return lines
}
