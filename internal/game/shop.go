package game

import (
	"fmt"
	"log/slog"
)

// Shop sells catalog items for carrots.
type Shop struct {
	catalog *Catalog
	inv     *Inventory
	player  *Player
	ui      UI
}

func NewShop(catalog *Catalog, inv *Inventory, player *Player, ui UI) *Shop {
	return &Shop{
		catalog: catalog,
		inv:     inv,
		player:  player,
		ui:      ui,
	}
}

// Buy purchases one unit of itemID. It reports whether the purchase went
// through; running short of carrots is not an error.
func (s *Shop) Buy(itemID string) (bool, error) {
	item := s.catalog.Get(itemID)
	if item == nil || item.Shop == "" {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}

	if !s.player.SpendCarrots(item.Price) {
		s.ui.ShowNotification("Niet genoeg wortels!")
		return false, nil
	}

	s.inv.Add(itemID, s.catalog.Meta(itemID))
	s.ui.ShowNotification(fmt.Sprintf("%s gekocht!", item.Name))

	if item.Wearable {
		s.player.Accessory = itemID
		s.ui.ShowNotification(fmt.Sprintf("%s is nu opgezet!", item.Name))
	}

	s.ui.UpdateDisplay(s.player.Display())
	slog.Debug("item bought", "player", s.player.Name, "item", itemID, "carrots", s.player.Carrots)
	return true, nil
}
