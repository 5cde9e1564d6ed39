package game

import (
	"fmt"
	"log/slog"
)

// MissionReward is the carrots granted for every completed mission.
const MissionReward = 10

// DeliveryResult reports what a delivery attempt did.
type DeliveryResult struct {
	Accepted  bool `json:"accepted"`
	Completed bool `json:"completed"`
	// Eaten is set when food was used up with no mission involved.
	Eaten bool `json:"eaten,omitempty"`
}

// Coordinator matches delivered items against mission holders.
type Coordinator struct {
	inv    *Inventory
	player *Player
	pool   *MissionPool
	ui     UI
}

func NewCoordinator(inv *Inventory, player *Player, pool *MissionPool, ui UI) *Coordinator {
	return &Coordinator{
		inv:    inv,
		player: player,
		pool:   pool,
		ui:     ui,
	}
}

// AttemptDeliver offers one unit of the selected inventory item to target.
// On a match one unit leaves the inventory.
func (c *Coordinator) AttemptDeliver(selected *Slot, target MissionHolder) DeliveryResult {
	if selected == nil || target == nil {
		return DeliveryResult{}
	}
	if !c.inv.Has(selected.ItemID, 1) {
		c.ui.ShowNotification(fmt.Sprintf("Je hebt geen %s meer.", selected.Name))
		return DeliveryResult{}
	}

	return c.deliver(selected.ItemID, selected.Name, target, func() {
		c.inv.Remove(selected.ItemID, 1)
	})
}

// DeliverPlaced offers an item standing in the home world to target. The
// placed item itself is the unit being consumed, so the inventory is left
// alone; the caller removes the item from the grid when it is accepted.
func (c *Coordinator) DeliverPlaced(item *PlacedItem, target MissionHolder) DeliveryResult {
	if item == nil || target == nil {
		return DeliveryResult{}
	}
	return c.deliver(item.ItemID, item.Name, target, func() {})
}

func (c *Coordinator) deliver(itemID, itemName string, target MissionHolder, consume func()) DeliveryResult {
	m := target.Mission()
	if !m.Active() {
		c.ui.ShowNotification(fmt.Sprintf("%s heeft nu geen missie.", target.Name()))
		return DeliveryResult{}
	}

	if itemID != m.RequiredItemID {
		c.ui.ShowNotification(fmt.Sprintf("%s heeft geen %s nodig.", target.Name(), itemName))
		return DeliveryResult{}
	}

	m.ProgressCount++
	consume()

	if m.ProgressCount < m.TargetCount {
		c.ui.ShowNotification(fmt.Sprintf("Goed zo! Nog %d %s te gaan!", m.Remaining(), itemName))
		return DeliveryResult{Accepted: true}
	}

	c.player.AddCarrots(MissionReward)
	c.ui.ShowNotification(fmt.Sprintf("Missie voltooid! %s geeft je %d wortels!", target.Name(), MissionReward))
	c.ui.UpdateDisplay(c.player.Display())

	next := c.pool.Draw()
	target.AssignMission(next)

	slog.Info("mission completed",
		"player", c.player.Name,
		"holder", target.ID(),
		"item", itemID,
		"next_item", next.RequiredItemID,
	)

	return DeliveryResult{Accepted: true, Completed: true}
}
