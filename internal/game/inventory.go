package game

import (
	"cmp"
	"fmt"
	"slices"
)

// Slot is one stack of identical items in the inventory.
type Slot struct {
	ItemID   string
	Quantity int
	ItemMeta
}

// Inventory holds the items a player carries, one slot per item id.
// A slot exists only while its quantity is positive.
type Inventory struct {
	slots    map[string]*Slot
	selected string
	notify   Notifier
}

func NewInventory(n Notifier) *Inventory {
	return &Inventory{
		slots:  map[string]*Slot{},
		notify: n,
	}
}

// Add puts one unit of itemID in the inventory and tells the player how
// many they now have.
func (inv *Inventory) Add(itemID string, meta ItemMeta) {
	slot, ok := inv.slots[itemID]
	if !ok {
		slot = &Slot{ItemID: itemID, ItemMeta: meta}
		inv.slots[itemID] = slot
	}
	slot.Quantity++

	if slot.Quantity == 1 {
		inv.notify.ShowNotification(fmt.Sprintf("%s toegevoegd aan rugzak!", slot.Name))
	} else {
		inv.notify.ShowNotification(fmt.Sprintf("%s toegevoegd aan rugzak! (%dx)", slot.Name, slot.Quantity))
	}
}

// Remove takes count units of itemID out. The slot is deleted once its
// quantity drops to zero. Unknown ids and non-positive counts are ignored.
func (inv *Inventory) Remove(itemID string, count int) {
	slot, ok := inv.slots[itemID]
	if !ok || count <= 0 {
		return
	}

	slot.Quantity -= count
	if slot.Quantity <= 0 {
		delete(inv.slots, itemID)
		if inv.selected == itemID {
			inv.selected = ""
		}
	}
}

// Has reports whether at least count units of itemID are held.
func (inv *Inventory) Has(itemID string, count int) bool {
	slot, ok := inv.slots[itemID]
	return ok && slot.Quantity >= count
}

// Get returns a copy of the slot for itemID, or nil.
func (inv *Inventory) Get(itemID string) *Slot {
	slot, ok := inv.slots[itemID]
	if !ok {
		return nil
	}
	c := *slot
	return &c
}

// Slots returns copies of every slot ordered by name.
func (inv *Inventory) Slots() []Slot {
	out := make([]Slot, 0, len(inv.slots))
	for _, s := range inv.slots {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Slot) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ItemID, b.ItemID))
	})
	return out
}

// Select marks itemID as the item the player is holding out. It returns
// false if the item is not in the inventory.
func (inv *Inventory) Select(itemID string) bool {
	if _, ok := inv.slots[itemID]; !ok {
		return false
	}
	inv.selected = itemID
	return true
}

// Selected returns a copy of the selected slot, or nil.
func (inv *Inventory) Selected() *Slot {
	if inv.selected == "" {
		return nil
	}
	return inv.Get(inv.selected)
}

func (inv *Inventory) ClearSelection() {
	inv.selected = ""
}

// Clear empties the inventory.
func (inv *Inventory) Clear() {
	inv.slots = map[string]*Slot{}
	inv.selected = ""
}

func (inv *Inventory) Len() int {
	return len(inv.slots)
}
