package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pixil98/go-cavia/internal/storage"
	"github.com/pixil98/go-errors"
)

// Category groups items for shops and for the home reorganize order.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryHay       Category = "hay"
	CategoryToy       Category = "toy"
	CategoryAccessory Category = "accessory"
	CategoryOther     Category = "other"
)

// categoryOrder is the order reorganize groups items in.
var categoryOrder = []Category{CategoryFood, CategoryHay, CategoryToy, CategoryAccessory, CategoryOther}

func (c Category) Valid() bool {
	return slices.Contains(categoryOrder, c)
}

// Edible items can be eaten when nobody is asking for them.
func (c Category) Edible() bool {
	return c == CategoryFood || c == CategoryHay
}

func (c Category) rank() int {
	i := slices.Index(categoryOrder, c)
	if i < 0 {
		return len(categoryOrder)
	}
	return i
}

// Item defines a kind of thing a player can buy, carry and deliver.
// Item IDs are short lowercase names (e.g., "carrot", "hay_small").
type Item struct {
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Emoji       string   `json:"emoji"`
	Category    Category `json:"category"`
	Description string   `json:"description"`

	// Shop is the name of the building that sells the item. Empty means the
	// item cannot be bought.
	Shop string `json:"shop,omitempty"`

	// Wearable items are put on the player's guinea pig right after purchase.
	Wearable bool `json:"wearable,omitempty"`

	// Minigame is the game the item can be played with, if any.
	Minigame MinigameKind `json:"minigame,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (i *Item) Validate() error {
	el := errors.NewErrorList()
	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Price < 0 {
		el.Add(fmt.Errorf("item price must not be negative"))
	}
	if !i.Category.Valid() {
		el.Add(fmt.Errorf("item category %q is invalid", i.Category))
	}
	if i.Wearable && i.Category != CategoryAccessory {
		el.Add(fmt.Errorf("only accessories can be wearable"))
	}
	if i.Minigame != "" && !i.Minigame.Valid() {
		el.Add(fmt.Errorf("minigame %q is not supported", i.Minigame))
	}
	return el.Err()
}

// ItemMeta is the display data an inventory slot or placed item keeps.
type ItemMeta struct {
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Category Category `json:"category"`
}

// CatalogEntry pairs an item definition with its id.
type CatalogEntry struct {
	ID string
	*Item
}

// Catalog is the read-only view of every item definition.
type Catalog struct {
	items storage.Storer[*Item]
}

func NewCatalog(items storage.Storer[*Item]) *Catalog {
	return &Catalog{items: items}
}

// Get returns the item with the given id, or nil.
func (c *Catalog) Get(id string) *Item {
	return c.items.Get(id)
}

// Meta returns the display data for id. Unknown ids get the id as their name
// so the item can still be shown.
func (c *Catalog) Meta(id string) ItemMeta {
	item := c.items.Get(id)
	if item == nil {
		return ItemMeta{Name: id, Category: CategoryOther}
	}
	return ItemMeta{Name: item.Name, Emoji: item.Emoji, Category: item.Category}
}

// Shops returns the sorted names of every shop that sells something.
func (c *Catalog) Shops() []string {
	var shops []string
	for _, item := range c.items.GetAll() {
		if item.Shop != "" && !slices.Contains(shops, item.Shop) {
			shops = append(shops, item.Shop)
		}
	}
	slices.Sort(shops)
	return shops
}

// ShopItems returns the items a shop sells, cheapest first.
func (c *Catalog) ShopItems(shop string) []CatalogEntry {
	var entries []CatalogEntry
	for id, item := range c.items.GetAll() {
		if item.Shop == shop {
			entries = append(entries, CatalogEntry{ID: id, Item: item})
		}
	}
	slices.SortFunc(entries, func(a, b CatalogEntry) int {
		return cmp.Or(cmp.Compare(a.Price, b.Price), cmp.Compare(a.ID, b.ID))
	})
	return entries
}
