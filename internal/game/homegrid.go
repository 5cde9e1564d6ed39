package game

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	GridColumns = 8
	GridSpacing = 150.0
	GridOriginX = 200.0
	GridOriginY = 480.0

	// MinSeparation is the distance on each axis an item must keep from
	// every other placed item and NPC.
	MinSeparation = 100.0

	// MaxPlacementCandidates bounds the cell scan before Place gives up and
	// picks a random spot.
	MaxPlacementCandidates = 100
	FallbackWidth          = 800.0
	FallbackHeight         = 200.0

	// ItemHitSize is the side of the square hit box centred on a placed item.
	ItemHitSize = 80.0

	ReorganizeDuration = 500 * time.Millisecond
)

// PlacedItem is an item standing in the home world.
type PlacedItem struct {
	InstanceID string
	ItemID     string
	ItemMeta
	Color string

	// GridColumn and GridRow are -1 for items placed off grid.
	GridColumn int
	GridRow    int
	X, Y       float64

	Animating bool
	AnimStart time.Time
	FromX     float64
	FromY     float64
	ToX       float64
	ToY       float64
}

func (p *PlacedItem) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

// Contains reports whether (x, y) falls in the item's hit box.
func (p *PlacedItem) Contains(x, y float64) bool {
	half := ItemHitSize / 2
	return math.Abs(x-p.X) <= half && math.Abs(y-p.Y) <= half
}

// Grid owns the items placed in the home world and is the only thing that
// moves them. Items are kept in draw order, last on top.
type Grid struct {
	items     []*PlacedItem
	obstacles func() []Point
	rng       RNG
	now       func() time.Time
	newID     func() string
}

type GridOpt func(*Grid)

// WithObstacles supplies positions (NPCs) that placement must keep clear of.
func WithObstacles(f func() []Point) GridOpt {
	return func(g *Grid) {
		g.obstacles = f
	}
}

func WithGridRNG(rng RNG) GridOpt {
	return func(g *Grid) {
		g.rng = rng
	}
}

func WithGridClock(now func() time.Time) GridOpt {
	return func(g *Grid) {
		g.now = now
	}
}

func WithInstanceIDs(f func() string) GridOpt {
	return func(g *Grid) {
		g.newID = f
	}
}

func NewGrid(opts ...GridOpt) *Grid {
	g := &Grid{
		obstacles: func() []Point { return nil },
		rng:       NewRNG(time.Now().UnixNano()),
		now:       time.Now,
		newID:     uuid.NewString,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func cellPosition(index int) (col, row int, x, y float64) {
	col = index % GridColumns
	row = index / GridColumns
	return col, row, GridOriginX + float64(col)*GridSpacing, GridOriginY + float64(row)*GridSpacing
}

func (g *Grid) occupied(x, y float64) bool {
	blocked := func(p Point) bool {
		return math.Abs(p.X-x) < MinSeparation && math.Abs(p.Y-y) < MinSeparation
	}
	for _, it := range g.items {
		if blocked(it.Position()) {
			return true
		}
	}
	return slices.ContainsFunc(g.obstacles(), blocked)
}

// Place puts a new item on the first free grid cell in row-major order.
// After MaxPlacementCandidates occupied cells it falls back to a random
// position which may overlap.
func (g *Grid) Place(itemID string, meta ItemMeta, color string) *PlacedItem {
	p := &PlacedItem{
		InstanceID: g.newID(),
		ItemID:     itemID,
		ItemMeta:   meta,
		Color:      color,
		GridColumn: -1,
		GridRow:    -1,
	}

	placed := false
	for i := 0; i < MaxPlacementCandidates; i++ {
		col, row, x, y := cellPosition(i)
		if g.occupied(x, y) {
			continue
		}
		p.GridColumn, p.GridRow, p.X, p.Y = col, row, x, y
		placed = true
		break
	}

	if !placed {
		p.X = GridOriginX + g.rng.Float64()*FallbackWidth
		p.Y = GridOriginY + g.rng.Float64()*FallbackHeight
	}

	g.items = append(g.items, p)
	return p
}

// Restore adds an already positioned item, as loaded from a save.
func (g *Grid) Restore(p *PlacedItem) {
	if p.InstanceID == "" {
		p.InstanceID = g.newID()
	}
	g.items = append(g.items, p)
}

// Reorganize sorts items by category then item id and animates each one
// from where it is now to its new cell. Calling it again mid-animation
// restarts every animation from the current position.
func (g *Grid) Reorganize() {
	g.Tick()

	slices.SortStableFunc(g.items, func(a, b *PlacedItem) int {
		return cmp.Or(
			cmp.Compare(a.Category.rank(), b.Category.rank()),
			cmp.Compare(a.ItemID, b.ItemID),
		)
	})

	start := g.now()
	for i, it := range g.items {
		col, row, x, y := cellPosition(i)
		it.GridColumn, it.GridRow = col, row
		it.FromX, it.FromY = it.X, it.Y
		it.ToX, it.ToY = x, y
		it.AnimStart = start
		it.Animating = true
	}
}

// Tick advances running animations to the current time. Finished
// animations snap exactly to their target. It reports whether any item is
// still moving.
func (g *Grid) Tick() bool {
	now := g.now()
	moving := false
	for _, it := range g.items {
		if !it.Animating {
			continue
		}

		progress := float64(now.Sub(it.AnimStart)) / float64(ReorganizeDuration)
		if progress >= 1 {
			it.X, it.Y = it.ToX, it.ToY
			it.Animating = false
			continue
		}

		eased := easeOutCubic(max(progress, 0))
		it.X = it.FromX + (it.ToX-it.FromX)*eased
		it.Y = it.FromY + (it.ToY-it.FromY)*eased
		moving = true
	}
	return moving
}

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// MoveTo sets an item's position, stopping any animation on it. Grid cell
// coordinates are cleared since the item is no longer on a cell.
func (g *Grid) MoveTo(p *PlacedItem, x, y float64) {
	p.Animating = false
	p.X, p.Y = x, y
	p.GridColumn, p.GridRow = -1, -1
}

// BringToFront moves p to the end of the draw order.
func (g *Grid) BringToFront(p *PlacedItem) {
	i := slices.Index(g.items, p)
	if i < 0 {
		return
	}
	g.items = append(slices.Delete(g.items, i, i+1), p)
}

// ItemAt returns the top-most item whose hit box contains (x, y), or nil.
func (g *Grid) ItemAt(x, y float64) *PlacedItem {
	for i := len(g.items) - 1; i >= 0; i-- {
		if g.items[i].Contains(x, y) {
			return g.items[i]
		}
	}
	return nil
}

// Find returns the item with the given instance id, or nil.
func (g *Grid) Find(instanceID string) *PlacedItem {
	i := slices.IndexFunc(g.items, func(p *PlacedItem) bool { return p.InstanceID == instanceID })
	if i < 0 {
		return nil
	}
	return g.items[i]
}

// Remove deletes p. It reports whether p was present.
func (g *Grid) Remove(p *PlacedItem) bool {
	i := slices.Index(g.items, p)
	if i < 0 {
		return false
	}
	g.items = slices.Delete(g.items, i, i+1)
	return true
}

// Items returns the placed items in draw order.
func (g *Grid) Items() []*PlacedItem {
	return slices.Clone(g.items)
}

func (g *Grid) Len() int {
	return len(g.items)
}

// Clear removes every item.
func (g *Grid) Clear() {
	g.items = nil
}
