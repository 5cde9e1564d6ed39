package game

import (
	"math"
	"time"
)

// DeliveryRange is how close to a mission holder an item must be dropped
// to count as a delivery.
const DeliveryRange = 60.0

type DragPhase int

const (
	DragIdle DragPhase = iota
	Dragging
)

func (p DragPhase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragState exists only between picking an item up and letting go.
type DragState struct {
	Item      *PlacedItem
	OffsetX   float64
	OffsetY   float64
	StartX    float64
	StartY    float64
	StartedAt time.Time
}

// DropResult describes how a drag ended.
type DropResult struct {
	Item     *PlacedItem
	Target   MissionHolder
	Delivery DeliveryResult
	// Reverted is set when a delivery was refused and the item went back to
	// where it was picked up.
	Reverted bool
}

// DragMachine moves placed items around the home world. Positions are
// written through the grid.
type DragMachine struct {
	grid    *Grid
	coord   *Coordinator
	holders func() []MissionHolder
	notify  Notifier
	now     func() time.Time

	state *DragState
}

func NewDragMachine(grid *Grid, coord *Coordinator, holders func() []MissionHolder, notify Notifier, now func() time.Time) *DragMachine {
	if now == nil {
		now = time.Now
	}
	return &DragMachine{
		grid:    grid,
		coord:   coord,
		holders: holders,
		notify:  notify,
		now:     now,
	}
}

func (d *DragMachine) Phase() DragPhase {
	if d.state == nil {
		return DragIdle
	}
	return Dragging
}

// State returns the active drag, or nil when idle.
func (d *DragMachine) State() *DragState {
	return d.state
}

// PointerDown picks up the top-most item under (x, y). It reports whether a
// drag started. It is ignored while already dragging.
func (d *DragMachine) PointerDown(x, y float64) bool {
	if d.state != nil {
		return false
	}

	it := d.grid.ItemAt(x, y)
	if it == nil {
		return false
	}

	// Freeze a reorganize animation where it currently is.
	d.grid.Tick()
	d.grid.MoveTo(it, it.X, it.Y)
	d.grid.BringToFront(it)

	d.state = &DragState{
		Item:      it,
		OffsetX:   x - it.X,
		OffsetY:   y - it.Y,
		StartX:    it.X,
		StartY:    it.Y,
		StartedAt: d.now(),
	}
	return true
}

func (d *DragMachine) PointerMove(x, y float64) {
	if d.state == nil {
		return
	}
	d.grid.MoveTo(d.state.Item, x-d.state.OffsetX, y-d.state.OffsetY)
}

// PointerUp ends the drag. Letting go with the pointer near a holder with an active mission
// attempts a delivery; anywhere else the item simply stays put.
func (d *DragMachine) PointerUp(x, y float64) DropResult {
	if d.state == nil {
		return DropResult{}
	}
	st := d.state
	d.state = nil

	res := DropResult{Item: st.Item}
	target := d.nearestHolder(x, y)
	if target == nil {
		return res
	}

	res.Target = target
	res.Delivery = d.coord.DeliverPlaced(st.Item, target)
	if res.Delivery.Accepted {
		d.grid.Remove(st.Item)
		return res
	}

	d.grid.MoveTo(st.Item, st.StartX, st.StartY)
	res.Reverted = true
	return res
}

// PointerCancel abandons the drag without a drop. The item stays where it
// was last moved to.
func (d *DragMachine) PointerCancel() {
	d.state = nil
}

func (d *DragMachine) nearestHolder(x, y float64) MissionHolder {
	var best MissionHolder
	bestDist := math.Inf(1)
	at := Point{X: x, Y: y}
	for _, h := range d.holders() {
		if !h.Mission().Active() {
			continue
		}
		dist := h.Position().Dist(at)
		if dist < DeliveryRange && dist < bestDist {
			best, bestDist = h, dist
		}
	}
	return best
}
