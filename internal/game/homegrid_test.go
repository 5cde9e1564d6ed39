package game

import (
	"fmt"
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestGrid(clock *fakeClock, obstacles ...Point) *Grid {
	n := 0
	return NewGrid(
		WithGridClock(clock.Now),
		WithGridRNG(&seqRNG{floats: []float64{0.5}}),
		WithObstacles(func() []Point { return obstacles }),
		WithInstanceIDs(func() string {
			n++
			return fmt.Sprintf("inst-%d", n)
		}),
	)
}

func TestGrid_PlaceRowMajor(t *testing.T) {
	g := newTestGrid(newFakeClock())

	seen := map[Point]bool{}
	for i := 0; i < 5; i++ {
		p := g.Place("carrot", meta("Wortel", CategoryFood), "")
		testutil.AssertEqual(t, fmt.Sprintf("item %d column", i), p.GridColumn, i)
		testutil.AssertEqual(t, fmt.Sprintf("item %d row", i), p.GridRow, 0)
		testutil.AssertEqual(t, fmt.Sprintf("item %d x", i), p.X, GridOriginX+float64(i)*GridSpacing)
		testutil.AssertEqual(t, fmt.Sprintf("item %d y", i), p.Y, GridOriginY)
		if seen[p.Position()] {
			t.Fatalf("item %d reused cell %v", i, p.Position())
		}
		seen[p.Position()] = true
	}
	testutil.AssertEqual(t, "len", g.Len(), 5)
}

func TestGrid_PlaceWrapsRows(t *testing.T) {
	g := newTestGrid(newFakeClock())
	var p *PlacedItem
	for i := 0; i <= GridColumns; i++ {
		p = g.Place("ball", meta("Bal", CategoryToy), "")
	}
	testutil.AssertEqual(t, "column", p.GridColumn, 0)
	testutil.AssertEqual(t, "row", p.GridRow, 1)
	testutil.AssertEqual(t, "y", p.Y, GridOriginY+GridSpacing)
}

func TestGrid_PlaceSkipsObstacles(t *testing.T) {
	tests := map[string]struct {
		obstacle Point
		expCol   int
	}{
		"npc on first cell":    {obstacle: Point{X: 210, Y: 500}, expCol: 1},
		"npc between cells":    {obstacle: Point{X: 275, Y: 480}, expCol: 2},
		"npc just far enough":  {obstacle: Point{X: 300, Y: 480}, expCol: 0},
		"npc far below":        {obstacle: Point{X: 200, Y: 580}, expCol: 0},
		"home pig at 600, 520": {obstacle: Point{X: 600, Y: 520}, expCol: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := newTestGrid(newFakeClock(), tt.obstacle)
			p := g.Place("carrot", meta("Wortel", CategoryFood), "")
			testutil.AssertEqual(t, "column", p.GridColumn, tt.expCol)
		})
	}
}

func TestGrid_PlaceFallback(t *testing.T) {
	var blocked []Point
	for i := 0; i < MaxPlacementCandidates; i++ {
		_, _, x, y := cellPosition(i)
		blocked = append(blocked, Point{X: x, Y: y})
	}
	g := newTestGrid(newFakeClock(), blocked...)

	p := g.Place("carrot", meta("Wortel", CategoryFood), "")

	testutil.AssertEqual(t, "column", p.GridColumn, -1)
	testutil.AssertEqual(t, "row", p.GridRow, -1)
	testutil.AssertEqual(t, "x", p.X, GridOriginX+0.5*FallbackWidth)
	testutil.AssertEqual(t, "y", p.Y, GridOriginY+0.5*FallbackHeight)
}

func TestGrid_ReorganizeAnimates(t *testing.T) {
	clock := newFakeClock()
	g := newTestGrid(clock)
	ball := g.Place("ball", meta("Bal", CategoryToy), "")
	carrot := g.Place("carrot", meta("Wortel", CategoryFood), "")

	g.Reorganize()

	testutil.AssertEqual(t, "carrot first", g.Items()[0].InstanceID, carrot.InstanceID)
	testutil.AssertEqual(t, "animating", carrot.Animating, true)

	clock.Advance(ReorganizeDuration / 2)
	testutil.AssertEqual(t, "still moving", g.Tick(), true)
	// 1 - (1 - 0.5)^3 of the way from 350 to 200
	expX := 350 - 150*0.875
	if math.Abs(carrot.X-expX) > 1e-9 {
		t.Errorf("mid animation x = %v, want %v", carrot.X, expX)
	}

	clock.Advance(ReorganizeDuration)
	testutil.AssertEqual(t, "finished", g.Tick(), false)
	testutil.AssertEqual(t, "carrot x", carrot.X, GridOriginX)
	testutil.AssertEqual(t, "ball x", ball.X, GridOriginX+GridSpacing)
	testutil.AssertEqual(t, "flag cleared", carrot.Animating, false)
}

func TestGrid_ReorganizeLastCallWins(t *testing.T) {
	clock := newFakeClock()
	g := newTestGrid(clock)
	g.Place("ball", meta("Bal", CategoryToy), "")
	g.Place("necklace", meta("Ketting", CategoryAccessory), "")
	g.Place("hay_small", meta("Klein Hooi Pakket", CategoryHay), "")

	g.Reorganize()
	clock.Advance(ReorganizeDuration / 5)

	// A new item arrives mid animation and changes the order.
	carrot := g.Place("carrot", meta("Wortel", CategoryFood), "")
	g.Reorganize()
	clock.Advance(ReorganizeDuration / 5)
	g.Tick()
	g.Reorganize()

	clock.Advance(2 * ReorganizeDuration)
	g.Tick()

	want := []string{"carrot", "hay_small", "ball", "necklace"}
	for i, it := range g.Items() {
		_, _, x, y := cellPosition(i)
		testutil.AssertEqual(t, fmt.Sprintf("item %d id", i), it.ItemID, want[i])
		testutil.AssertEqual(t, fmt.Sprintf("item %d x", i), it.X, x)
		testutil.AssertEqual(t, fmt.Sprintf("item %d y", i), it.Y, y)
		testutil.AssertEqual(t, fmt.Sprintf("item %d animating", i), it.Animating, false)
	}
	testutil.AssertEqual(t, "carrot first", g.Items()[0], carrot)
}

func TestGrid_ItemAt(t *testing.T) {
	g := newTestGrid(newFakeClock())
	a := g.Place("carrot", meta("Wortel", CategoryFood), "")
	b := g.Place("ball", meta("Bal", CategoryToy), "")
	g.MoveTo(b, a.X+20, a.Y)

	tests := map[string]struct {
		x, y float64
		exp  *PlacedItem
	}{
		"top most wins":   {x: a.X + 10, y: a.Y, exp: b},
		"only first":      {x: a.X - 30, y: a.Y, exp: a},
		"edge of hit box": {x: a.X - ItemHitSize/2, y: a.Y + ItemHitSize/2, exp: a},
		"outside hit box": {x: a.X - ItemHitSize/2 - 1, y: a.Y, exp: nil},
		"empty floor":     {x: 1000, y: 1000, exp: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "item", g.ItemAt(tt.x, tt.y), tt.exp)
		})
	}
}

func TestGrid_BringToFrontAndRemove(t *testing.T) {
	g := newTestGrid(newFakeClock())
	a := g.Place("carrot", meta("Wortel", CategoryFood), "")
	b := g.Place("ball", meta("Bal", CategoryToy), "")

	g.BringToFront(a)
	testutil.AssertEqual(t, "front", g.Items()[1], a)

	testutil.AssertEqual(t, "remove", g.Remove(a), true)
	testutil.AssertEqual(t, "remove again", g.Remove(a), false)
	testutil.AssertEqual(t, "left", g.Items()[0], b)
	testutil.AssertEqual(t, "find gone", g.Find(a.InstanceID) == nil, true)
	testutil.AssertEqual(t, "find kept", g.Find(b.InstanceID), b)
}

func TestGrid_DefaultIDsAreUnique(t *testing.T) {
	g := NewGrid()
	a := g.Place("carrot", meta("Wortel", CategoryFood), "")
	b := g.Place("carrot", meta("Wortel", CategoryFood), "")
	if a.InstanceID == "" || a.InstanceID == b.InstanceID {
		t.Errorf("instance ids %q and %q", a.InstanceID, b.InstanceID)
	}
}
