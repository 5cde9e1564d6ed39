package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

const (
	// NPCClickRadius and NPCReach bound where a click on a mission holder
	// counts: near the holder and with the player standing close by.
	NPCClickRadius = 35.0
	NPCReach       = 150.0

	AnimalClickRadius = 40.0
)

// Animal hands out challenges.
type Animal struct {
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	Emoji string  `json:"emoji"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func (a *Animal) Position() Point {
	return Point{X: a.X, Y: a.Y}
}

func (a *Animal) Validate() error {
	el := errors.NewErrorList()
	if a.Type == "" {
		el.Add(fmt.Errorf("animal type is required"))
	}
	if a.Name == "" {
		el.Add(fmt.Errorf("animal name is required"))
	}
	return el.Err()
}

// World is a themed area the player can travel to.
type World struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Home marks the world where items can be placed.
	Home    bool       `json:"home,omitempty"`
	Animals []*Animal  `json:"animals,omitempty"`
	NPCs    []*NPCSpec `json:"npcs,omitempty"`
	// Wheel is the hamster wheel standing in the world, if any.
	Wheel *WheelSpec `json:"wheel,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (w *World) Validate() error {
	el := errors.NewErrorList()
	if w.Name == "" {
		el.Add(fmt.Errorf("world name is required"))
	}

	for i, a := range w.Animals {
		if err := a.Validate(); err != nil {
			el.Add(fmt.Errorf("animal %d: %w", i, err))
		}
	}

	seen := map[string]bool{}
	for i, n := range w.NPCs {
		if err := n.Validate(); err != nil {
			el.Add(fmt.Errorf("npc %d: %w", i, err))
			continue
		}
		if seen[n.ID] {
			el.Add(fmt.Errorf("npc id %q is duplicated", n.ID))
		}
		seen[n.ID] = true
	}

	if w.Wheel != nil {
		if err := w.Wheel.Validate(); err != nil {
			el.Add(fmt.Errorf("wheel: %w", err))
		}
	}

	return el.Err()
}

// Selector satisfies storage.Selectable
func (w *World) Selector() string {
	return w.Name
}

// WorldInstance is one player's copy of a world. Its mission holders carry
// that player's mission progress.
type WorldInstance struct {
	ID      string
	Def     *World
	Holders []MissionHolder
}

func NewWorldInstance(id string, def *World) *WorldInstance {
	wi := &WorldInstance{ID: id, Def: def}
	for _, spec := range def.NPCs {
		wi.Holders = append(wi.Holders, spec.Build())
	}
	return wi
}

// Holder returns the mission holder with the given id, or nil.
func (wi *WorldInstance) Holder(id string) MissionHolder {
	for _, h := range wi.Holders {
		if h.ID() == id {
			return h
		}
	}
	return nil
}

// HolderPositions lists where the mission holders stand.
func (wi *WorldInstance) HolderPositions() []Point {
	pts := make([]Point, 0, len(wi.Holders))
	for _, h := range wi.Holders {
		pts = append(pts, h.Position())
	}
	return pts
}

// Hit is what a click landed on. At most one field is set.
type Hit struct {
	Holder MissionHolder
	Animal *Animal
}

// HitTest resolves a click at (x, y) by a player standing at player.
// Mission holders are checked before animals.
func (wi *WorldInstance) HitTest(x, y float64, player Point) Hit {
	at := Point{X: x, Y: y}
	for _, h := range wi.Holders {
		if h.Position().Dist(at) < NPCClickRadius && h.Position().Dist(player) < NPCReach {
			return Hit{Holder: h}
		}
	}
	for _, a := range wi.Def.Animals {
		if a.Position().Dist(at) < AnimalClickRadius {
			return Hit{Animal: a}
		}
	}
	return Hit{}
}
