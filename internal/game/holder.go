package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// HolderKind tells mission holders apart for display.
type HolderKind string

const (
	KindGuineaPig HolderKind = "guinea_pig"
	KindHorse     HolderKind = "horse"
)

// MissionHolder is anything that can ask the player for items.
type MissionHolder interface {
	ID() string
	Name() string
	Kind() HolderKind
	Emoji() string
	Position() Point
	// Mission returns the current mission, or nil when the holder is idle.
	Mission() *Mission
	AssignMission(m *Mission)
}

// Colors is the fur colouring used when drawing an NPC.
type Colors struct {
	Body  string `json:"body"`
	Belly string `json:"belly"`
}

type npc struct {
	id      string
	name    string
	pos     Point
	colors  Colors
	mission *Mission
}

func (n *npc) ID() string               { return n.id }
func (n *npc) Name() string             { return n.name }
func (n *npc) Position() Point          { return n.pos }
func (n *npc) Colors() Colors           { return n.colors }
func (n *npc) Mission() *Mission        { return n.mission }
func (n *npc) AssignMission(m *Mission) { n.mission = m }

// GuineaPig lives in the home world and can wear an accessory.
type GuineaPig struct {
	npc
	Accessory string
}

func (g *GuineaPig) Kind() HolderKind { return KindGuineaPig }
func (g *GuineaPig) Emoji() string    { return "🐹" }

// Horse lives in the meadow.
type Horse struct {
	npc
}

func (h *Horse) Kind() HolderKind { return KindHorse }
func (h *Horse) Emoji() string    { return "🐴" }

// NPCSpec is how a mission holder is declared in a world asset.
type NPCSpec struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Kind    HolderKind `json:"kind"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Colors  Colors     `json:"colors"`
	Mission *Mission   `json:"mission,omitempty"`
}

func (s *NPCSpec) Validate() error {
	el := errors.NewErrorList()
	if s.ID == "" {
		el.Add(fmt.Errorf("npc id is required"))
	}
	if s.Name == "" {
		el.Add(fmt.Errorf("npc name is required"))
	}
	switch s.Kind {
	case KindGuineaPig, KindHorse:
	default:
		el.Add(fmt.Errorf("npc kind %q is invalid", s.Kind))
	}
	if s.Mission != nil {
		el.Add(s.Mission.Validate())
	}
	return el.Err()
}

// Build creates a fresh holder with its own copy of the starting mission.
func (s *NPCSpec) Build() MissionHolder {
	base := npc{
		id:     s.ID,
		name:   s.Name,
		pos:    Point{X: s.X, Y: s.Y},
		colors: s.Colors,
	}
	if s.Mission != nil {
		m := *s.Mission
		base.mission = &m
	}

	if s.Kind == KindHorse {
		return &Horse{npc: base}
	}
	return &GuineaPig{npc: base}
}
