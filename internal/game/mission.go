package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-cavia/internal/storage"
	"github.com/pixil98/go-errors"
)

// Mission is a request for TargetCount units of one item.
// ProgressCount only grows; a finished mission is replaced, never reset.
type Mission struct {
	RequiredItemID string `json:"item"`
	TargetCount    int    `json:"target"`
	ProgressCount  int    `json:"progress"`
	Text           string `json:"text"`
}

// Active reports whether the mission still needs deliveries.
func (m *Mission) Active() bool {
	return m != nil && m.ProgressCount < m.TargetCount
}

func (m *Mission) Remaining() int {
	if m == nil {
		return 0
	}
	return max(m.TargetCount-m.ProgressCount, 0)
}

func (m *Mission) Validate() error {
	el := errors.NewErrorList()
	if m.RequiredItemID == "" {
		el.Add(fmt.Errorf("mission item is required"))
	}
	if m.TargetCount < 1 {
		el.Add(fmt.Errorf("mission target must be at least 1"))
	}
	if m.ProgressCount < 0 || m.ProgressCount > m.TargetCount {
		el.Add(fmt.Errorf("mission progress %d out of range", m.ProgressCount))
	}
	return el.Err()
}

// MissionTemplate is one entry of the table new missions are drawn from.
type MissionTemplate struct {
	Item   storage.SmartIdentifier[*Item] `json:"item"`
	Target int                            `json:"target"`
	Text   string                         `json:"text"`
	Weight int                            `json:"weight,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (t *MissionTemplate) Validate() error {
	el := errors.NewErrorList()
	el.Add(t.Item.Validate())
	if t.Target < 1 {
		el.Add(fmt.Errorf("mission target must be at least 1"))
	}
	if t.Text == "" {
		el.Add(fmt.Errorf("mission text is required"))
	}
	if t.Weight < 0 {
		el.Add(fmt.Errorf("mission weight must not be negative"))
	}
	return el.Err()
}

func (t *MissionTemplate) NewMission() *Mission {
	return &Mission{
		RequiredItemID: t.Item.Id(),
		TargetCount:    t.Target,
		Text:           t.Text,
	}
}

// MissionPool draws fresh missions. Without weights every template is
// equally likely.
type MissionPool struct {
	templates []*MissionTemplate
	weights   []int
	rng       RNG
}

// NewMissionPool builds a pool from every template in the store. Template
// items are resolved against the catalog store.
func NewMissionPool(templates storage.Storer[*MissionTemplate], items storage.Storer[*Item], rng RNG) (*MissionPool, error) {
	all := templates.GetAll()
	if len(all) == 0 {
		return nil, ErrEmptyMissionPool
	}

	// Sort ids so a seeded RNG always draws the same sequence.
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	p := &MissionPool{rng: rng}
	for _, id := range ids {
		t := all[id]
		// Resolve a copy; templates are shared between sessions.
		ref := t.Item
		if err := ref.Resolve(items); err != nil {
			return nil, fmt.Errorf("mission template %q: %w", id, err)
		}
		p.templates = append(p.templates, t)
		p.weights = append(p.weights, t.Weight)
	}

	return p, nil
}

// Draw returns a new mission with no progress.
func (p *MissionPool) Draw() *Mission {
	return p.templates[weightedSelect(p.rng, p.weights)].NewMission()
}

func (p *MissionPool) Len() int {
	return len(p.templates)
}
