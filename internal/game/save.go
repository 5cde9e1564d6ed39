package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-cavia/internal/localstore"
)

// Keys a session is saved under.
const (
	KeyTableProgress        = "tableProgress"
	KeyCompletedTables      = "completedTables"
	KeyCorrectSpellings     = "correctSpellings"
	KeyHomeItems            = "homeItems"
	KeyHomeProgress         = "homeInventoryProgress"
	KeyCarrots              = "carrots"
	KeySelectedTables       = "selectedTables"
	KeySelectedDifficulties = "selectedDifficulties"
	KeyCustomization        = "caviaCustomization"
)

var saveKeys = []string{
	KeyTableProgress,
	KeyCompletedTables,
	KeyCorrectSpellings,
	KeyHomeItems,
	KeyHomeProgress,
	KeyCarrots,
	KeySelectedTables,
	KeySelectedDifficulties,
	KeyCustomization,
}

type homeItemRecord struct {
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

type homeItemsRecord struct {
	Items []homeItemRecord `json:"items"`
}

type holderRecord struct {
	ID              string   `json:"id"`
	World           string   `json:"world"`
	Mission         *Mission `json:"mission,omitempty"`
	MissionProgress int      `json:"missionProgress"`
	Accessory       string   `json:"accessory,omitempty"`
}

type homeProgressRecord struct {
	Missions struct {
		GuineaPigs []holderRecord `json:"guineaPigs"`
	} `json:"missions"`
}

type customizationRecord struct {
	BodyColor  string `json:"bodyColor"`
	BellyColor string `json:"bellyColor"`
	Accessory  string `json:"accessory"`
}

// snapshot collects everything worth keeping. Callers hold s.mu.
func (s *Session) snapshot() (localstore.Entries, error) {
	var e localstore.Entries

	var home homeItemsRecord
	home.Items = []homeItemRecord{}
	for _, it := range s.grid.Items() {
		x, y := it.X, it.Y
		if it.Animating {
			x, y = it.ToX, it.ToY
		}
		home.Items = append(home.Items, homeItemRecord{Type: it.ItemID, Name: it.Name, X: x, Y: y, Color: it.Color})
	}

	var progress homeProgressRecord
	for _, wid := range sortedKeys(s.instances) {
		for _, h := range s.instances[wid].Holders {
			rec := holderRecord{ID: h.ID(), World: wid, Mission: h.Mission()}
			if m := h.Mission(); m != nil {
				rec.MissionProgress = m.ProgressCount
			}
			if gp, ok := h.(*GuineaPig); ok {
				rec.Accessory = gp.Accessory
			}
			progress.Missions.GuineaPigs = append(progress.Missions.GuineaPigs, rec)
		}
	}

	accessory := s.player.Accessory
	if accessory == "" {
		accessory = "none"
	}

	values := []struct {
		key string
		val any
	}{
		{KeyTableProgress, s.progress.TableProgress},
		{KeyCompletedTables, nonNil(s.progress.CompletedTables)},
		{KeyCorrectSpellings, nonNil(s.progress.CorrectSpellings)},
		{KeyHomeItems, home},
		{KeyHomeProgress, progress},
		{KeyCarrots, s.player.Carrots},
		{KeySelectedTables, nonNil(s.settings.SelectedTables)},
		{KeySelectedDifficulties, nonNil(s.settings.SelectedDifficulties)},
		{KeyCustomization, customizationRecord{
			BodyColor:  s.player.Colors.Body,
			BellyColor: s.player.Colors.Belly,
			Accessory:  accessory,
		}},
	}
	for _, v := range values {
		if err := e.Set(v.key, v.val); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// restore applies saved entries. A value that does not decode is logged and
// the default is kept. The inventory always starts empty. Callers hold s.mu.
func (s *Session) restore(e localstore.Entries) {
	s.inv.Clear()

	load := func(key string, out any) bool {
		found, err := e.Get(key, out)
		if err != nil {
			slog.Warn("ignoring corrupt saved value", "player", s.player.Name, "key", key, "error", err)
			return false
		}
		return found
	}

	var tp map[int]int
	if load(KeyTableProgress, &tp) && tp != nil {
		s.progress.TableProgress = tp
	}
	var ct []int
	if load(KeyCompletedTables, &ct) {
		s.progress.CompletedTables = ct
	}
	var cs []string
	if load(KeyCorrectSpellings, &cs) {
		s.progress.CorrectSpellings = cs
	}

	var carrots int
	if load(KeyCarrots, &carrots) && carrots >= 0 {
		s.player.Carrots = carrots
	}

	var tables []int
	if load(KeySelectedTables, &tables) && validTables(tables) == nil {
		s.settings.SelectedTables = tables
	}
	var difficulties []int
	if load(KeySelectedDifficulties, &difficulties) {
		s.settings.SelectedDifficulties = difficulties
	}

	var custom customizationRecord
	if load(KeyCustomization, &custom) {
		if custom.BodyColor != "" {
			s.player.Colors.Body = custom.BodyColor
		}
		if custom.BellyColor != "" {
			s.player.Colors.Belly = custom.BellyColor
		}
		if custom.Accessory != "none" {
			s.player.Accessory = custom.Accessory
		}
	}

	var progress homeProgressRecord
	if load(KeyHomeProgress, &progress) {
		s.restoreHolders(progress.Missions.GuineaPigs)
	}

	var home homeItemsRecord
	if load(KeyHomeItems, &home) {
		s.grid.Clear()
		for _, rec := range home.Items {
			if rec.Type == "" {
				continue
			}
			meta := s.catalog.Meta(rec.Type)
			if rec.Name != "" {
				meta.Name = rec.Name
			}
			s.grid.Restore(&PlacedItem{
				ItemID:     rec.Type,
				ItemMeta:   meta,
				Color:      rec.Color,
				GridColumn: -1,
				GridRow:    -1,
				X:          rec.X,
				Y:          rec.Y,
			})
		}
	}
}

func (s *Session) restoreHolders(records []holderRecord) {
	for _, rec := range records {
		wid := rec.World
		if wid == "" {
			wid = s.homeID
		}
		wi, err := s.instance(wid)
		if err != nil {
			continue
		}
		h := wi.Holder(rec.ID)
		if h == nil {
			continue
		}

		switch {
		case rec.Mission != nil && rec.Mission.Validate() == nil:
			m := *rec.Mission
			h.AssignMission(&m)
		case h.Mission() != nil:
			h.Mission().ProgressCount = min(max(rec.MissionProgress, 0), h.Mission().TargetCount)
		}

		if gp, ok := h.(*GuineaPig); ok {
			gp.Accessory = rec.Accessory
		}
	}
}

// Load reads the saved game into the session.
func (s *Session) Load(ctx context.Context) error {
	e, err := localstore.Read(ctx, s.store, saveKeys...)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.restore(e)
	s.ui.UpdateDisplay(s.player.Display())
	return nil
}

// Save writes the session to its store.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	e, err := s.snapshot()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if err := localstore.Write(ctx, s.store, e); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
