package game

import (
	"maps"
	"time"

	"github.com/pixil98/go-cavia/internal/storage"
)

// recordingUI captures everything the game sends to the front end.
type recordingUI struct {
	notes    []string
	displays []Display
	opened   []ModalID
	closed   []ModalID
	views    []any
}

func (r *recordingUI) ShowNotification(msg string) { r.notes = append(r.notes, msg) }
func (r *recordingUI) UpdateDisplay(d Display)     { r.displays = append(r.displays, d) }
func (r *recordingUI) OpenModal(id ModalID, view any) {
	r.opened = append(r.opened, id)
	r.views = append(r.views, view)
}
func (r *recordingUI) CloseModal(id ModalID) { r.closed = append(r.closed, id) }

func (r *recordingUI) lastNote() string {
	if len(r.notes) == 0 {
		return ""
	}
	return r.notes[len(r.notes)-1]
}

// mockStore implements storage.Storer for testing
type mockStore[T storage.ValidatingSpec] struct {
	records map[string]T
}

func (m *mockStore[T]) Get(id string) T {
	return m.records[id]
}

func (m *mockStore[T]) GetAll() map[string]T {
	return maps.Clone(m.records)
}

func (m *mockStore[T]) Save(id string, v T) error {
	m.records[id] = v
	return nil
}

// seqRNG replays fixed values so draws are predictable.
type seqRNG struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *seqRNG) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *seqRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testItems() *mockStore[*Item] {
	return &mockStore[*Item]{records: map[string]*Item{
		"carrot":    {Name: "Wortel", Price: 5, Emoji: "🥕", Category: CategoryFood, Shop: "Groente Markt"},
		"lettuce":   {Name: "Sla", Price: 3, Emoji: "🥬", Category: CategoryFood, Shop: "Groente Markt"},
		"hay_small": {Name: "Klein Hooi Pakket", Price: 8, Emoji: "🌾", Category: CategoryHay, Shop: "Hooi Winkel"},
		"ball":      {Name: "Bal", Price: 10, Emoji: "⚽", Category: CategoryToy, Shop: "Speelgoedwinkel"},
		"puzzle":    {Name: "Puzzel", Price: 15, Emoji: "🧩", Category: CategoryToy, Shop: "Speelgoedwinkel", Minigame: MinigamePuzzle},
		"bow":       {Name: "Strik", Price: 10, Emoji: "🎀", Category: CategoryAccessory, Shop: "Accessoires", Wearable: true},
		"necklace":  {Name: "Ketting", Price: 25, Emoji: "💎", Category: CategoryAccessory, Shop: "Accessoires"},
		"shell":     {Name: "Schelp", Emoji: "🐚", Category: CategoryOther},
	}}
}

func testMissions() *mockStore[*MissionTemplate] {
	return &mockStore[*MissionTemplate]{records: map[string]*MissionTemplate{
		"hungry-carrot": {Item: storage.NewSmartIdentifier[*Item]("carrot"), Target: 3, Text: "Ik heb weer honger! Breng me 3 wortels!"},
		"want-lettuce":  {Item: storage.NewSmartIdentifier[*Item]("lettuce"), Target: 2, Text: "Ik wil graag 2 stukken sla!"},
	}}
}

func testWorlds() *mockStore[*World] {
	return &mockStore[*World]{records: map[string]*World{
		"thuis": {
			Name: "Thuis",
			Home: true,
			NPCs: []*NPCSpec{
				{ID: "ginger", Name: "Ginger", Kind: KindGuineaPig, X: 600, Y: 520,
					Mission: &Mission{RequiredItemID: "carrot", TargetCount: 3, Text: "Ik heb zo'n honger! Breng me 3 wortels!"}},
				{ID: "chinto", Name: "Chinto", Kind: KindGuineaPig, X: 900, Y: 520,
					Mission: &Mission{RequiredItemID: "bow", TargetCount: 1, Text: "Ik wil graag een mooie strik!"}},
			},
			Wheel: &WheelSpec{X: 1500, Y: 500, Radius: 80},
		},
		"paarden": {
			Name: "Paarden Wei",
			NPCs: []*NPCSpec{
				{ID: "bella", Name: "Bella", Kind: KindHorse, X: 700, Y: 480,
					Mission: &Mission{RequiredItemID: "hay_small", TargetCount: 2, Text: "Ik heb hooi nodig!"}},
			},
		},
		"stad": {
			Name:    "Stad",
			Animals: []*Animal{{Type: "hond", Name: "Hond", Emoji: "🐕", X: 300, Y: 520}},
		},
	}}
}

func testContent() *Content {
	return &Content{
		Items:     testItems(),
		Worlds:    testWorlds(),
		Missions:  testMissions(),
		HomeWorld: "thuis",
	}
}

func testPool(rng RNG) *MissionPool {
	pool, err := NewMissionPool(testMissions(), testItems(), rng)
	if err != nil {
		panic(err)
	}
	return pool
}

func meta(name string, cat Category) ItemMeta {
	return ItemMeta{Name: name, Category: cat}
}
