package game

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-cavia/internal/storage"
)

// Content is the static game data every session reads from.
type Content struct {
	Items    storage.Storer[*Item]
	Worlds   storage.Storer[*World]
	Missions storage.Storer[*MissionTemplate]
	// Words overrides the spelling word list when set.
	Words []string
	// HomeWorld is where items can be placed.
	HomeWorld string
}

// Validate checks the content fits together.
func (c *Content) Validate() error {
	home := c.Worlds.Get(c.HomeWorld)
	if home == nil {
		return fmt.Errorf("%w: home world %q", ErrUnknownWorld, c.HomeWorld)
	}
	if !home.Home {
		return fmt.Errorf("world %q is not marked as home", c.HomeWorld)
	}
	if len(c.Missions.GetAll()) == 0 {
		return ErrEmptyMissionPool
	}
	return nil
}

// Session is one player's game. It builds and owns every game service and
// serialises access to them, since the connection and the driver tick
// reach it from different goroutines.
type Session struct {
	mu     sync.Mutex
	closed bool

	store localstore.Store
	ui    UI
	rng   RNG
	now   func() time.Time

	content *Content
	catalog *Catalog
	homeID  string

	player    *Player
	inv       *Inventory
	pool      *MissionPool
	coord     *Coordinator
	shop      *Shop
	grid      *Grid
	drag      *DragMachine
	challenge *Challenge
	mission   *MissionModal
	games     *Minigames
	// wheel is nil when the home world has none.
	wheel    *Wheel
	progress *Progress
	settings *Settings

	instances map[string]*WorldInstance
	current   *WorldInstance
}

type SessionOpt func(*Session)

func WithSessionRNG(rng RNG) SessionOpt {
	return func(s *Session) {
		s.rng = rng
	}
}

func WithSessionClock(now func() time.Time) SessionOpt {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session for name starting in world start. Progress
// is read with Load.
func NewSession(name, start string, content *Content, store localstore.Store, ui UI, opts ...SessionOpt) (*Session, error) {
	s := &Session{
		store:     store,
		ui:        ui,
		rng:       NewRNG(time.Now().UnixNano()),
		now:       time.Now,
		content:   content,
		catalog:   NewCatalog(content.Items),
		homeID:    content.HomeWorld,
		instances: map[string]*WorldInstance{},
	}
	for _, opt := range opts {
		opt(s)
	}

	pool, err := NewMissionPool(content.Missions, content.Items, s.rng)
	if err != nil {
		return nil, err
	}
	home, err := s.instance(s.homeID)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	s.settings = &settings
	s.progress = NewProgress()
	s.player = NewPlayer(name)
	s.pool = pool
	s.inv = NewInventory(ui)
	s.coord = NewCoordinator(s.inv, s.player, pool, ui)
	s.shop = NewShop(s.catalog, s.inv, s.player, ui)
	s.grid = NewGrid(
		WithObstacles(home.HolderPositions),
		WithGridRNG(s.rng),
		WithGridClock(s.now),
	)
	s.drag = NewDragMachine(s.grid, s.coord, func() []MissionHolder { return home.Holders }, ui, s.now)
	s.challenge = NewChallenge(content.Words, s.rng, s.player, ui, s.progress, s.settings)
	s.mission = NewMissionModal(ui)
	s.games = NewMinigames(ui, s.player, s.rng)
	if home.Def.Wheel != nil {
		s.wheel = NewWheel(*home.Def.Wheel)
	}

	s.current, err = s.instance(start)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// instance returns the player's copy of world id, creating it on first use.
func (s *Session) instance(id string) (*WorldInstance, error) {
	if wi, ok := s.instances[id]; ok {
		return wi, nil
	}
	def := s.content.Worlds.Get(id)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorld, id)
	}
	wi := NewWorldInstance(id, def)
	s.instances[id] = wi
	return wi, nil
}

// lock takes the session lock unless the session is closed.
func (s *Session) lock() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	return nil
}

// Close saves the session and shuts it. Later calls return ErrSessionClosed.
func (s *Session) Close(ctx context.Context) error {
	if err := s.Save(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.drag.PointerCancel()
	s.closeDialogs()
	return nil
}

func (s *Session) Name() string {
	return s.player.Name
}

// Status is a point in time view of the session.
type Status struct {
	Name      string   `json:"name"`
	World     string   `json:"world"`
	WorldName string   `json:"worldName"`
	Carrots   int      `json:"carrots"`
	Accessory string   `json:"accessory,omitempty"`
	Colors    Colors   `json:"colors"`
	Position  Point    `json:"position"`
	Inventory []Slot   `json:"inventory"`
	Selected  string   `json:"selected,omitempty"`
	Placed    int      `json:"placed"`
	Progress  Progress `json:"progress"`
	Settings  Settings `json:"settings"`
}

func (s *Session) Status() (Status, error) {
	if err := s.lock(); err != nil {
		return Status{}, err
	}
	defer s.mu.Unlock()

	st := Status{
		Name:      s.player.Name,
		World:     s.current.ID,
		WorldName: s.current.Def.Name,
		Carrots:   s.player.Carrots,
		Accessory: s.player.Accessory,
		Colors:    s.player.Colors,
		Position:  s.player.Position,
		Inventory: s.inv.Slots(),
		Placed:    s.grid.Len(),
		Progress: Progress{
			TableProgress:    maps.Clone(s.progress.TableProgress),
			CompletedTables:  slices.Clone(s.progress.CompletedTables),
			CorrectSpellings: slices.Clone(s.progress.CorrectSpellings),
		},
		Settings: Settings{
			SelectedTables:       slices.Clone(s.settings.SelectedTables),
			SelectedDifficulties: slices.Clone(s.settings.SelectedDifficulties),
		},
	}
	if sel := s.inv.Selected(); sel != nil {
		st.Selected = sel.ItemID
	}
	return st, nil
}

// Catalog exposes the read-only item definitions.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// ChangeWorld travels to world id. Open dialogs close and any drag is
// dropped where it is.
func (s *Session) ChangeWorld(id string) (*World, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	wi, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	s.closeDialogs()
	s.drag.PointerCancel()
	s.inv.ClearSelection()
	s.current = wi

	slog.Debug("world changed", "player", s.player.Name, "world", id)
	return wi.Def, nil
}

// Walk moves the player's guinea pig.
func (s *Session) Walk(x, y float64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.player.Position = Point{X: x, Y: y}
	return nil
}

// Look lists what can be clicked in the current world.
func (s *Session) Look() (*World, []MissionHolder, error) {
	if err := s.lock(); err != nil {
		return nil, nil, err
	}
	defer s.mu.Unlock()

	return s.current.Def, slices.Clone(s.current.Holders), nil
}

// Click resolves a click in the current world, opening the mission dialog
// of a holder or the challenge of an animal.
func (s *Session) Click(x, y float64) (Hit, error) {
	if err := s.lock(); err != nil {
		return Hit{}, err
	}
	defer s.mu.Unlock()

	hit := s.current.HitTest(x, y, s.player.Position)
	switch {
	case hit.Holder != nil:
		s.challenge.Close()
		s.games.Close()
		s.mission.Open(hit.Holder)
	case hit.Animal != nil:
		s.mission.Close()
		s.games.Close()
		s.challenge.Open(hit.Animal)
	}
	return hit, nil
}

// Talk opens the mission dialog of holder id in the current world, as if
// it had been clicked.
func (s *Session) Talk(id string) (MissionHolder, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	h := s.current.Holder(id)
	if h == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHolder, id)
	}
	s.challenge.Close()
	s.games.Close()
	s.mission.Open(h)
	return h, nil
}

// CloseModals hides any open dialog.
func (s *Session) CloseModals() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.closeDialogs()
	return nil
}

func (s *Session) closeDialogs() {
	s.challenge.Close()
	s.mission.Close()
	s.games.Close()
}

func (s *Session) ChallengeState() ChallengeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge.State()
}

func (s *Session) StartSpelling() (*Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if err := s.challenge.StartSpelling(); err != nil {
		return nil, err
	}
	return s.challenge.Task(), nil
}

func (s *Session) StartMath() (*Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if err := s.challenge.StartMath(); err != nil {
		return nil, err
	}
	return s.challenge.Task(), nil
}

func (s *Session) Answer(answer string) (Feedback, error) {
	if err := s.lock(); err != nil {
		return Feedback{}, err
	}
	defer s.mu.Unlock()

	return s.challenge.Submit(answer)
}

// Buy purchases one unit of itemID.
func (s *Session) Buy(itemID string) (bool, error) {
	if err := s.lock(); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	return s.shop.Buy(itemID)
}

// Select marks an inventory item as the one to hand over.
func (s *Session) Select(itemID string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if !s.inv.Select(itemID) {
		return fmt.Errorf("%w: %q", ErrItemNotHeld, itemID)
	}
	return nil
}

// UseItem hands one unit of itemID to the holder whose mission dialog is
// open. With no dialog open, food and hay are eaten instead. An empty
// itemID uses the selected item.
func (s *Session) UseItem(itemID string) (DeliveryResult, error) {
	if err := s.lock(); err != nil {
		return DeliveryResult{}, err
	}
	defer s.mu.Unlock()

	var slot *Slot
	if itemID == "" {
		slot = s.inv.Selected()
	} else {
		slot = s.inv.Get(itemID)
		if slot == nil {
			return DeliveryResult{}, fmt.Errorf("%w: %q", ErrItemNotHeld, itemID)
		}
	}

	target := s.mission.Holder()
	if target != nil {
		res := s.coord.AttemptDeliver(slot, target)
		s.mission.Refresh()
		return res, nil
	}

	if slot == nil || !slot.Category.Edible() {
		return DeliveryResult{}, ErrNoMissionOpen
	}
	s.inv.Remove(slot.ItemID, 1)
	s.ui.ShowNotification(fmt.Sprintf("%s gebruikt!", slot.Name))
	return DeliveryResult{Eaten: true}, nil
}

// Play starts the minigame of an item the player carries.
func (s *Session) Play(itemID string) (MinigameKind, error) {
	if err := s.lock(); err != nil {
		return "", err
	}
	defer s.mu.Unlock()

	slot := s.inv.Get(itemID)
	if slot == nil {
		return "", fmt.Errorf("%w: %q", ErrItemNotHeld, itemID)
	}
	item := s.catalog.Get(itemID)
	if item == nil || item.Minigame == "" {
		return "", fmt.Errorf("%w: %q", ErrNoMinigame, itemID)
	}

	s.closeDialogs()
	if err := s.games.Start(item.Minigame, slot.Name); err != nil {
		return "", err
	}
	return item.Minigame, nil
}

// Slide moves a tile of the running puzzle. It reports whether the tile
// moved.
func (s *Session) Slide(tile int) (bool, error) {
	if err := s.lock(); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	return s.games.Slide(tile)
}

func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games.Playing()
}

// Spin pushes the hamster wheel the player is standing in.
func (s *Session) Spin() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if s.current.ID != s.homeID || s.wheel == nil {
		return ErrNotAtHome
	}
	if !s.wheel.Contains(s.player.Position) {
		return ErrNotInWheel
	}
	s.wheel.Push(s.now())
	return nil
}

// Wheel returns the home world's hamster wheel spec and whether it is
// turning. ok is false when the home has no wheel.
func (s *Session) Wheel() (spec WheelSpec, spinning, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wheel == nil {
		return WheelSpec{}, false, false
	}
	return s.wheel.Spec(), s.wheel.Spinning(), true
}

// PlaceItem moves one unit of itemID from the inventory into the home.
func (s *Session) PlaceItem(itemID string) (PlacedItem, error) {
	if err := s.lock(); err != nil {
		return PlacedItem{}, err
	}
	defer s.mu.Unlock()

	if s.current.ID != s.homeID {
		return PlacedItem{}, ErrNotAtHome
	}
	slot := s.inv.Get(itemID)
	if slot == nil {
		return PlacedItem{}, fmt.Errorf("%w: %q", ErrItemNotHeld, itemID)
	}

	s.inv.Remove(itemID, 1)
	p := s.grid.Place(itemID, slot.ItemMeta, "")
	s.ui.ShowNotification(fmt.Sprintf("%s geplaatst!", slot.Name))
	return *p, nil
}

// Reorganize tidies the home into grid order.
func (s *Session) Reorganize() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if s.current.ID != s.homeID {
		return ErrNotAtHome
	}
	s.drag.PointerCancel()
	s.grid.Reorganize()
	return nil
}

// PlacedItems returns copies of the home items in draw order.
func (s *Session) PlacedItems() ([]PlacedItem, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	s.grid.Tick()
	items := make([]PlacedItem, 0, s.grid.Len())
	for _, it := range s.grid.Items() {
		items = append(items, *it)
	}
	return items, nil
}

// PointerDown starts dragging the home item under (x, y).
func (s *Session) PointerDown(x, y float64) (bool, error) {
	if err := s.lock(); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	if s.current.ID != s.homeID {
		return false, ErrNotAtHome
	}
	return s.drag.PointerDown(x, y), nil
}

func (s *Session) PointerMove(x, y float64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.drag.PointerMove(x, y)
	return nil
}

func (s *Session) PointerUp(x, y float64) (DropResult, error) {
	if err := s.lock(); err != nil {
		return DropResult{}, err
	}
	defer s.mu.Unlock()

	res := s.drag.PointerUp(x, y)
	if res.Target != nil {
		s.mission.Refresh()
	}
	return res, nil
}

func (s *Session) PointerCancel() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.drag.PointerCancel()
	return nil
}

func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Phase() == Dragging
}

// SelectTables sets the times tables math tasks are drawn from.
func (s *Session) SelectTables(tables []int) error {
	if err := validTables(tables); err != nil {
		return err
	}
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	t := slices.Clone(tables)
	slices.Sort(t)
	s.settings.SelectedTables = slices.Compact(t)
	return nil
}

// Customize recolours the player's guinea pig. Empty values are kept.
func (s *Session) Customize(body, belly string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if body != "" {
		s.player.Colors.Body = body
	}
	if belly != "" {
		s.player.Colors.Belly = belly
	}
	return nil
}

// Tick advances home animations and the hamster wheel. It is safe to call
// on a closed session.
func (s *Session) Tick(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.grid.Tick()
	if s.wheel != nil {
		if n := s.wheel.Tick(s.now()); n > 0 {
			s.player.AddCarrots(n)
			s.ui.UpdateDisplay(s.player.Display())
		}
	}
	return nil
}

func validTables(tables []int) error {
	if len(tables) == 0 {
		return fmt.Errorf("select at least one table")
	}
	for _, t := range tables {
		if t < 1 || t > 10 {
			return fmt.Errorf("table %d out of range 1-10", t)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
