package game

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/pixil98/go-cavia/internal/localstore"
	"github.com/pixil98/go-testutil"
)

func newTestSession(t *testing.T, start string, st localstore.Store) (*Session, *recordingUI) {
	t.Helper()
	ui := &recordingUI{}
	clock := newFakeClock()
	s, err := NewSession("Tess", start, testContent(), st, ui,
		WithSessionRNG(&seqRNG{ints: []int{0}, floats: []float64{0.5}}),
		WithSessionClock(clock.Now),
	)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return s, ui
}

func TestNewSession_Errors(t *testing.T) {
	tests := map[string]struct {
		start   string
		content func() *Content
		expErr  error
	}{
		"unknown start world": {
			start:   "mars",
			content: testContent,
			expErr:  ErrUnknownWorld,
		},
		"unknown home world": {
			start: "stad",
			content: func() *Content {
				c := testContent()
				c.HomeWorld = "kasteel"
				return c
			},
			expErr: ErrUnknownWorld,
		},
		"no missions": {
			start: "stad",
			content: func() *Content {
				c := testContent()
				c.Missions = &mockStore[*MissionTemplate]{records: map[string]*MissionTemplate{}}
				return c
			},
			expErr: ErrEmptyMissionPool,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewSession("Tess", tt.start, tt.content(), localstore.NewMemoryStore(), &recordingUI{})
			testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
		})
	}
}

func TestContent_Validate(t *testing.T) {
	c := testContent()
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.HomeWorld = "stad"
	testutil.AssertErrorContains(t, c.Validate(), `world "stad" is not marked as home`)
}

func TestSession_BuyPlaceAndDeliverAtHome(t *testing.T) {
	s, ui := newTestSession(t, "thuis", localstore.NewMemoryStore())

	for i := 0; i < 3; i++ {
		if _, err := s.Buy("carrot"); err != nil {
			t.Fatalf("buy: %v", err)
		}
	}

	placed, err := s.PlaceItem("carrot")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	testutil.AssertEqual(t, "placed on first cell", placed.GridColumn, 0)

	st, _ := s.Status()
	testutil.AssertEqual(t, "carrots spent", st.Carrots, StartingCarrots-15)
	testutil.AssertEqual(t, "one placed", st.Placed, 1)
	testutil.AssertEqual(t, "two carried", st.Inventory[0].Quantity, 2)

	// Drag the placed carrot onto Ginger.
	ok, err := s.PointerDown(placed.X, placed.Y)
	testutil.AssertEqual(t, "grabbed", ok, true)
	if err != nil {
		t.Fatalf("pointer down: %v", err)
	}
	s.PointerMove(600, 520)
	res, _ := s.PointerUp(600, 520)
	testutil.AssertEqual(t, "accepted", res.Delivery.Accepted, true)

	// Hand the rest over through the mission dialog.
	if _, err := s.Talk("ginger"); err != nil {
		t.Fatalf("talk: %v", err)
	}
	s.UseItem("carrot")
	dr, err := s.UseItem("carrot")
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	testutil.AssertEqual(t, "completed", dr, DeliveryResult{Accepted: true, Completed: true})

	st, _ = s.Status()
	testutil.AssertEqual(t, "reward", st.Carrots, StartingCarrots-15+MissionReward)
	testutil.AssertEqual(t, "inventory empty", len(st.Inventory), 0)
	testutil.AssertEqual(t, "nothing placed", st.Placed, 0)
	testutil.AssertEqual(t, "mission modal shown", slices.Contains(ui.opened, ModalMission), true)
}

func TestSession_UseItemWithOpenMission(t *testing.T) {
	s, _ := newTestSession(t, "thuis", localstore.NewMemoryStore())
	s.Buy("carrot")
	s.Talk("ginger")

	_, err := s.UseItem("lettuce")
	testutil.AssertEqual(t, "not held", errors.Is(err, ErrItemNotHeld), true)

	res, err := s.UseItem("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "nothing selected", res.Accepted, false)

	res, err = s.UseItem("carrot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "delivered", res.Accepted, true)
	testutil.AssertEqual(t, "not eaten", res.Eaten, false)
}

func TestSession_UseItemWithoutMission(t *testing.T) {
	tests := map[string]struct {
		buy      []string
		selected string
		use      string
		expErr   error
		expEaten bool
		expNote  string
		expLeft  int
	}{
		"food is eaten": {
			buy:      []string{"carrot", "carrot"},
			use:      "carrot",
			expEaten: true,
			expNote:  "Wortel gebruikt!",
			expLeft:  1,
		},
		"selected hay is eaten": {
			buy:      []string{"hay_small"},
			selected: "hay_small",
			expEaten: true,
			expNote:  "Klein Hooi Pakket gebruikt!",
		},
		"toy needs a mission": {
			buy:     []string{"ball"},
			use:     "ball",
			expErr:  ErrNoMissionOpen,
			expLeft: 1,
		},
		"nothing selected": {
			expErr: ErrNoMissionOpen,
		},
		"not carried": {
			use:    "lettuce",
			expErr: ErrItemNotHeld,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, ui := newTestSession(t, "thuis", localstore.NewMemoryStore())
			for _, id := range tt.buy {
				if _, err := s.Buy(id); err != nil {
					t.Fatalf("buying %s: %v", id, err)
				}
			}
			if tt.selected != "" {
				if err := s.Select(tt.selected); err != nil {
					t.Fatalf("selecting: %v", err)
				}
			}

			res, err := s.UseItem(tt.use)
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "eaten", res.Eaten, tt.expEaten)
			if tt.expNote != "" {
				testutil.AssertEqual(t, "note", ui.lastNote(), tt.expNote)
			}

			st, _ := s.Status()
			left := 0
			for _, slot := range st.Inventory {
				left += slot.Quantity
			}
			testutil.AssertEqual(t, "left", left, tt.expLeft)
		})
	}
}

func TestSession_HomeOnlyActions(t *testing.T) {
	s, _ := newTestSession(t, "stad", localstore.NewMemoryStore())
	s.Buy("carrot")

	_, err := s.PlaceItem("carrot")
	testutil.AssertEqual(t, "place", errors.Is(err, ErrNotAtHome), true)
	testutil.AssertEqual(t, "reorganize", errors.Is(s.Reorganize(), ErrNotAtHome), true)
	_, err = s.PointerDown(200, 480)
	testutil.AssertEqual(t, "drag", errors.Is(err, ErrNotAtHome), true)

	st, _ := s.Status()
	testutil.AssertEqual(t, "still carried", st.Inventory[0].Quantity, 1)
}

func TestSession_ChangeWorldClosesModals(t *testing.T) {
	s, ui := newTestSession(t, "stad", localstore.NewMemoryStore())

	hit, _ := s.Click(300, 520)
	testutil.AssertEqual(t, "animal clicked", hit.Animal != nil, true)
	testutil.AssertEqual(t, "challenge open", s.ChallengeState(), ChallengeShowingChoice)

	if _, err := s.ChangeWorld("thuis"); err != nil {
		t.Fatalf("change world: %v", err)
	}
	testutil.AssertEqual(t, "challenge closed", s.ChallengeState(), ChallengeClosed)
	testutil.AssertEqual(t, "close sent", slices.Contains(ui.closed, ModalChallenge), true)

	_, err := s.ChangeWorld("mars")
	testutil.AssertEqual(t, "unknown", errors.Is(err, ErrUnknownWorld), true)
	st, _ := s.Status()
	testutil.AssertEqual(t, "stayed home", st.World, "thuis")
}

func TestSession_ChangeWorldCancelsDrag(t *testing.T) {
	s, _ := newTestSession(t, "thuis", localstore.NewMemoryStore())
	s.Buy("ball")
	p, _ := s.PlaceItem("ball")
	s.PointerDown(p.X, p.Y)
	testutil.AssertEqual(t, "dragging", s.Dragging(), true)

	s.ChangeWorld("stad")
	testutil.AssertEqual(t, "idle", s.Dragging(), false)
}

func TestSession_Challenge(t *testing.T) {
	s, _ := newTestSession(t, "stad", localstore.NewMemoryStore())
	s.Click(300, 520)

	task, err := s.StartMath()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	fb, err := s.Answer("1")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	testutil.AssertEqual(t, "task", task.Table*task.Multiplier, 1)
	testutil.AssertEqual(t, "correct", fb.Correct, true)

	st, _ := s.Status()
	testutil.AssertEqual(t, "reward", st.Carrots, StartingCarrots+ChallengeReward)
	testutil.AssertEqual(t, "table progress", st.Progress.TableProgress[1], 1)
}

func TestSession_SelectTables(t *testing.T) {
	tests := map[string]struct {
		tables []int
		expErr string
		exp    []int
	}{
		"sorted and unique": {tables: []int{7, 3, 7}, exp: []int{3, 7}},
		"empty":             {tables: nil, expErr: "select at least one table"},
		"out of range":      {tables: []int{0, 4}, expErr: "table 0 out of range"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestSession(t, "stad", localstore.NewMemoryStore())
			err := s.SelectTables(tt.tables)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			st, _ := s.Status()
			if !slices.Equal(st.Settings.SelectedTables, tt.exp) {
				t.Errorf("tables = %v, want %v", st.Settings.SelectedTables, tt.exp)
			}
		})
	}
}

func TestSession_Close(t *testing.T) {
	st := localstore.NewMemoryStore()
	s, _ := newTestSession(t, "stad", st)

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	_, err := s.Buy("carrot")
	testutil.AssertEqual(t, "closed", errors.Is(err, ErrSessionClosed), true)
	testutil.AssertEqual(t, "tick is safe", s.Tick(context.Background()), nil)

	_, found, _ := st.Get(context.Background(), KeyCarrots)
	testutil.AssertEqual(t, "saved on close", found, true)
}

func TestSession_Spin(t *testing.T) {
	tests := map[string]struct {
		start  string
		walkTo *Point
		expErr error
	}{
		"away from home":   {start: "stad", expErr: ErrNotAtHome},
		"outside wheel":    {start: "thuis", expErr: ErrNotInWheel},
		"inside the wheel": {start: "thuis", walkTo: &Point{X: 1520, Y: 510}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ui := &recordingUI{}
			clock := newFakeClock()
			s, err := NewSession("Tess", tt.start, testContent(), localstore.NewMemoryStore(), ui,
				WithSessionRNG(&seqRNG{}),
				WithSessionClock(clock.Now),
			)
			if err != nil {
				t.Fatalf("creating session: %v", err)
			}
			if tt.walkTo != nil {
				s.Walk(tt.walkTo.X, tt.walkTo.Y)
			}

			for range 5 {
				err = s.Spin()
			}
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, spinning, ok := s.Wheel()
			testutil.AssertEqual(t, "has wheel", ok, true)
			testutil.AssertEqual(t, "spinning", spinning, true)

			for range 60 {
				clock.Advance(50 * time.Millisecond)
				s.Tick(context.Background())
			}

			st, _ := s.Status()
			testutil.AssertEqual(t, "carrots", st.Carrots, StartingCarrots+2)
			testutil.AssertEqual(t, "display", ui.displays[len(ui.displays)-1].Carrots, StartingCarrots+2)
			_, spinning, _ = s.Wheel()
			testutil.AssertEqual(t, "stopped", spinning, false)
		})
	}
}

func TestSession_PlayPuzzle(t *testing.T) {
	s, ui := newTestSession(t, "thuis", localstore.NewMemoryStore())

	_, err := s.Play("puzzle")
	testutil.AssertEqual(t, "not held", errors.Is(err, ErrItemNotHeld), true)

	s.Buy("puzzle")
	s.Buy("carrot")
	_, err = s.Play("carrot")
	testutil.AssertEqual(t, "no minigame", errors.Is(err, ErrNoMinigame), true)

	s.Talk("ginger")
	kind, err := s.Play("puzzle")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	testutil.AssertEqual(t, "kind", kind, MinigamePuzzle)
	testutil.AssertEqual(t, "playing", s.Playing(), true)
	testutil.AssertEqual(t, "mission closed", slices.Contains(ui.closed, ModalMission), true)
	testutil.AssertEqual(t, "opened", ui.opened[len(ui.opened)-1], ModalMinigame)

	moved, err := s.Slide(0)
	if err != nil {
		t.Fatalf("slide: %v", err)
	}
	testutil.AssertEqual(t, "gap does not move", moved, false)

	st, _ := s.Status()
	kept := slices.ContainsFunc(st.Inventory, func(sl Slot) bool { return sl.ItemID == "puzzle" })
	testutil.AssertEqual(t, "puzzle kept", kept, true)

	if _, err := s.ChangeWorld("stad"); err != nil {
		t.Fatalf("change world: %v", err)
	}
	testutil.AssertEqual(t, "closed by travel", s.Playing(), false)
	_, err = s.Slide(1)
	testutil.AssertEqual(t, "not playing", errors.Is(err, ErrNotPlaying), true)
}
