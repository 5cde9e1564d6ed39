package messaging

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-testutil"
)

func modalEvent(t *testing.T, id game.ModalID, view any) Event {
	t.Helper()
	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	return Event{Type: EventModalOpen, Modal: id, View: raw}
}

func TestRender(t *testing.T) {
	tests := map[string]struct {
		event    func(t *testing.T) Event
		contains []string
		absent   []string
		expErr   string
	}{
		"notification": {
			event:    func(t *testing.T) Event { return Event{Type: EventNotification, Message: "Bal gekocht!"} },
			contains: []string{"* Bal gekocht!"},
		},
		"display": {
			event:    func(t *testing.T) Event { return Event{Type: EventDisplay, Display: &game.Display{Carrots: 7}} },
			contains: []string{"🥕 7"},
		},
		"display missing": {
			event:  func(t *testing.T) Event { return Event{Type: EventDisplay} },
			expErr: "display event without display",
		},
		"mission in progress": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalMission, game.MissionView{
					Holder: "Ginger", Emoji: "🐹", Text: "Breng me 3 wortels!", Progress: 1, Target: 3,
				})
			},
			contains: []string{"🐹 Ginger: Breng me 3 wortels!", "[###-------] 1/3"},
		},
		"mission done": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalMission, game.MissionView{
					Holder: "Luxy", Emoji: "🐹", Text: "Bedankt voor je hulp! 🎉", Progress: 2, Target: 2, Done: true,
				})
			},
			contains: []string{"Luxy: Bedankt"},
			absent:   []string{"["},
		},
		"challenge choice": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalChallenge, game.ChallengeView{
					State: game.ChallengeShowingChoice, Animal: "Hond", Title: "Hond heeft een opdracht voor je!",
				})
			},
			contains: []string{"Hond heeft een opdracht", "spell", "math"},
		},
		"spelling task hides vowels": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalChallenge, game.ChallengeView{
					State: game.ChallengeShowingTask,
					Task:  &game.Task{Kind: game.TaskSpelling, Prompt: "Luister goed", Word: "konijn"},
				})
			},
			contains: []string{"Luister goed", "k_n_jn (6 letters)", "answer <antwoord>"},
			absent:   []string{"konijn"},
		},
		"math task": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalChallenge, game.ChallengeView{
					State: game.ChallengeShowingTask,
					Task:  &game.Task{Kind: game.TaskMath, Prompt: "Los deze tafelsom op: 3 × 4 =", Table: 3, Multiplier: 4},
				})
			},
			contains: []string{"3 × 4 ="},
			absent:   []string{"letters"},
		},
		"wrong answer": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalChallenge, game.ChallengeView{
					State:    game.ChallengeShowingFeedback,
					Task:     &game.Task{Kind: game.TaskMath},
					Feedback: &game.Feedback{Message: "Helaas, probeer het nog eens!"},
				})
			},
			contains: []string{"Helaas", "Probeer opnieuw"},
		},
		"puzzle board": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalMinigame, game.PuzzleView{
					Item: "Puzzel", Size: 3, Tiles: []int{1, 2, 3, 4, 0, 5, 7, 8, 6}, Moves: 4,
				})
			},
			contains: []string{"🧩 Puzzel", "   1  2  3\n   4  .  5\n   7  8  6", "Zetten: 4. Typ: schuif <nummer>"},
		},
		"puzzle solved": {
			event: func(t *testing.T) Event {
				return modalEvent(t, game.ModalMinigame, game.PuzzleView{
					Item: "Puzzel", Size: 3, Tiles: []int{1, 2, 3, 4, 5, 6, 7, 8, 0}, Moves: 12, Solved: true,
				})
			},
			contains: []string{"Opgelost in 12 zetten!"},
			absent:   []string{"schuif <nummer>"},
		},
		"unknown modal": {
			event:  func(t *testing.T) Event { return modalEvent(t, game.ModalShop, struct{}{}) },
			expErr: `unknown modal "shop"`,
		},
		"bad view": {
			event: func(t *testing.T) Event {
				return Event{Type: EventModalOpen, Modal: game.ModalMission, View: json.RawMessage(`"x"`)}
			},
			expErr: "decoding mission view",
		},
		"unknown type": {
			event:  func(t *testing.T) Event { return Event{Type: "explode"} },
			expErr: `unknown event type "explode"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := Render(tt.event(t))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output %q does not contain %q", out, s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output %q contains %q", out, s)
				}
			}
		})
	}
}

func TestRender_ModalClose(t *testing.T) {
	out, err := Render(Event{Type: EventModalClose, Modal: game.ModalMission})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "empty", out, "")
}

func TestPuzzleBoard(t *testing.T) {
	tests := map[string]struct {
		tiles []int
		size  int
		exp   string
	}{
		"three by three": {tiles: []int{8, 0, 1, 2, 3, 4, 5, 6, 7}, size: 3, exp: "   8  .  1\n   2  3  4\n   5  6  7"},
		"two by two":     {tiles: []int{1, 2, 3, 0}, size: 2, exp: "   1  2\n   3  ."},
		"no size":        {tiles: []int{1}, size: 0, exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "board", puzzleBoard(tt.tiles, tt.size), tt.exp)
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := map[string]struct {
		progress, target int
		exp              string
	}{
		"empty":     {progress: 0, target: 3, exp: "----------"},
		"half":      {progress: 1, target: 2, exp: "#####-----"},
		"full":      {progress: 5, target: 5, exp: "##########"},
		"overflow":  {progress: 9, target: 5, exp: "##########"},
		"no target": {progress: 0, target: 0, exp: "----------"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "bar", progressBar(tt.progress, tt.target), tt.exp)
		})
	}
}
