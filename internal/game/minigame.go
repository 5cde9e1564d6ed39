package game

import (
	"fmt"
	"log/slog"
	"slices"
)

// MinigameKind names a game an item can be played with.
type MinigameKind string

const (
	MinigamePuzzle MinigameKind = "puzzle"
)

// PuzzleReward is what solving the sliding puzzle pays.
const PuzzleReward = 5

func (k MinigameKind) Valid() bool {
	return k == MinigamePuzzle
}

// PuzzleView is what the front end renders for the minigame modal.
type PuzzleView struct {
	Item   string `json:"item"`
	Size   int    `json:"size"`
	Tiles  []int  `json:"tiles"`
	Moves  int    `json:"moves"`
	Solved bool   `json:"solved"`
}

// Minigames runs the game started from an item. Only one runs at a time.
type Minigames struct {
	ui     UI
	player *Player
	rng    RNG

	item   string
	puzzle *Puzzle
}

func NewMinigames(ui UI, player *Player, rng RNG) *Minigames {
	return &Minigames{ui: ui, player: player, rng: rng}
}

func (m *Minigames) Playing() bool {
	return m.puzzle != nil
}

// Start opens kind for the item called itemName, replacing any running game.
func (m *Minigames) Start(kind MinigameKind, itemName string) error {
	if kind != MinigamePuzzle {
		return fmt.Errorf("%w: %q", ErrNoMinigame, kind)
	}
	m.item = itemName
	m.puzzle = NewPuzzle(PuzzleSize, m.rng)
	m.ui.OpenModal(ModalMinigame, m.View())
	return nil
}

// Slide moves a puzzle tile. It reports whether the tile moved. Solving the
// puzzle pays PuzzleReward and ends the game.
func (m *Minigames) Slide(tile int) (bool, error) {
	if m.puzzle == nil {
		return false, ErrNotPlaying
	}
	if !m.puzzle.Slide(tile) {
		return false, nil
	}

	m.ui.OpenModal(ModalMinigame, m.View())
	if !m.puzzle.Solved() {
		return true, nil
	}

	m.player.AddCarrots(PuzzleReward)
	m.ui.ShowNotification(fmt.Sprintf("Goed gedaan! Je hebt de puzzel opgelost! +%d 🥕", PuzzleReward))
	m.ui.UpdateDisplay(m.player.Display())
	slog.Info("puzzle solved", "player", m.player.Name, "moves", m.puzzle.Moves)
	m.Close()
	return true, nil
}

func (m *Minigames) Close() {
	if m.puzzle == nil {
		return
	}
	m.puzzle = nil
	m.item = ""
	m.ui.CloseModal(ModalMinigame)
}

func (m *Minigames) View() PuzzleView {
	if m.puzzle == nil {
		return PuzzleView{}
	}
	return PuzzleView{
		Item:   m.item,
		Size:   m.puzzle.Size,
		Tiles:  slices.Clone(m.puzzle.Tiles),
		Moves:  m.puzzle.Moves,
		Solved: m.puzzle.Solved(),
	}
}
