package game

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const (
	// ChallengeReward is granted for every correct answer.
	ChallengeReward = 10

	// TableCompleteAt is how many correct answers finish a times table.
	TableCompleteAt = 10

	MaxMultiplier = 10
)

type ChallengeState int

const (
	ChallengeClosed ChallengeState = iota
	ChallengeShowingChoice
	ChallengeShowingTask
	ChallengeShowingFeedback
)

func (s ChallengeState) String() string {
	switch s {
	case ChallengeShowingChoice:
		return "choice"
	case ChallengeShowingTask:
		return "task"
	case ChallengeShowingFeedback:
		return "feedback"
	default:
		return "closed"
	}
}

func (s ChallengeState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type TaskKind string

const (
	TaskSpelling TaskKind = "spelling"
	TaskMath     TaskKind = "math"
)

// Task is one question. Word is the spelling word; front ends speak it
// aloud rather than show it.
type Task struct {
	Kind       TaskKind `json:"kind"`
	Prompt     string   `json:"prompt"`
	Word       string   `json:"speak,omitempty"`
	Table      int      `json:"table,omitempty"`
	Multiplier int      `json:"multiplier,omitempty"`
}

func (t *Task) check(answer string) bool {
	switch t.Kind {
	case TaskSpelling:
		return normalizeAnswer(answer) == normalizeAnswer(t.Word)
	case TaskMath:
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		return err == nil && n == t.Table*t.Multiplier
	}
	return false
}

var folder = cases.Fold()

// normalizeAnswer makes typed answers comparable: surrounding space is
// dropped, composed and decomposed accents compare equal, case is folded.
func normalizeAnswer(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Feedback is the verdict on a submitted answer.
type Feedback struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
	Reward  int    `json:"reward,omitempty"`
	// Solution is only set for a wrong spelling answer.
	Solution string `json:"solution,omitempty"`
}

// Progress is what a player has achieved in challenges over time.
type Progress struct {
	TableProgress    map[int]int `json:"tableProgress"`
	CompletedTables  []int       `json:"completedTables"`
	CorrectSpellings []string    `json:"correctSpellings"`
}

func NewProgress() *Progress {
	return &Progress{TableProgress: map[int]int{}}
}

func (p *Progress) recordTable(table int) {
	if p.TableProgress == nil {
		p.TableProgress = map[int]int{}
	}
	p.TableProgress[table]++
	if p.TableProgress[table] >= TableCompleteAt && !slices.Contains(p.CompletedTables, table) {
		p.CompletedTables = append(p.CompletedTables, table)
		slices.Sort(p.CompletedTables)
	}
}

func (p *Progress) recordSpelling(word string) {
	if !slices.Contains(p.CorrectSpellings, word) {
		p.CorrectSpellings = append(p.CorrectSpellings, word)
	}
}

// Settings are the player's practice choices.
type Settings struct {
	SelectedTables       []int `json:"selectedTables"`
	SelectedDifficulties []int `json:"selectedDifficulties"`
}

func DefaultSettings() Settings {
	return Settings{
		SelectedTables:       []int{1, 2, 3, 4, 5},
		SelectedDifficulties: []int{6, 7},
	}
}

// ChallengeView is what the front end renders for the challenge modal.
type ChallengeView struct {
	State    ChallengeState `json:"state"`
	Animal   string         `json:"animal"`
	Title    string         `json:"title"`
	Task     *Task          `json:"task,omitempty"`
	Feedback *Feedback      `json:"feedback,omitempty"`
}

// Challenge runs the question dialog an animal opens.
type Challenge struct {
	words    []string
	rng      RNG
	player   *Player
	ui       UI
	progress *Progress
	settings *Settings

	state    ChallengeState
	animal   *Animal
	task     *Task
	feedback *Feedback
}

func NewChallenge(words []string, rng RNG, player *Player, ui UI, progress *Progress, settings *Settings) *Challenge {
	if len(words) == 0 {
		words = SpellingWords
	}
	return &Challenge{
		words:    words,
		rng:      rng,
		player:   player,
		ui:       ui,
		progress: progress,
		settings: settings,
	}
}

func (c *Challenge) State() ChallengeState {
	return c.state
}

func (c *Challenge) Task() *Task {
	return c.task
}

func (c *Challenge) View() ChallengeView {
	v := ChallengeView{State: c.state, Task: c.task, Feedback: c.feedback}
	if c.animal != nil {
		v.Animal = c.animal.Name
		v.Title = fmt.Sprintf("%s heeft een opdracht voor je!", c.animal.Name)
	}
	return v
}

// Open shows the choice between a spelling and a math task. An open
// challenge is replaced.
func (c *Challenge) Open(a *Animal) {
	c.animal = a
	c.task = nil
	c.feedback = nil
	c.state = ChallengeShowingChoice
	c.ui.OpenModal(ModalChallenge, c.View())
}

func (c *Challenge) StartSpelling() error {
	if c.state != ChallengeShowingChoice {
		return fmt.Errorf("%w: %s", ErrChallengeState, c.state)
	}
	word := c.words[c.rng.Intn(len(c.words))]
	c.start(&Task{
		Kind:   TaskSpelling,
		Prompt: "Luister goed en typ het woord dat je hoort:",
		Word:   word,
	})
	return nil
}

func (c *Challenge) StartMath() error {
	if c.state != ChallengeShowingChoice {
		return fmt.Errorf("%w: %s", ErrChallengeState, c.state)
	}

	tables := c.settings.SelectedTables
	if len(tables) == 0 {
		tables = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	}
	table := tables[c.rng.Intn(len(tables))]
	mult := c.rng.Intn(MaxMultiplier) + 1

	c.start(&Task{
		Kind:       TaskMath,
		Prompt:     fmt.Sprintf("Los deze tafelsom op: %d × %d =", table, mult),
		Table:      table,
		Multiplier: mult,
	})
	return nil
}

func (c *Challenge) start(t *Task) {
	c.task = t
	c.feedback = nil
	c.state = ChallengeShowingTask
	c.ui.OpenModal(ModalChallenge, c.View())
}

// Submit checks an answer. A wrong answer leaves the task open for another
// try; a right one pays out and waits for Close.
func (c *Challenge) Submit(answer string) (Feedback, error) {
	retry := c.state == ChallengeShowingFeedback && c.feedback != nil && !c.feedback.Correct
	if c.state != ChallengeShowingTask && !retry {
		return Feedback{}, fmt.Errorf("%w: %s", ErrChallengeState, c.state)
	}

	fb := Feedback{Correct: c.task.check(answer)}
	if fb.Correct {
		fb.Reward = ChallengeReward
		fb.Message = fmt.Sprintf("🎉 Goed gedaan! Je hebt %d muntjes verdiend!", ChallengeReward)
		c.player.AddCarrots(ChallengeReward)
		c.record()
		c.ui.UpdateDisplay(c.player.Display())
	} else {
		fb.Message = "Helaas, probeer het nog eens!"
		if c.task.Kind == TaskSpelling {
			fb.Solution = c.task.Word
			fb.Message += fmt.Sprintf(" Het juiste antwoord was: %s", c.task.Word)
		}
	}

	c.feedback = &fb
	c.state = ChallengeShowingFeedback
	c.ui.OpenModal(ModalChallenge, c.View())
	return fb, nil
}

func (c *Challenge) record() {
	switch c.task.Kind {
	case TaskMath:
		c.progress.recordTable(c.task.Table)
	case TaskSpelling:
		c.progress.recordSpelling(c.task.Word)
	}
	slog.Debug("challenge answered", "player", c.player.Name, "kind", c.task.Kind)
}

// Close hides the dialog from any state.
func (c *Challenge) Close() {
	if c.state == ChallengeClosed {
		return
	}
	c.state = ChallengeClosed
	c.animal = nil
	c.task = nil
	c.feedback = nil
	c.ui.CloseModal(ModalChallenge)
}
