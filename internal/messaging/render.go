package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-cavia/internal/display"
	"github.com/pixil98/go-cavia/internal/game"
)

const progressWidth = 10

var funcs = template.FuncMap{
	"board":   puzzleBoard,
	"bar":     progressBar,
	"mask":    maskWord,
	"letters": func(s string) int { return utf8.RuneCountInString(s) },
}

var missionTmpl = template.Must(template.New("mission").Funcs(sprig.TxtFuncMap()).Funcs(funcs).Parse(
	`{{ .Emoji }} {{ .Holder }}: {{ .Text | trim }}
{{- if and .Target (not .Done) }}
[{{ bar .Progress .Target }}] {{ .Progress }}/{{ .Target }}
{{- end }}`))

var challengeTmpl = template.Must(template.New("challenge").Funcs(sprig.TxtFuncMap()).Funcs(funcs).Parse(
	`{{- if eq .State.String "choice" -}}
{{ .Title }}
  spell - een woord spellen
  math  - een tafelsom oplossen
{{- else if eq .State.String "task" -}}
{{ .Task.Prompt }}
{{- if .Task.Word }}
  {{ mask .Task.Word }} ({{ letters .Task.Word }} letters)
{{- end }}
Typ: answer <antwoord>
{{- else if eq .State.String "feedback" -}}
{{ .Feedback.Message }}
{{- if not .Feedback.Correct }}
Probeer opnieuw met: answer <antwoord>
{{- end }}
{{- end }}`))

var puzzleTmpl = template.Must(template.New("puzzle").Funcs(sprig.TxtFuncMap()).Funcs(funcs).Parse(
	`🧩 {{ .Item }}: schuif de tegels op volgorde.
{{ board .Tiles .Size }}
{{- if .Solved }}
Opgelost in {{ .Moves }} {{ if eq .Moves 1 }}zet{{ else }}zetten{{ end }}!
{{- else }}
Zetten: {{ .Moves }}. Typ: schuif <nummer>
{{- end }}`))

// Render turns a UI event into text for a terminal. Modal closes render as
// an empty string.
func Render(ev Event) (string, error) {
	switch ev.Type {
	case EventNotification:
		return display.Wrap(fmt.Sprintf("* %s", ev.Message)), nil
	case EventDisplay:
		if ev.Display == nil {
			return "", fmt.Errorf("display event without display")
		}
		return fmt.Sprintf("🥕 %d", ev.Display.Carrots), nil
	case EventModalOpen:
		return renderModal(ev.Modal, ev.View)
	case EventModalClose:
		return "", nil
	case EventText:
		return ev.Message, nil
	}
	return "", fmt.Errorf("unknown event type %q", ev.Type)
}

func renderModal(id game.ModalID, raw json.RawMessage) (string, error) {
	var (
		tmpl *template.Template
		view any
	)
	switch id {
	case game.ModalMission:
		var v game.MissionView
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", fmt.Errorf("decoding mission view: %w", err)
		}
		tmpl, view = missionTmpl, v
	case game.ModalChallenge:
		var v challengeView
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", fmt.Errorf("decoding challenge view: %w", err)
		}
		tmpl, view = challengeTmpl, v
	case game.ModalMinigame:
		var v game.PuzzleView
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", fmt.Errorf("decoding minigame view: %w", err)
		}
		// The board is laid out by hand; wrapping would break its rows.
		var buf bytes.Buffer
		if err := puzzleTmpl.Execute(&buf, v); err != nil {
			return "", fmt.Errorf("rendering %s modal: %w", id, err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown modal %q", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering %s modal: %w", id, err)
	}
	return display.Wrap(buf.String()), nil
}

// challengeView mirrors game.ChallengeView with the state decoded from its
// text form.
type challengeView struct {
	State    challengeState `json:"state"`
	Animal   string         `json:"animal"`
	Title    string         `json:"title"`
	Task     *game.Task     `json:"task"`
	Feedback *game.Feedback `json:"feedback"`
}

type challengeState string

func (s challengeState) String() string {
	return string(s)
}

// puzzleBoard draws the tiles as rows of right aligned numbers with a dot
// for the gap.
func puzzleBoard(tiles []int, size int) string {
	if size <= 0 {
		return ""
	}
	rows := make([]string, 0, len(tiles)/size)
	for start := 0; start < len(tiles); start += size {
		cells := make([]string, 0, size)
		for _, t := range tiles[start:min(start+size, len(tiles))] {
			if t == 0 {
				cells = append(cells, " .")
				continue
			}
			cells = append(cells, fmt.Sprintf("%2d", t))
		}
		rows = append(rows, "  "+strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func progressBar(progress, target int) string {
	if target <= 0 {
		return strings.Repeat("-", progressWidth)
	}
	filled := min(max(progress*progressWidth/target, 0), progressWidth)
	return strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled)
}

const vowels = "aeiouyáéíóúàèëïöüäâêîôû"

// maskWord hides the vowels of a spelling word. Terminals cannot speak the
// word, so the player fills in the gaps instead.
func maskWord(word string) string {
	var b strings.Builder
	for _, r := range word {
		if strings.ContainsRune(vowels, r) || strings.ContainsRune(strings.ToUpper(vowels), r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
