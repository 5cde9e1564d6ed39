package player

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pixil98/go-cavia/internal"
	"github.com/pixil98/go-cavia/internal/game"
	"github.com/pixil98/go-cavia/internal/storage"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxNameTries  = 5
	minNameLength = 2
	maxNameLength = 16
)

type loginResult struct {
	name  string
	world string
}

type loginFlow struct {
	worlds       storage.Storer[*game.World]
	defaultWorld string
	// taken reports whether a player id is already connected.
	taken func(id string) bool
}

func (f *loginFlow) Run(rw io.ReadWriter) (*loginResult, error) {
	if _, err := io.WriteString(rw, "Welkom bij de Cavia Wereld!\n"); err != nil {
		return nil, err
	}

	name, err := internal.Prompt(rw, "Hoe heet je cavia? ",
		internal.WithMaxTries(maxNameTries),
		internal.WithValidator(func(str string) (bool, string) {
			str = strings.TrimSpace(str)
			if msg := validateName(str); msg != "" {
				return false, msg
			}
			if f.taken != nil && f.taken(playerID(str)) {
				return false, "Die cavia speelt al. Kies een andere naam.\n"
			}
			return true, ""
		}),
	)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	world, err := f.chooseWorld(rw)
	if err != nil {
		return nil, err
	}

	return &loginResult{name: name, world: world}, nil
}

func (f *loginFlow) chooseWorld(rw io.ReadWriter) (string, error) {
	if def := f.worlds.Get(f.defaultWorld); def != nil {
		ok, err := internal.PromptYN(rw, fmt.Sprintf("Begin je in %s (y/n)? ", def.Name))
		if err != nil {
			return "", err
		}
		if ok {
			return f.defaultWorld, nil
		}
	}

	return storage.NewMenu(f.worlds).Prompt(rw, "Waar wil je beginnen?")
}

// validateName returns why a name is refused, or "" when it is fine.
func validateName(name string) string {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return fmt.Sprintf("Een naam heeft %d tot %d letters.\n", minNameLength, maxNameLength)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "Gebruik alleen letters.\n"
		}
	}
	// Saves are keyed by the id, which must be plain a-z.
	for _, r := range playerID(name) {
		if r < 'a' || r > 'z' {
			return "Gebruik alleen letters van a tot z.\n"
		}
	}
	return ""
}

// playerID is the key a player's saves and messages are filed under.
// Accents are dropped so Zoë and Zoe share one save.
func playerID(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(folded)
}
