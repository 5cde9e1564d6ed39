package player

import (
	"strings"
	"testing"

	"github.com/pixil98/go-cavia/internal"
	"github.com/pixil98/go-testutil"
)

func TestValidateName(t *testing.T) {
	tests := map[string]struct {
		name   string
		expErr string
	}{
		"plain":       {name: "Tess"},
		"accented":    {name: "Zoë"},
		"too short":   {name: "T", expErr: "2 tot 16 letters"},
		"too long":    {name: "Abcdefghijklmnopq", expErr: "2 tot 16 letters"},
		"digits":      {name: "Tess2", expErr: "alleen letters"},
		"inner space": {name: "Te ss", expErr: "alleen letters"},
		"diaeresis":   {name: "Noël"},
		"cyrillic":    {name: "Даша", expErr: "a tot z"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			msg := validateName(tt.name)
			if tt.expErr == "" {
				testutil.AssertEqual(t, "message", msg, "")
				return
			}
			if !strings.Contains(msg, tt.expErr) {
				t.Errorf("message %q does not contain %q", msg, tt.expErr)
			}
		})
	}
}

func TestPlayerID(t *testing.T) {
	tests := map[string]struct {
		name  string
		expID string
	}{
		"plain":     {name: "Tess", expID: "tess"},
		"diaeresis": {name: "Zoë", expID: "zoe"},
		"acute":     {name: "Renée", expID: "renee"},
		"mixed":     {name: "ChLoË", expID: "chloe"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "id", playerID(tt.name), tt.expID)
		})
	}
}

func TestLoginFlow_Run(t *testing.T) {
	tests := map[string]struct {
		lines    []string
		taken    string
		expName  string
		expWorld string
		expErr   string
		expOut   string
	}{
		"default world": {
			lines:    []string{"Tess", "y"},
			expName:  "Tess",
			expWorld: "thuis",
		},
		"name is trimmed": {
			lines:    []string{"  Tess  ", "yes"},
			expName:  "Tess",
			expWorld: "thuis",
		},
		"pick from menu": {
			lines:    []string{"Tess", "n", "1"},
			expName:  "Tess",
			expWorld: "stad",
			expOut:   "Waar wil je beginnen?",
		},
		"bad name retried": {
			lines:    []string{"T", "Tess", "y"},
			expName:  "Tess",
			expWorld: "thuis",
			expOut:   "Een naam heeft",
		},
		"connected name refused": {
			lines:    []string{"tess", "Luxy", "y"},
			taken:    "tess",
			expName:  "Luxy",
			expWorld: "thuis",
			expOut:   "speelt al",
		},
		"too many tries": {
			lines:  []string{"1", "2", "3", "4", "5"},
			expErr: internal.ErrTooManyTries.Error(),
		},
		"connection closed": {
			lines:  []string{},
			expErr: "EOF",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := &loginFlow{
				worlds:       testContent().Worlds,
				defaultWorld: "thuis",
				taken:        func(id string) bool { return id == tt.taken },
			}
			conn := &scriptedConn{Reader: strings.NewReader(strings.Join(tt.lines, "\n"))}
			if len(tt.lines) > 0 {
				conn = newScriptedConn(tt.lines...)
			}

			res, err := f.Run(conn)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "name", res.name, tt.expName)
			testutil.AssertEqual(t, "world", res.world, tt.expWorld)
			if tt.expOut != "" && !strings.Contains(conn.out.String(), tt.expOut) {
				t.Errorf("output %q does not contain %q", conn.out.String(), tt.expOut)
			}
		})
	}
}

func TestLoginFlow_MissingDefaultWorldShowsMenu(t *testing.T) {
	f := &loginFlow{worlds: testContent().Worlds, defaultWorld: "nergens"}
	conn := newScriptedConn("Tess", "2")

	res, err := f.Run(conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "world", res.world, "thuis")
}
