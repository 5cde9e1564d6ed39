package storage

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-cavia/internal"
)

const (
	menuRowLength = 80
	menuMinRows   = 5
)

// Selectable assets can be listed in a numbered Menu.
type Selectable interface {
	ValidatingSpec
	Selector() string
}

// Menu renders the records of a store as a numbered, column-filled list and
// lets a connection pick one of them by number.
type Menu[T Selectable] struct {
	entries []menuEntry[T]
	rows    []string
}

type menuEntry[T Selectable] struct {
	id  string
	val T
}

func NewMenu[T Selectable](st Storer[T]) *Menu[T] {
	m := &Menu[T]{}

	for id, val := range st.GetAll() {
		m.entries = append(m.entries, menuEntry[T]{id: id, val: val})
	}
	slices.SortFunc(m.entries, func(a, b menuEntry[T]) int {
		return cmp.Or(
			cmp.Compare(a.val.Selector(), b.val.Selector()),
			cmp.Compare(a.id, b.id),
		)
	})
	m.layout()

	return m
}

func (m *Menu[T]) layout() {
	// Plus 7 for number and spacing (nn. <val>  )
	colWidth := 1
	for _, e := range m.entries {
		colWidth = max(colWidth, len(e.val.Selector())+7)
	}

	// Fill columns top to bottom, left to right.
	numCols := max(menuRowLength/colWidth, 1)
	numRows := max((len(m.entries)+numCols-1)/numCols, menuMinRows)

	rows := make([]string, numRows)
	for i, e := range m.entries {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, e.val.Selector())
	}

	m.rows = rows
}

// Render returns the menu body without a prompt.
func (m *Menu[T]) Render() string {
	var sb strings.Builder
	for _, row := range m.rows {
		if row == "" {
			continue
		}
		sb.WriteString(strings.TrimRight(row, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Prompt writes the title and menu then reads numbers until a valid entry is
// chosen. It returns the id of the chosen asset.
func (m *Menu[T]) Prompt(rw io.ReadWriter, title string) (string, error) {
	if len(m.entries) == 0 {
		return "", fmt.Errorf("menu %q has no entries", title)
	}

	_, err := fmt.Fprintf(rw, "%s\n%s", title, m.Render())
	if err != nil {
		return "", err
	}

	selection, err := internal.Prompt(rw, "Kies een nummer: ", internal.WithValidator(
		func(str string) (bool, string) {
			if m.Select(m.parse(str)) == "" {
				return false, "Dat nummer staat er niet bij.\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	return m.Select(m.parse(selection)), nil
}

func (m *Menu[T]) parse(str string) int {
	i, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0
	}
	return i
}

// Select returns the id at the 1-based position i, or "" when out of range.
func (m *Menu[T]) Select(i int) string {
	if i < 1 || i > len(m.entries) {
		return ""
	}
	return m.entries[i-1].id
}
