package game

import "slices"

// PuzzleSize is the width of the sliding puzzle board.
const PuzzleSize = 3

// Puzzle is a sliding tile puzzle. Tiles lists the board row by row with
// 0 for the gap; it is solved when the numbers run 1..n-1 with the gap last.
type Puzzle struct {
	Size  int
	Tiles []int
	Moves int
}

// NewPuzzle deals a shuffled board that can always be solved and is never
// already solved.
func NewPuzzle(size int, rng RNG) *Puzzle {
	p := &Puzzle{Size: size, Tiles: make([]int, size*size)}
	for {
		for i := range p.Tiles {
			p.Tiles[i] = i
		}
		for i := len(p.Tiles) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			p.Tiles[i], p.Tiles[j] = p.Tiles[j], p.Tiles[i]
		}
		if !p.solvable() {
			p.swapFirstPair()
		}
		if !p.Solved() {
			return p
		}
	}
}

// Slide moves tile into the gap. It reports false when tile is not next
// to the gap.
func (p *Puzzle) Slide(tile int) bool {
	if tile <= 0 || tile >= len(p.Tiles) {
		return false
	}
	from := slices.Index(p.Tiles, tile)
	gap := slices.Index(p.Tiles, 0)

	fr, fc := from/p.Size, from%p.Size
	gr, gc := gap/p.Size, gap%p.Size
	if abs(fr-gr)+abs(fc-gc) != 1 {
		return false
	}

	p.Tiles[gap], p.Tiles[from] = tile, 0
	p.Moves++
	return true
}

func (p *Puzzle) Solved() bool {
	last := len(p.Tiles) - 1
	for i := range last {
		if p.Tiles[i] != i+1 {
			return false
		}
	}
	return p.Tiles[last] == 0
}

// solvable applies the inversion parity rule. Odd widths need an even
// count; even widths also count the gap's row from the bottom.
func (p *Puzzle) solvable() bool {
	inv := 0
	for i, a := range p.Tiles {
		for _, b := range p.Tiles[i+1:] {
			if a != 0 && b != 0 && a > b {
				inv++
			}
		}
	}
	if p.Size%2 == 1 {
		return inv%2 == 0
	}
	rowFromBottom := p.Size - slices.Index(p.Tiles, 0)/p.Size
	return (inv+rowFromBottom)%2 == 1
}

// swapFirstPair swaps the first two numbered tiles, flipping the parity.
func (p *Puzzle) swapFirstPair() {
	first := -1
	for i, t := range p.Tiles {
		if t == 0 {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		p.Tiles[first], p.Tiles[i] = p.Tiles[i], p.Tiles[first]
		return
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
