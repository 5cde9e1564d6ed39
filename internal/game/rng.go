package game

import (
	"math"
	"math/rand"
)

// RNG is the randomness the game draws from. *rand.Rand satisfies it, so
// tests can pass a seeded source for deterministic draws.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// weightedSelect returns an index chosen with probability proportional to its
// weight. Non-positive weights count as 1 so an unweighted table is uniform.
func weightedSelect(rng RNG, weights []int) int {
	total := 0
	for _, w := range weights {
		total += max(w, 1)
	}

	roll := rng.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += max(w, 1)
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}
