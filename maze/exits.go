package maze

import (
	"fmt"
	"math/rand"
)

// placeExits picks two boundary cells far from the start.
// The distance filter is relaxed when it leaves nothing; both exits share
// the cell when only one candidate exists.
func placeExits(m *Maze, rng *rand.Rand) error {
	candidates := exitCandidates(m, true)
	if len(candidates) == 0 {
		candidates = exitCandidates(m, false)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: size %d, start %v", ErrNoExitCandidates, m.size, m.start)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	a := candidates[0]
	b := a
	if len(candidates) > 1 {
		b = candidates[1]
	}

	m.cells[m.index(a.X, a.Y)].Type = CellExitA
	if b != a {
		m.cells[m.index(b.X, b.Y)].Type = CellExitB
	}
	m.exitA, m.exitB = a, b
	return nil
}

// exitCandidates lists non-start boundary cells, optionally only those whose
// Manhattan distance from the start exceeds size/2
func exitCandidates(m *Maze, far bool) []Point {
	var out []Point
	half := float64(m.size) / 2
	last := m.size - 1

	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			p := Point{x, y}
			if p == m.start {
				continue
			}
			if x != 0 && x != last && y != 0 && y != last {
				continue
			}
			if far && float64(manhattan(p, m.start)) <= half {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func manhattan(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
