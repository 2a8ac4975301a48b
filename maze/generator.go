package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrInvalidSize      = errors.New("maze size must be at least 1")
	ErrNoExitCandidates = errors.New("no exit candidates")
)

type Config struct {
	Size int

	// Entry is clamped into the grid on each axis
	EntryX, EntryY int

	Rand *rand.Rand // Optional (nil = seeded from Seed)
	Seed int64      // Optional (0 = Random)
}

// Generate builds a perfect maze carved from the entry cell and places its exits.
func Generate(cfg Config) (*Maze, error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, cfg.Size)
	}

	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	entry := ClampPoint(cfg.Size, Point{cfg.EntryX, cfg.EntryY})

	m := newGrid(cfg.Size)
	recursiveBacktracker(m, entry, rng)

	if err := placeExits(m, rng); err != nil {
		return nil, err
	}
	return m, nil
}

// ClampPoint pulls p into [0, size-1] on each axis
func ClampPoint(size int, p Point) Point {
	return Point{clamp(p.X, 0, size-1), clamp(p.Y, 0, size-1)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// recursiveBacktracker carves a uniform spanning tree with an explicit index stack
func recursiveBacktracker(m *Maze, start Point, rng *rand.Rand) {
	cur := m.index(start.X, start.Y)
	m.cells[cur].Visited = true
	m.cells[cur].Type = CellStart
	m.start = start

	stack := make([]int, 0, len(m.cells))
	stack = append(stack, cur)

	var candidates [4]Direction

	for len(stack) > 0 {
		c := m.cells[cur]
		k := 0
		for _, d := range directions {
			dx, dy := d.Delta()
			nx, ny := c.X+dx, c.Y+dy
			if nx >= 0 && nx < m.size && ny >= 0 && ny < m.size && !m.cells[m.index(nx, ny)].Visited {
				candidates[k] = d
				k++
			}
		}

		if k > 0 {
			d := candidates[rng.Intn(k)]
			dx, dy := d.Delta()
			next := m.index(c.X+dx, c.Y+dy)

			m.cells[cur].Walls[d] = false
			m.cells[next].Walls[d.Opposite()] = false
			m.cells[next].Visited = true

			stack = append(stack, cur)
			cur = next
		} else {
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
}
