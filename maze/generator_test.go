package maze

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// TestGenerateSpanningTree verifies every cell is reachable and openings equal size²-1
func TestGenerateSpanningTree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for size := 2; size <= 50; size++ {
		entries := []Point{{0, 0}, {size - 1, size - 1}, {size / 2, size / 2}, {rng.Intn(size), rng.Intn(size)}}
		for _, e := range entries {
			m, err := Generate(Config{Size: size, EntryX: e.X, EntryY: e.Y, Rand: rng})
			if err != nil {
				t.Fatalf("size %d entry %v: unexpected error: %v", size, e, err)
			}

			if got := m.Reachable(m.Start()); got != size*size {
				t.Errorf("size %d entry %v: reachable %d, want %d", size, e, got, size*size)
			}
			if got := m.Openings(); got != size*size-1 {
				t.Errorf("size %d entry %v: openings %d, want %d", size, e, got, size*size-1)
			}
		}
	}
}

// TestGenerateNoCycles repeats generation across seeds at a fixed entry
func TestGenerateNoCycles(t *testing.T) {
	const size = 12
	for seed := int64(1); seed <= 200; seed++ {
		m, err := Generate(Config{Size: size, EntryX: 3, EntryY: 0, Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if got := m.Openings(); got > size*size-1 {
			t.Fatalf("seed %d: %d openings implies a cycle", seed, got)
		}
	}
}

// TestWallSymmetry verifies each removed wall is removed on both sides
func TestWallSymmetry(t *testing.T) {
	m, err := Generate(Config{Size: 15, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range m.Cells() {
		for _, d := range directions {
			dx, dy := d.Delta()
			n := Point{c.X + dx, c.Y + dy}
			if !m.InBounds(n) {
				if !c.Walls.Has(d) {
					t.Errorf("cell (%d,%d) has open outer wall %v", c.X, c.Y, d)
				}
				continue
			}
			if c.Walls.Has(d) != m.At(n.X, n.Y).Walls.Has(d.Opposite()) {
				t.Errorf("asymmetric wall between (%d,%d) and %v", c.X, c.Y, n)
			}
		}
	}
}

// TestStartClamping verifies entry coordinates are pulled into the grid
func TestStartClamping(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		ex, ey int
		want   Point
	}{
		{"in range", 8, 3, 4, Point{3, 4}},
		{"negative", 8, -5, -1, Point{0, 0}},
		{"too large", 8, 20, 9, Point{7, 7}},
		{"mixed", 10, -2, 12, Point{0, 9}},
		{"edge", 10, 9, 0, Point{9, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(Config{Size: tt.size, EntryX: tt.ex, EntryY: tt.ey, Seed: 3})
			if err != nil {
				t.Fatal(err)
			}
			if m.Start() != tt.want {
				t.Errorf("start = %v, want %v", m.Start(), tt.want)
			}
			if c := m.At(tt.want.X, tt.want.Y); c.Type != CellStart {
				t.Errorf("start cell type = %v, want start", c.Type)
			}

			starts := 0
			for _, c := range m.Cells() {
				if c.Type == CellStart {
					starts++
				}
			}
			if starts != 1 {
				t.Errorf("found %d start cells, want 1", starts)
			}
		})
	}
}

// TestExitPlacement verifies exits are distinct boundary cells far from the start
func TestExitPlacement(t *testing.T) {
	for size := 3; size <= 30; size++ {
		for seed := int64(1); seed <= 10; seed++ {
			rng := rand.New(rand.NewSource(seed))
			m, err := Generate(Config{Size: size, EntryX: rng.Intn(size), EntryY: rng.Intn(size), Rand: rng})
			if err != nil {
				t.Fatalf("size %d: %v", size, err)
			}

			a, b := m.ExitA(), m.ExitB()
			if a == b {
				t.Errorf("size %d: exits coincide at %v", size, a)
			}
			for _, p := range []Point{a, b} {
				if p == m.Start() {
					t.Errorf("size %d: exit on start %v", size, p)
				}
				if p.X != 0 && p.Y != 0 && p.X != size-1 && p.Y != size-1 {
					t.Errorf("size %d: exit %v not on boundary", size, p)
				}
				if float64(manhattan(p, m.Start())) <= float64(size)/2 {
					t.Errorf("size %d: exit %v too close to start %v", size, p, m.Start())
				}
			}

			if m.At(a.X, a.Y).Type != CellExitA {
				t.Errorf("size %d: exit A cell type = %v", size, m.At(a.X, a.Y).Type)
			}
			if m.At(b.X, b.Y).Type != CellExitB {
				t.Errorf("size %d: exit B cell type = %v", size, m.At(b.X, b.Y).Type)
			}
		}
	}
}

// TestDegenerateSizes covers the smallest grids
func TestDegenerateSizes(t *testing.T) {
	// Size 1: nothing but the start exists
	if _, err := Generate(Config{Size: 1, Seed: 1}); !errors.Is(err, ErrNoExitCandidates) {
		t.Errorf("size 1: expected ErrNoExitCandidates, got %v", err)
	}

	// Size 2 from a corner: only the opposite corner clears the distance filter
	m, err := Generate(Config{Size: 2, EntryX: 0, EntryY: 0, Seed: 1})
	if err != nil {
		t.Fatalf("size 2: %v", err)
	}
	if !m.SingleExit() {
		t.Errorf("size 2: expected single exit, got A=%v B=%v", m.ExitA(), m.ExitB())
	}
	if m.ExitA() != (Point{1, 1}) {
		t.Errorf("size 2: exit = %v, want (1,1)", m.ExitA())
	}
	if e, ok := m.ExitAt(Point{1, 1}); !ok || e != ExitA {
		t.Errorf("size 2: ExitAt = %v,%v want A,true", e, ok)
	}
}

// TestInvalidSize verifies non-positive sizes are rejected
func TestInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -50} {
		if _, err := Generate(Config{Size: size}); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

// TestSolvePath verifies the BFS path is contiguous through open walls
func TestSolvePath(t *testing.T) {
	m, err := Generate(Config{Size: 20, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	for _, exit := range []Point{m.ExitA(), m.ExitB()} {
		path := m.Solve(m.Start(), exit)
		if len(path) == 0 {
			t.Fatalf("no path to %v", exit)
		}
		if path[0] != m.Start() || path[len(path)-1] != exit {
			t.Errorf("path endpoints %v..%v", path[0], path[len(path)-1])
		}
		for i := 1; i < len(path); i++ {
			if manhattan(path[i-1], path[i]) != 1 {
				t.Fatalf("non-adjacent step %v -> %v", path[i-1], path[i])
			}
			moved := false
			for _, d := range directions {
				if next, ok := m.Step(path[i-1], d); ok && next == path[i] {
					moved = true
				}
			}
			if !moved {
				t.Fatalf("step %v -> %v crosses a wall", path[i-1], path[i])
			}
		}
	}

	if m.Solve(Point{-1, 0}, m.Start()) != nil {
		t.Error("expected nil path for off-grid start")
	}
}

// TestImmutableAccessors verifies returned cells are copies
func TestImmutableAccessors(t *testing.T) {
	m, err := Generate(Config{Size: 5, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}

	before := m.At(0, 0)
	cells := m.Cells()
	cells[0].Type = CellExitB
	cells[0].Walls = Walls{}

	if m.At(0, 0) != before {
		t.Error("mutating Cells() copy leaked into maze")
	}
	if m.Openings() != 24 {
		t.Errorf("openings changed to %d", m.Openings())
	}
}

// TestDirections verifies turning and opposites
func TestDirections(t *testing.T) {
	for _, d := range directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite mismatch", d)
		}
		if d.Left().Right() != d {
			t.Errorf("%v: left then right mismatch", d)
		}
		if d.Left().Left() != d.Opposite() {
			t.Errorf("%v: two lefts should face opposite", d)
		}
	}
	if North.Right() != East {
		t.Errorf("North.Right() = %v, want E", North.Right())
	}
}

// TestRender verifies the drawing dimensions and markers
func TestRender(t *testing.T) {
	m, err := Generate(Config{Size: 4, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := m.Render(&sb, map[Point]rune{{1, 1}: '@'}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2*4+1 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	for i, l := range lines {
		if len(l) != 4*4+1 {
			t.Errorf("line %d has width %d, want 17", i, len(l))
		}
	}

	out := sb.String()
	for _, r := range []string{"S", "A", "B", "@"} {
		if !strings.Contains(out, r) {
			t.Errorf("render missing %q", r)
		}
	}
}
