package maze

import "fmt"

// Direction is one of the four grid moves
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// directions is the fixed neighbor order used by the generator and solver
var directions = [...]Direction{North, South, East, West}

var directionDeltas = [...]Point{
	North: {0, -1},
	South: {0, 1},
	East:  {1, 0},
	West:  {-1, 0},
}

// Delta returns the unit step for d
func (d Direction) Delta() (dx, dy int) {
	p := directionDeltas[d]
	return p.X, p.Y
}

// Opposite returns the direction facing back across the same wall
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Left returns the direction after a 90° counter-clockwise turn
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	default:
		return North
	}
}

// Right returns the direction after a 90° clockwise turn
func (d Direction) Right() Direction {
	return d.Left().Opposite()
}

func (d Direction) String() string {
	names := [...]string{"N", "S", "E", "W"}
	if d >= 0 && int(d) < len(names) {
		return names[d]
	}
	return "?"
}

// Walls holds one flag per side, true = wall present
type Walls [4]bool

// Has reports whether the wall on side d is present
func (w Walls) Has(d Direction) bool {
	return w[d]
}

// CellType tags the role of a cell in a level
type CellType int

const (
	CellPath CellType = iota
	CellStart
	CellExitA
	CellExitB
)

func (t CellType) String() string {
	names := [...]string{"path", "start", "exitA", "exitB"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Exit identifies one of the two distinguished goal cells
type Exit int

const (
	ExitA Exit = iota
	ExitB
)

// CellType returns the cell tag used for e
func (e Exit) CellType() CellType {
	if e == ExitB {
		return CellExitB
	}
	return CellExitA
}

func (e Exit) String() string {
	if e == ExitB {
		return "B"
	}
	return "A"
}

// ParseExit maps "A"/"B" to an Exit
func ParseExit(s string) (Exit, error) {
	switch s {
	case "A", "a":
		return ExitA, nil
	case "B", "b":
		return ExitB, nil
	}
	return ExitA, fmt.Errorf("unknown exit %q", s)
}

type Point struct {
	X, Y int
}

// Cell is a single grid square
type Cell struct {
	X, Y  int
	Walls Walls
	// Visited is generation-time bookkeeping only
	Visited bool
	Type    CellType
}

// Maze is a square perfect maze with a start and up to two exits.
// A Maze is never modified after Generate returns it.
type Maze struct {
	size  int
	cells []Cell // row-major, y outer

	start Point
	exitA Point
	exitB Point
}

func newGrid(size int) *Maze {
	m := &Maze{
		size:  size,
		cells: make([]Cell, size*size),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			m.cells[y*size+x] = Cell{
				X:     x,
				Y:     y,
				Walls: Walls{true, true, true, true},
				Type:  CellPath,
			}
		}
	}
	return m
}

func (m *Maze) index(x, y int) int {
	return y*m.size + x
}

// Size returns the edge length
func (m *Maze) Size() int { return m.size }

// Width returns the number of columns
func (m *Maze) Width() int { return m.size }

// Height returns the number of rows
func (m *Maze) Height() int { return m.size }

// Start returns the entry cell
func (m *Maze) Start() Point { return m.start }

// ExitA returns the exit A cell
func (m *Maze) ExitA() Point { return m.exitA }

// ExitB returns the exit B cell
func (m *Maze) ExitB() Point { return m.exitB }

// Exit returns the cell for e
func (m *Maze) Exit(e Exit) Point {
	if e == ExitB {
		return m.exitB
	}
	return m.exitA
}

// SingleExit reports the degenerate layout where both exits share one cell
func (m *Maze) SingleExit() bool {
	return m.exitA == m.exitB
}

// InBounds reports whether p lies on the grid
func (m *Maze) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.size && p.Y >= 0 && p.Y < m.size
}

// At returns a copy of the cell at (x, y); out of range yields the zero Cell
func (m *Maze) At(x, y int) Cell {
	if !m.InBounds(Point{x, y}) {
		return Cell{}
	}
	return m.cells[m.index(x, y)]
}

// Cells returns a row-major copy of the grid
func (m *Maze) Cells() []Cell {
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// ExitAt reports which exit, if any, occupies p.
// In the single-exit layout the shared cell reports ExitA.
func (m *Maze) ExitAt(p Point) (Exit, bool) {
	if !m.InBounds(p) {
		return ExitA, false
	}
	switch m.cells[m.index(p.X, p.Y)].Type {
	case CellExitA:
		return ExitA, true
	case CellExitB:
		return ExitB, true
	}
	return ExitA, false
}

// CanMove reports whether the wall on side d of p is open
func (m *Maze) CanMove(p Point, d Direction) bool {
	if !m.InBounds(p) {
		return false
	}
	if m.cells[m.index(p.X, p.Y)].Walls.Has(d) {
		return false
	}
	dx, dy := d.Delta()
	return m.InBounds(Point{p.X + dx, p.Y + dy})
}

// Step returns the neighbor of p in direction d if the passage is open
func (m *Maze) Step(p Point, d Direction) (Point, bool) {
	if !m.CanMove(p, d) {
		return p, false
	}
	dx, dy := d.Delta()
	return Point{p.X + dx, p.Y + dy}, true
}

// Openings counts removed walls, each shared wall once
func (m *Maze) Openings() int {
	n := 0
	for i := range m.cells {
		c := &m.cells[i]
		// East and South sides cover every shared wall exactly once
		if c.X < m.size-1 && !c.Walls.Has(East) {
			n++
		}
		if c.Y < m.size-1 && !c.Walls.Has(South) {
			n++
		}
	}
	return n
}
