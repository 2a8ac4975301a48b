package maze

import (
	"io"
	"strings"
)

// Render writes an ASCII drawing of m. Marks override the default glyph of a cell;
// start, exits and path cells default to 'S', 'A', 'B' and ' '.
func (m *Maze) Render(w io.Writer, marks map[Point]rune) error {
	var sb strings.Builder

	for y := 0; y < m.size; y++ {
		// Top edge of the row
		for x := 0; x < m.size; x++ {
			sb.WriteByte('+')
			if m.cells[m.index(x, y)].Walls.Has(North) {
				sb.WriteString("---")
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("+\n")

		// Cell interiors
		for x := 0; x < m.size; x++ {
			c := m.cells[m.index(x, y)]
			if c.Walls.Has(West) {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteByte(' ')
			sb.WriteRune(m.glyph(c, marks))
			sb.WriteByte(' ')
		}
		if m.cells[m.index(m.size-1, y)].Walls.Has(East) {
			sb.WriteByte('|')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	// Bottom edge
	for x := 0; x < m.size; x++ {
		sb.WriteByte('+')
		if m.cells[m.index(x, m.size-1)].Walls.Has(South) {
			sb.WriteString("---")
		} else {
			sb.WriteString("   ")
		}
	}
	sb.WriteString("+\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (m *Maze) glyph(c Cell, marks map[Point]rune) rune {
	if r, ok := marks[Point{c.X, c.Y}]; ok {
		return r
	}
	switch c.Type {
	case CellStart:
		return 'S'
	case CellExitA:
		return 'A'
	case CellExitB:
		return 'B'
	}
	return ' '
}
