package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-echo/constant"
	"github.com/lixenwraith/maze-echo/maze"
)

const (
	messageDuration = 3 * time.Second
	hudLines        = 4
)

func (ui *UI) draw() {
	ui.screen.Clear()
	ui.drawMaze()
	ui.drawHUD()
	if ui.session.MenuOpen() {
		ui.drawMenu()
	}
	ui.screen.Show()
}

func (ui *UI) visible(p maze.Point) bool {
	if ui.session.MapOpen() {
		return true
	}
	pos := ui.session.Position()
	dx, dy := p.X-pos.X, p.Y-pos.Y
	return dx*dx+dy*dy <= constant.ViewRadius*constant.ViewRadius
}

// drawMaze renders each visible cell as a 4x2 block with its own walls;
// shared walls are drawn from both sides
func (ui *UI) drawMaze() {
	m := ui.session.Maze()
	size := m.Size()
	pos := ui.session.Position()

	ox := (ui.width - (size*4 + 1)) / 2
	oy := hudLines + (ui.height-hudLines-(size*2+1))/2
	ox, oy = max(ox, 0), max(oy, hudLines)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := maze.Point{X: x, Y: y}
			if !ui.visible(p) {
				continue
			}
			c := m.At(x, y)
			cx, cy := ox+x*4, oy+y*2

			ui.put(cx, cy, '+', styleWall)
			ui.put(cx+4, cy, '+', styleWall)
			ui.put(cx, cy+2, '+', styleWall)
			ui.put(cx+4, cy+2, '+', styleWall)
			if c.Walls.Has(maze.North) {
				ui.text(cx+1, cy, "---", styleWall)
			}
			if c.Walls.Has(maze.South) {
				ui.text(cx+1, cy+2, "---", styleWall)
			}
			if c.Walls.Has(maze.West) {
				ui.put(cx, cy+1, '|', styleWall)
			}
			if c.Walls.Has(maze.East) {
				ui.put(cx+4, cy+1, '|', styleWall)
			}

			glyph, style := ' ', styleFloor
			switch c.Type {
			case maze.CellStart:
				glyph, style = 'S', styleStart
			case maze.CellExitA:
				glyph, style = 'A', styleExitA
			case maze.CellExitB:
				glyph, style = 'B', styleExitB
			}
			if p == pos {
				glyph, style = facingGlyph(ui.session.Facing()), stylePlayer
			}
			ui.put(cx+2, cy+1, glyph, style)
		}
	}
}

func facingGlyph(d maze.Direction) rune {
	switch d {
	case maze.North:
		return '^'
	case maze.South:
		return 'v'
	case maze.West:
		return '<'
	}
	return '>'
}

func (ui *UI) drawHUD() {
	s := ui.session
	st := s.Stats()
	v := ui.engine.Volumes()

	ui.text(0, 0, fmt.Sprintf("%s  score %d  level %d  size %d  time %v  keys %d",
		st.PlayerName, st.Score, st.Level, s.Maze().Size(), st.Elapsed.Round(time.Second), st.KeyPresses), styleHUD)
	ui.text(0, 1, fmt.Sprintf("bgm %-18s %s  A %-18s %s  B %-18s %s",
		st.CurrentTrack, meter(v.BGM), st.NextTrackA, meter(v.ExitA), st.NextTrackB, meter(v.ExitB)), styleHUD)
	ui.text(0, 2, "arrows move  w/a/d walk/turn  enter confirm  tab map  esc/m menu  r reset  q quit", styleHUD)

	if ui.message != "" && time.Since(ui.messageTime) < messageDuration {
		ui.text(0, 3, ui.message, styleMessage)
	}
}

func meter(v float64) string {
	n := int(v*8 + 0.5)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", 8-n) + "]"
}

func (ui *UI) drawMenu() {
	lines := []string{" TRACKS ", ""}
	for i, t := range ui.tracks {
		lines = append(lines, fmt.Sprintf(" %d  %-20s %s ", i+1, t.Title, t.Subtitle))
	}
	lines = append(lines, "", " 1-9 preview  s stop  m/esc close ")
	if ui.engine.Headless() {
		lines = append(lines, " (no audio device) ")
	}

	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	x0 := max((ui.width-w)/2, 0)
	y0 := max((ui.height-len(lines))/2, 0)
	for i, l := range lines {
		ui.text(x0, y0+i, l+strings.Repeat(" ", w-len(l)), styleMenu)
	}
}

func (ui *UI) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= ui.width || y >= ui.height {
		return
	}
	ui.screen.SetContent(x, y, r, nil, style)
}

func (ui *UI) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		ui.put(x+i, y, r, style)
	}
}
