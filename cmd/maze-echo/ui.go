package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-echo/audio"
	"github.com/lixenwraith/maze-echo/constant"
	"github.com/lixenwraith/maze-echo/game"
	"github.com/lixenwraith/maze-echo/maze"
)

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleExitA   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleExitB   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleStart   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleMenu    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// UI is the terminal front-end: a fogged top-down view of the maze, a HUD
// and a track menu
type UI struct {
	screen        tcell.Screen
	width, height int

	session *game.Session
	engine  *audio.AudioEngine
	tracks  []audio.Track

	message     string
	messageTime time.Time
	lastFrame   time.Time
}

func NewUI(s *game.Session, ae *audio.AudioEngine) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	ui := &UI{
		screen:    screen,
		session:   s,
		engine:    ae,
		tracks:    audio.DefaultCatalog().All(),
		lastFrame: time.Now(),
	}
	ui.width, ui.height = screen.Size()
	return ui, nil
}

func (ui *UI) run() {
	ticker := time.NewTicker(constant.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := ui.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !ui.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			ui.session.Advance(now.Sub(ui.lastFrame))
			ui.lastFrame = now
			ui.draw()
		}
	}
}

func (ui *UI) cleanup() {
	ui.screen.Fini()
}

func (ui *UI) flash(msg string) {
	ui.message = msg
	ui.messageTime = time.Now()
}

func (ui *UI) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		ui.width, ui.height = ui.screen.Size()
		ui.screen.Sync()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ui.session.MenuOpen() {
			ui.handleMenuKey(ev.Key(), ev.Rune())
			return true
		}
		return ui.handleGameKey(ev.Key(), ev.Rune())
	}
	return true
}

// handleGameKey applies one key outside the menu; false quits.
// Escape closes the map first, then opens the menu.
func (ui *UI) handleGameKey(key tcell.Key, r rune) bool {
	s := ui.session

	switch key {
	case tcell.KeyEscape:
		if s.MapOpen() {
			s.ToggleMap()
		} else {
			s.OpenMenu()
		}
	case tcell.KeyUp:
		s.Move(maze.North)
	case tcell.KeyDown:
		s.Move(maze.South)
	case tcell.KeyLeft:
		s.Move(maze.West)
	case tcell.KeyRight:
		s.Move(maze.East)
	case tcell.KeyTab:
		if s.ToggleMap() {
			ui.flash(fmt.Sprintf("map open, score %d", s.Stats().Score))
		}
	case tcell.KeyEnter:
		ui.confirm()
	case tcell.KeyRune:
		switch r {
		case 'w':
			s.Forward()
		case 'a':
			s.Turn(true)
		case 'd':
			s.Turn(false)
		case ' ':
			ui.confirm()
		case 'm':
			s.OpenMenu()
		case 'r':
			if err := s.Reset(); err != nil {
				ui.flash(err.Error())
			}
		case 'q':
			return false
		}
	}
	return true
}

func (ui *UI) confirm() {
	tr, err := ui.session.Confirm()
	if err != nil {
		ui.flash(err.Error())
		return
	}
	ui.flash(fmt.Sprintf("exit %v: +%d, level %d (%dx%d)", tr.Exit, tr.Points, tr.Level, tr.Size, tr.Size))
}

func (ui *UI) handleMenuKey(key tcell.Key, r rune) {
	s := ui.session

	switch key {
	case tcell.KeyEscape:
		s.CloseMenu()
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch {
	case r == 'm':
		s.CloseMenu()
	case r == 's':
		s.StopPreview()
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i < len(ui.tracks) {
			if err := s.PreviewTrack(ui.tracks[i].ID); err != nil {
				ui.flash(err.Error())
			}
		}
	}
}
