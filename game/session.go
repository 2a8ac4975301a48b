package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/maze-echo/audio"
	"github.com/lixenwraith/maze-echo/level"
	"github.com/lixenwraith/maze-echo/maze"
)

var (
	ErrNotStarted = errors.New("session not started")
	ErrNotOnExit  = errors.New("player is not on an exit")
	ErrMenuOpen   = errors.New("menu is open")
	ErrMenuClosed = errors.New("menu is closed")
	ErrMapOpen    = errors.New("map is open")
)

// AudioController is the audio surface a session drives.
// *audio.AudioEngine satisfies it.
type AudioController interface {
	InitLevel(bgm, exitA, exitB audio.Track)
	OnEnterExitA()
	OnEnterExitB()
	OnLeaveExit()
	ConfirmExit(e maze.Exit) string
	PauseGameAudio()
	ResumeGameAudio()
	PlayMenuPreview(t audio.Track)
	StopMenuPreview()
	StopAll()
}

// Stats is the in-memory session record
type Stats struct {
	PlayerName    string
	Score         int
	Level         int
	LevelsCleared int
	MapOpens      int
	KeyPresses    int
	Elapsed       time.Duration

	CurrentTrack string
	NextTrackA   string
	NextTrackB   string
	TrackHistory []string // BGM ids in play order
}

type Options struct {
	PlayerName string
	Level      level.Options
	Audio      AudioController // Required
	Catalog    *audio.Catalog  // Optional (nil = audio.DefaultCatalog)
	Rand       *rand.Rand      // Optional, track picks (nil = seeded from Level.Seed)
}

// Session couples one player's level progression with the audio engine.
// All methods are called from the game loop goroutine.
type Session struct {
	id uuid.UUID

	level   *level.Controller
	audio   AudioController
	catalog *audio.Catalog
	picker  *audio.Picker

	pos    maze.Point
	facing maze.Direction
	exit   maze.Exit
	onExit bool

	started    bool
	menuOpen   bool
	mapOpen    bool
	previewing bool

	bgm, exitA, exitB audio.Track
	stats             Stats
}

// NewSession builds the first level; audio starts with Start
func NewSession(opts Options) (*Session, error) {
	if opts.Audio == nil {
		return nil, errors.New("session requires an audio controller")
	}

	ctrl, err := level.NewController(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("creating level controller: %w", err)
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = audio.DefaultCatalog()
	}

	rng := opts.Rand
	if rng == nil && opts.Level.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Level.Seed + 1))
	}

	s := &Session{
		id:      uuid.New(),
		level:   ctrl,
		audio:   opts.Audio,
		catalog: catalog,
		picker:  audio.NewPicker(catalog, rng),
		facing:  maze.East,
		stats:   Stats{PlayerName: opts.PlayerName},
	}
	return s, nil
}

// Start places the player on the entry cell and starts level audio
func (s *Session) Start() {
	bgm := s.picker.Pick()
	s.enterLevel(bgm, s.level.Maze().Start())
	s.started = true
	log.Printf("[GAME] session %s started for %q", s.id, s.stats.PlayerName)
}

func (s *Session) enterLevel(bgm audio.Track, at maze.Point) {
	a, b := s.picker.PickExits(bgm.ID)
	s.bgm, s.exitA, s.exitB = bgm, a, b
	s.audio.InitLevel(bgm, a, b)

	s.pos = at
	s.onExit = false
	s.mapOpen = false

	s.stats.CurrentTrack = bgm.ID
	s.stats.NextTrackA = a.ID
	s.stats.NextTrackB = b.ID
	s.stats.TrackHistory = append(s.stats.TrackHistory, bgm.ID)
}

// Move steps one cell in d. Returns false when blocked, not started, or while
// the menu or the full map is shown.
func (s *Session) Move(d maze.Direction) bool {
	if !s.canAct() {
		return false
	}
	s.stats.KeyPresses++
	s.facing = d

	next, ok := s.level.Maze().Step(s.pos, d)
	if !ok {
		return false
	}
	s.pos = next
	s.updatePosition()
	return true
}

// Turn rotates the facing direction a quarter turn
func (s *Session) Turn(left bool) {
	if !s.canAct() {
		return
	}
	s.stats.KeyPresses++
	if left {
		s.facing = s.facing.Left()
	} else {
		s.facing = s.facing.Right()
	}
}

// canAct reports whether player input reaches the maze
func (s *Session) canAct() bool {
	return s.started && !s.menuOpen && !s.mapOpen
}

// Forward moves one cell in the facing direction
func (s *Session) Forward() bool {
	return s.Move(s.facing)
}

// updatePosition emits enter/leave events when the player crosses exit tiles
func (s *Session) updatePosition() {
	e, on := s.level.Maze().ExitAt(s.pos)
	switch {
	case on && (!s.onExit || e != s.exit):
		if e == maze.ExitB {
			s.audio.OnEnterExitB()
		} else {
			s.audio.OnEnterExitA()
		}
	case !on && s.onExit:
		s.audio.OnLeaveExit()
	}
	s.exit, s.onExit = e, on
}

// Confirm takes the exit under the player into the next level. The new
// level's BGM is the chosen exit's track, picked up without a restart.
func (s *Session) Confirm() (level.Transition, error) {
	if !s.started {
		return level.Transition{}, ErrNotStarted
	}
	if s.menuOpen {
		return level.Transition{}, ErrMenuOpen
	}
	if s.mapOpen {
		return level.Transition{}, ErrMapOpen
	}
	s.stats.KeyPresses++
	if !s.onExit {
		return level.Transition{}, ErrNotOnExit
	}

	e := s.exit
	tr, err := s.level.ConfirmExit(e)
	if err != nil {
		return level.Transition{}, err
	}

	chosen := s.exitA
	if e == maze.ExitB {
		chosen = s.exitB
	}
	if next := s.audio.ConfirmExit(e); next != "" && next != chosen.ID {
		log.Printf("[GAME] [WARN] audio continued %s, expected %s", next, chosen.ID)
	}

	s.stats.LevelsCleared++
	s.enterLevel(chosen, tr.Entry)
	log.Printf("[GAME] exit %v: +%d points, score %d, level %d size %d", e, tr.Points, tr.Score, tr.Level, tr.Size)
	return tr, nil
}

// ToggleMap opens or closes the full map. Opening costs the map penalty when enabled.
func (s *Session) ToggleMap() bool {
	if !s.started || s.menuOpen {
		return s.mapOpen
	}
	s.mapOpen = !s.mapOpen
	if s.mapOpen {
		s.stats.MapOpens++
		s.level.OpenMap()
	}
	return s.mapOpen
}

// OpenMenu pauses game audio and freezes the clock
func (s *Session) OpenMenu() {
	if !s.started || s.menuOpen {
		return
	}
	s.menuOpen = true
	s.audio.PauseGameAudio()
}

// CloseMenu ends any preview and resumes game audio
func (s *Session) CloseMenu() {
	if !s.menuOpen {
		return
	}
	s.menuOpen = false
	if s.previewing {
		s.previewing = false
		s.audio.StopMenuPreview()
		return
	}
	s.audio.ResumeGameAudio()
}

// PreviewTrack auditions a catalog track from the menu
func (s *Session) PreviewTrack(id string) error {
	if !s.menuOpen {
		return ErrMenuClosed
	}
	t, ok := s.catalog.ByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", audio.ErrUnknownTrack, id)
	}
	s.audio.PlayMenuPreview(t)
	s.previewing = true
	return nil
}

// StopPreview ends the audition; game audio stays paused while the menu is open
func (s *Session) StopPreview() {
	if !s.previewing {
		return
	}
	s.previewing = false
	s.audio.StopMenuPreview()
	s.audio.PauseGameAudio()
}

// Advance accumulates play time outside the menu
func (s *Session) Advance(dt time.Duration) {
	if !s.started || s.menuOpen || dt <= 0 {
		return
	}
	s.stats.Elapsed += dt
}

// Reset returns to a base-size maze with score 0, keeping the player name
func (s *Session) Reset() error {
	if err := s.level.Reset(); err != nil {
		return err
	}
	s.audio.StopAll()

	s.stats = Stats{PlayerName: s.stats.PlayerName}
	s.menuOpen, s.previewing = false, false
	s.facing = maze.East
	s.started = false
	s.Start()
	return nil
}

// Stats returns a snapshot of the session record
func (s *Session) Stats() Stats {
	st := s.stats
	st.Score = s.level.Score()
	st.Level = s.level.Level()
	st.TrackHistory = append([]string(nil), s.stats.TrackHistory...)
	return st
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID { return s.id }

// LevelID returns the identifier of the live level
func (s *Session) LevelID() uuid.UUID { return s.level.ID() }

// Maze returns the live maze
func (s *Session) Maze() *maze.Maze { return s.level.Maze() }

// Position returns the player cell
func (s *Session) Position() maze.Point { return s.pos }

// Facing returns the direction the player faces
func (s *Session) Facing() maze.Direction { return s.facing }

// OnExit reports the exit under the player, if any
func (s *Session) OnExit() (maze.Exit, bool) { return s.exit, s.onExit }

// MenuOpen reports whether the menu is open
func (s *Session) MenuOpen() bool { return s.menuOpen }

// MapOpen reports whether the full map is shown
func (s *Session) MapOpen() bool { return s.mapOpen }

// Previewing reports whether a menu preview is playing
func (s *Session) Previewing() bool { return s.previewing }

// Tracks returns the current BGM and the two exit tracks
func (s *Session) Tracks() (bgm, exitA, exitB audio.Track) {
	return s.bgm, s.exitA, s.exitB
}
