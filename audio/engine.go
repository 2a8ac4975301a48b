package audio

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/maze-echo/constant"
	"github.com/lixenwraith/maze-echo/maze"
)

// Binding is the audio side of a live level: the three track ids and whether
// each exit track has started playing during this level
type Binding struct {
	BGM   string
	ExitA string
	ExitB string

	ExitAStarted bool
	ExitBStarted bool
}

// Volumes reports the current logical volume per role
type Volumes struct {
	BGM, ExitA, ExitB, Preview float64
}

type volumeSnapshot struct {
	bgm, exitA, exitB float64
}

// AudioEngine reacts to level and position events by moving three game
// channels between BGM and exit-preview roles and crossfading between them.
// Construct one per application and share it by reference.
type AudioEngine struct {
	mu sync.Mutex

	config *AudioConfig
	format beep.Format
	out    Output
	loader Loader

	pool  *ChannelPool
	fades *Scheduler

	// Role assignment, nil until the first InitLevel
	bgm, exitA, exitB *Channel
	tracks            [3]Track // BGM, exit A, exit B
	binding           Binding

	snapshot   *volumeSnapshot
	previewing bool
}

// NewAudioEngine wires the pool into out. Nil arguments select defaults:
// DefaultAudioConfig, a headless output, DefaultLoader.
func NewAudioEngine(cfg *AudioConfig, out Output, loader Loader) (*AudioEngine, error) {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if out == nil {
		out = NewHeadlessOutput()
	}
	if loader == nil {
		loader = DefaultLoader(cfg)
	}

	ae := &AudioEngine{
		config: cfg,
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: constant.AudioChannels,
			Precision:   constant.AudioBitDepth / 8,
		},
		out:    out,
		loader: loader,
		pool:   NewChannelPool(constant.GameChannelCount, out),
		fades:  NewScheduler(cfg.TickInterval, cfg.CrossfadeDuration),
	}

	if err := out.Play(ae.pool.Streamer()); err != nil {
		return nil, fmt.Errorf("attaching mixer to output: %w", err)
	}
	return ae, nil
}

// Run drives fades on a fixed ticker until ctx is done
func (ae *AudioEngine) Run(ctx context.Context) {
	interval := ae.config.TickInterval
	if interval <= 0 {
		interval = constant.FadeTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ae.Tick()
		}
	}
}

// Tick advances all fades and deferred work by one interval
func (ae *AudioEngine) Tick() {
	ae.mu.Lock()
	ae.fades.Tick()
	ae.mu.Unlock()
}

// Close stops every channel and releases the output
func (ae *AudioEngine) Close() {
	ae.StopAll()
	ae.out.Close()
}

// InitLevel assigns channels for a new level. A channel that is already
// audibly playing bgm is promoted in place; otherwise bgm starts cold at full
// volume. The two remaining channels are loaded with the exit tracks and left
// paused and silent.
func (ae *AudioEngine) InitLevel(bgm, exitA, exitB Track) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	log.Printf("[AUDIO] initLevel: BGM=%s ExitA=%s ExitB=%s", bgm.ID, exitA.ID, exitB.ID)
	full := ae.config.MaxVolume

	ch := ae.pool.FindAudible(bgm.ID, ae.fades)
	if ch != nil {
		log.Printf("[AUDIO] seamless transition: channel %d keeps %s", ch.id, bgm.ID)
		ae.fades.FadeTo(ch, full, nil)
	} else {
		ch = ae.pool.FindLoaded(bgm.ID)
		if ch == nil {
			ch = ae.pool.Free()
		}
		ae.fades.Cancel(ch)
		ch.SetVolume(full)
		ae.startPlayback(ch, bgm)
	}
	ae.bgm = ch

	rest := ae.pool.Except(ch)
	ae.exitA, ae.exitB = rest[0], rest[1]
	ae.prepareExit(ae.exitA, exitA)
	ae.prepareExit(ae.exitB, exitB)

	ae.tracks = [3]Track{bgm, exitA, exitB}
	ae.binding = Binding{BGM: bgm.ID, ExitA: exitA.ID, ExitB: exitB.ID}
	ae.snapshot = nil
}

// prepareExit leaves ch loaded with t, paused at the start and silent
func (ae *AudioEngine) prepareExit(ch *Channel, t Track) {
	ae.fades.Cancel(ch)
	ch.stop()
	ch.SetVolume(0)
	if err := ae.ensureLoaded(ch, t); err != nil {
		// Entering the exit retries the load
		log.Printf("[AUDIO] [WARN] preloading %s on channel %d: %v", t.ID, ch.id, err)
	}
}

// OnEnterExitA crossfades from BGM to the exit A preview
func (ae *AudioEngine) OnEnterExitA() {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	ae.enterExit(maze.ExitA)
}

// OnEnterExitB crossfades from BGM to the exit B preview
func (ae *AudioEngine) OnEnterExitB() {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	ae.enterExit(maze.ExitB)
}

func (ae *AudioEngine) enterExit(e maze.Exit) {
	if ae.bgm == nil {
		return
	}

	ch, other := ae.exitA, ae.exitB
	track, started := ae.tracks[1], &ae.binding.ExitAStarted
	if e == maze.ExitB {
		ch, other = ae.exitB, ae.exitA
		track, started = ae.tracks[2], &ae.binding.ExitBStarted
	}

	ae.fades.FadeTo(ae.bgm, 0, nil)

	// Start once per level; re-entry resumes the running loop
	if !*started {
		ae.startPlayback(ch, track)
		*started = true
	}
	ae.fades.FadeTo(ch, ae.config.MaxVolume, nil)
	ae.fades.FadeTo(other, 0, nil)
}

// OnLeaveExit restores BGM; exit channels keep playing at zero volume
func (ae *AudioEngine) OnLeaveExit() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.bgm == nil {
		return
	}
	ae.fades.FadeTo(ae.bgm, ae.config.MaxVolume, nil)
	ae.fades.FadeTo(ae.exitA, 0, nil)
	ae.fades.FadeTo(ae.exitB, 0, nil)
}

// ConfirmExit commits to exit e and returns the track id that becomes the
// next level's BGM. The chosen exit channel keeps playing for reuse; the old
// BGM fades out and stops, the other exit stops immediately.
func (ae *AudioEngine) ConfirmExit(e maze.Exit) string {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.bgm == nil {
		return ""
	}

	next, drop := ae.binding.ExitA, ae.exitB
	if e == maze.ExitB {
		next, drop = ae.binding.ExitB, ae.exitA
	}
	log.Printf("[AUDIO] confirmExit: type=%v, newBgm=%s", e, next)

	old := ae.bgm
	ae.fades.FadeTo(old, 0, old.stop)

	ae.fades.Cancel(drop)
	drop.stop()
	drop.SetVolume(0)

	return next
}

// PauseGameAudio fades the game channels out for the menu. The settled volume
// of each channel is remembered; a nested pause keeps the first snapshot.
func (ae *AudioEngine) PauseGameAudio() {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	ae.pauseGameAudio()
}

func (ae *AudioEngine) pauseGameAudio() {
	if ae.bgm == nil {
		return
	}
	if ae.snapshot == nil {
		ae.snapshot = &volumeSnapshot{
			bgm:   ae.fades.Target(ae.bgm),
			exitA: ae.fades.Target(ae.exitA),
			exitB: ae.fades.Target(ae.exitB),
		}
	}
	for _, ch := range []*Channel{ae.bgm, ae.exitA, ae.exitB} {
		ae.fades.FadeTo(ch, 0, nil)
	}
}

// ResumeGameAudio restores the snapshot taken by PauseGameAudio, or brings
// BGM back to full volume when there is none
func (ae *AudioEngine) ResumeGameAudio() {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	ae.resumeGameAudio()
}

func (ae *AudioEngine) resumeGameAudio() {
	if ae.bgm == nil {
		return
	}
	if snap := ae.snapshot; snap != nil {
		ae.fades.FadeTo(ae.bgm, snap.bgm, nil)
		ae.fades.FadeTo(ae.exitA, snap.exitA, nil)
		ae.fades.FadeTo(ae.exitB, snap.exitB, nil)
		ae.snapshot = nil
		return
	}
	ae.fades.FadeTo(ae.bgm, ae.config.MaxVolume, nil)
}

// PlayMenuPreview silences the game channels and plays t from the start on
// the preview channel
func (ae *AudioEngine) PlayMenuPreview(t Track) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.pauseGameAudio()

	p := ae.pool.Preview()
	if p.trackID == t.ID {
		p.rewind()
	}
	ae.startPlayback(p, t)
	ae.fades.FadeTo(p, ae.config.MaxVolume, nil)
	ae.previewing = true
}

// StopMenuPreview fades the preview out and resumes game audio
func (ae *AudioEngine) StopMenuPreview() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	p := ae.pool.Preview()
	ae.fades.FadeTo(p, 0, p.stop)
	ae.previewing = false
	ae.resumeGameAudio()
}

// StopAll halts every channel and forgets the level binding
func (ae *AudioEngine) StopAll() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.fades.Reset()
	for _, ch := range append(ae.pool.Channels(), ae.pool.Preview()) {
		ch.stop()
		ch.SetVolume(0)
	}

	ae.bgm, ae.exitA, ae.exitB = nil, nil, nil
	ae.tracks = [3]Track{}
	ae.binding = Binding{}
	ae.snapshot = nil
	ae.previewing = false
}

// Binding returns the live level binding
func (ae *AudioEngine) Binding() Binding {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	return ae.binding
}

// Volumes returns the current volume of each role
func (ae *AudioEngine) Volumes() Volumes {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	v := Volumes{Preview: ae.pool.Preview().volume}
	if ae.bgm != nil {
		v.BGM, v.ExitA, v.ExitB = ae.bgm.volume, ae.exitA.volume, ae.exitB.volume
	}
	return v
}

// Previewing reports whether a menu preview is playing
func (ae *AudioEngine) Previewing() bool {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	return ae.previewing
}

// Headless reports whether output goes to a real device
func (ae *AudioEngine) Headless() bool {
	return ae.out.Headless()
}

// ensureLoaded loads t onto ch unless it is already there
func (ae *AudioEngine) ensureLoaded(ch *Channel, t Track) error {
	if ch.trackID == t.ID && ch.source != nil {
		return nil
	}
	buf, err := ae.loader.Load(t, ae.format)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailed, t.ID, err)
	}
	ch.load(t.ID, buf, ae.config.gainFor(t.ID))
	return nil
}

// startPlayback loads and unpauses ch. A failure is retried once after
// RetryDelay, then abandoned; audio is best effort.
func (ae *AudioEngine) startPlayback(ch *Channel, t Track) {
	ae.tryStart(ch, t, 0)
}

func (ae *AudioEngine) tryStart(ch *Channel, t Track, attempt int) {
	err := ae.ensureLoaded(ch, t)
	if err == nil {
		err = ch.play()
	}
	if err == nil {
		return
	}

	if attempt > 0 {
		log.Printf("[AUDIO] [WARN] abandoning %s on channel %d: %v", t.ID, ch.id, err)
		return
	}

	log.Printf("[AUDIO] [WARN] starting %s on channel %d failed, retrying in %v: %v", t.ID, ch.id, ae.config.RetryDelay, err)
	token := ch.token
	ae.fades.After(ae.config.RetryDelay, func() {
		// Stopped or reassigned since the failure
		if ch.token != token {
			return
		}
		ae.tryStart(ch, t, attempt+1)
	})
}
