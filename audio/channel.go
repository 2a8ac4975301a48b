package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Channel is one loop-capable playback slot: a loaded track, a volume and a
// play/pause state. Channels are owned by a ChannelPool; the engine mutex
// serializes all calls, the output lock guards the streamer graph.
type Channel struct {
	id  int
	out Output

	ctrl *beep.Ctrl
	gain *effects.Volume

	source  beep.StreamSeeker
	trackID string

	volume    float64 // logical volume 0.0-1.0
	trackGain float64
	playing   bool

	// token changes whenever the channel is stopped or reloaded so that
	// deferred work queued against an older state can detect it is stale
	token uint64
}

func newChannel(id int, out Output) *Channel {
	gain := &effects.Volume{Streamer: generators.Silence(-1), Base: 2, Silent: true}
	return &Channel{
		id:        id,
		out:       out,
		gain:      gain,
		ctrl:      &beep.Ctrl{Streamer: gain, Paused: true},
		trackGain: 1,
	}
}

// ID returns the pool slot number
func (c *Channel) ID() int { return c.id }

// TrackID returns the loaded track identity, empty when nothing is loaded
func (c *Channel) TrackID() string { return c.trackID }

// Volume returns the logical volume
func (c *Channel) Volume() float64 { return c.volume }

// Playing reports whether the channel is unpaused
func (c *Channel) Playing() bool { return c.playing }

// Loaded reports whether a source is attached
func (c *Channel) Loaded() bool { return c.source != nil }

func (c *Channel) streamer() beep.Streamer { return c.ctrl }

// load attaches a new looping source positioned at its start
func (c *Channel) load(trackID string, buf *beep.Buffer, trackGain float64) {
	src := buf.Streamer(0, buf.Len())

	c.out.Lock()
	c.gain.Streamer = beep.Loop(-1, src)
	c.out.Unlock()

	c.source = src
	c.trackID = trackID
	c.trackGain = trackGain
	c.token++
	c.applyGain()
}

// SetVolume sets the logical volume, clamped to [0,1]
func (c *Channel) SetVolume(v float64) {
	c.volume = clampUnit(v)
	c.applyGain()
}

func (c *Channel) applyGain() {
	eff := c.volume * c.trackGain

	c.out.Lock()
	if eff <= 0 {
		c.gain.Silent = true
		c.gain.Volume = 0
	} else {
		c.gain.Silent = false
		c.gain.Volume = math.Log2(eff)
	}
	c.out.Unlock()
}

// play unpauses the channel from its current position
func (c *Channel) play() error {
	if c.source == nil {
		return ErrNotLoaded
	}
	c.out.Lock()
	c.ctrl.Paused = false
	c.out.Unlock()
	c.playing = true
	return nil
}

func (c *Channel) pause() {
	c.out.Lock()
	c.ctrl.Paused = true
	c.out.Unlock()
	c.playing = false
}

// rewind moves the source back to its first frame
func (c *Channel) rewind() {
	if c.source == nil {
		return
	}
	c.out.Lock()
	_ = c.source.Seek(0)
	c.out.Unlock()
}

// stop pauses and rewinds, invalidating deferred work for this channel
func (c *Channel) stop() {
	c.pause()
	c.rewind()
	c.token++
}

// position returns the current frame of the loaded source
func (c *Channel) position() int {
	if c.source == nil {
		return 0
	}
	c.out.Lock()
	defer c.out.Unlock()
	return c.source.Position()
}
