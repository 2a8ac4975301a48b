package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func constantBuffer(format beep.Format, frames int, level float64) *beep.Buffer {
	samples := make([][2]float64, frames)
	for i := range samples {
		samples[i] = [2]float64{level, level}
	}
	buf := beep.NewBuffer(format)
	buf.Append(beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if len(samples) == 0 {
			return 0, false
		}
		n := copy(out, samples)
		samples = samples[n:]
		return n, true
	}))
	return buf
}

var testFormat = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// TestChannelLifecycle verifies load, play, stop and the retry token
func TestChannelLifecycle(t *testing.T) {
	ch := newTestChannel(0)

	if err := ch.play(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got %v", err)
	}

	tok := ch.token
	ch.load("neon-drift", constantBuffer(testFormat, 100, 0.5), 1)
	if !ch.Loaded() || ch.TrackID() != "neon-drift" {
		t.Fatal("Expected track loaded")
	}
	if ch.token == tok {
		t.Error("Expected load to change token")
	}

	if err := ch.play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	if !ch.Playing() {
		t.Error("Expected channel playing")
	}

	tok = ch.token
	ch.stop()
	if ch.Playing() || ch.position() != 0 || ch.token == tok {
		t.Error("Expected stop to pause, rewind and change token")
	}
}

// TestChannelMixOutput verifies volume reaches the mixed samples
func TestChannelMixOutput(t *testing.T) {
	out := NewHeadlessOutput()
	pool := NewChannelPool(3, out)
	if err := out.Play(pool.Streamer()); err != nil {
		t.Fatal(err)
	}

	ch := pool.Channels()[0]
	ch.load("neon-drift", constantBuffer(testFormat, 64, 0.5), 1)

	// Paused channels contribute silence
	for _, s := range out.Pull(16) {
		if s[0] != 0 {
			t.Fatalf("Expected silence while paused, got %f", s[0])
		}
	}

	ch.SetVolume(0.5)
	_ = ch.play()
	got := out.Pull(16)
	if diff := got[0][0] - 0.25; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("Expected sample 0.25 at half volume, got %f", got[0][0])
	}

	ch.SetVolume(0)
	for _, s := range out.Pull(16) {
		if s[0] != 0 {
			t.Fatalf("Expected silence at volume 0, got %f", s[0])
		}
	}
}

// TestChannelLoops verifies playback wraps past the buffer end
func TestChannelLoops(t *testing.T) {
	out := NewHeadlessOutput()
	pool := NewChannelPool(3, out)
	_ = out.Play(pool.Streamer())

	ch := pool.Channels()[1]
	ch.load("glass-corridor", constantBuffer(testFormat, 10, 1), 1)
	ch.SetVolume(1)
	_ = ch.play()

	got := out.Pull(35)
	if got[34][0] == 0 {
		t.Error("Expected looped samples past the buffer end")
	}
}

// TestPoolFind verifies audible and free channel selection
func TestPoolFind(t *testing.T) {
	pool := NewChannelPool(3, NewHeadlessOutput())
	fades := NewScheduler(50*time.Millisecond, time.Second)
	buf := constantBuffer(testFormat, 10, 1)

	if len(pool.Channels()) != 3 || pool.Preview().ID() != 3 {
		t.Fatal("Expected 3 game channels and preview id 3")
	}

	a, b := pool.Channels()[0], pool.Channels()[1]
	a.load("neon-drift", buf, 1)
	a.SetVolume(0.8)
	_ = a.play()
	b.load("far-exit", buf, 1)
	_ = b.play()

	if pool.FindAudible("neon-drift", fades) != a {
		t.Error("Expected audible neon-drift on channel 0")
	}
	if pool.FindAudible("far-exit", fades) != nil {
		t.Error("Expected silent channel not to count as audible")
	}

	// Ramping up counts as audible
	fades.FadeTo(b, 0.8, nil)
	if pool.FindAudible("far-exit", fades) != b {
		t.Error("Expected channel fading in to count as audible")
	}

	if pool.FindLoaded("far-exit") != b {
		t.Error("Expected FindLoaded to locate channel 1")
	}
	if free := pool.Free(); free != b {
		t.Errorf("Expected first silent channel as free, got %d", free.ID())
	}

	rest := pool.Except(a)
	if len(rest) != 2 || rest[0] != b || rest[1] != pool.Channels()[2] {
		t.Error("Expected Except to return remaining channels in slot order")
	}
}

// TestPoolFreeFallsBackToFirst verifies slot 0 is chosen when every channel is busy
func TestPoolFreeFallsBackToFirst(t *testing.T) {
	pool := NewChannelPool(3, NewHeadlessOutput())
	buf := constantBuffer(testFormat, 10, 1)
	for _, ch := range pool.Channels() {
		ch.load("neon-drift", buf, 1)
		ch.SetVolume(0.5)
		_ = ch.play()
	}
	if pool.Free() != pool.Channels()[0] {
		t.Error("Expected channel 0 when all are busy")
	}
}

// TestPoolFindAudiblePrefersRisingChannel verifies a channel fading in beats one fading out
func TestPoolFindAudiblePrefersRisingChannel(t *testing.T) {
	pool := NewChannelPool(3, NewHeadlessOutput())
	fades := NewScheduler(50*time.Millisecond, time.Second)
	buf := constantBuffer(testFormat, 10, 1)

	falling, rising := pool.Channels()[0], pool.Channels()[1]
	for _, ch := range []*Channel{falling, rising} {
		ch.load("neon-drift", buf, 1)
		_ = ch.play()
	}
	falling.SetVolume(0.6)
	rising.SetVolume(0.2)
	fades.FadeTo(falling, 0, nil)
	fades.FadeTo(rising, 0.8, nil)

	if got := pool.FindAudible("neon-drift", fades); got != rising {
		t.Errorf("Expected rising channel %d, got %v", rising.ID(), got)
	}

	// With nothing rising, a channel still fading out counts
	fades.Cancel(rising)
	rising.SetVolume(0)
	if got := pool.FindAudible("neon-drift", fades); got != falling {
		t.Errorf("Expected fading channel %d, got %v", falling.ID(), got)
	}
}
