package audio

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/maze-echo/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a fixed-length wave source for one bar of a synthesized loop.
// Noise draws from the loader's per-track rng so a track renders identically
// on every load. It reports drained once duration frames are produced, which
// lets beep.Seq chain bars.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates an oscillator lasting duration at rate
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a bar in and out so consecutive bars, and the loop seam
// between the last bar and the first, join without clicks
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and a release ending at duration.
// Overlapping attack and release take the lower gain.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume mixes a voice at a linear level, matching the base-2 gain
// convention of Channel so voice levels and channel volumes compose
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// chord progressions as semitone offsets from the root, one triad per bar
var progressions = [][][3]int{
	{{0, 3, 7}, {-4, 0, 3}, {-2, 2, 5}, {-5, -2, 2}},  // i VI VII v
	{{0, 4, 7}, {-3, 0, 4}, {-7, -3, 0}, {-5, -1, 2}}, // I vi IV V
	{{0, 3, 7}, {5, 8, 12}, {3, 7, 10}, {-2, 2, 5}},   // i iv III VII
	{{0, 5, 7}, {-2, 3, 5}, {-4, 1, 3}, {-2, 3, 5}},   // suspended drift
}

// SynthLoader renders a deterministic ambient loop per track id so the game
// has music without asset files
type SynthLoader struct {
	Duration time.Duration // Optional (0 = SynthLoopDuration)
}

func (l SynthLoader) Load(t Track, format beep.Format) (*beep.Buffer, error) {
	duration := l.Duration
	if duration <= 0 {
		duration = constant.SynthLoopDuration
	}

	h := fnv.New64a()
	h.Write([]byte(t.ID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	rate := format.SampleRate
	root := 40 + rng.Intn(12) // MIDI E2..D#3
	prog := progressions[rng.Intn(len(progressions))]
	bar := duration / time.Duration(len(prog))

	attack, release := constant.SynthAttack, constant.SynthRelease
	if attack+release > bar {
		attack, release = bar/4, bar/4
	}

	bars := make([]beep.Streamer, 0, len(prog))
	for _, triad := range prog {
		voices := make([]beep.Streamer, 0, len(triad)+2)
		for _, semi := range triad {
			// Pad voices an octave above the root
			osc := NewOscillator(midiToFreq(root+12+semi), bar, WaveSine, rate, rng)
			voices = append(voices, newVolume(NewEnvelope(osc, bar, attack, release, rate), 0.18))
		}

		bass := NewOscillator(midiToFreq(root+triad[0]), bar, WaveSaw, rate, rng)
		voices = append(voices, newVolume(NewEnvelope(bass, bar, attack/2, release, rate), 0.08))

		air := NewOscillator(0, bar, WaveNoise, rate, rng)
		voices = append(voices, newVolume(NewEnvelope(air, bar, bar/2, bar/2, rate), 0.015))

		bars = append(bars, beep.Mix(voices...))
	}

	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(rate.N(duration), beep.Seq(bars...)))
	if buf.Len() == 0 {
		return nil, ErrEmptyTrack
	}
	return buf, nil
}

func midiToFreq(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-69)/12.0)
}
