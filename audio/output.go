package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the sink the channel mixer streams into.
// Lock/Unlock guard streamer state against the output's pull goroutine.
type Output interface {
	Play(s beep.Streamer) error
	Lock()
	Unlock()
	Close()
	Headless() bool
}

// speakerOutput plays through the system device via beep/speaker
type speakerOutput struct{}

func newSpeakerOutput(sr beep.SampleRate, buffer time.Duration) (*speakerOutput, error) {
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, err
	}
	return &speakerOutput{}, nil
}

func (o *speakerOutput) Play(s beep.Streamer) error {
	speaker.Play(s)
	return nil
}

func (o *speakerOutput) Lock()   { speaker.Lock() }
func (o *speakerOutput) Unlock() { speaker.Unlock() }

func (o *speakerOutput) Close() {
	// Clearing all streamers ensures no audio artifacts on shutdown
	speaker.Clear()
	speaker.Close()
}

func (o *speakerOutput) Headless() bool { return false }

// HeadlessOutput keeps streamers without a device. Samples are produced
// only when pulled, which lets tests inspect the mix.
type HeadlessOutput struct {
	mu        sync.Mutex
	streamers []beep.Streamer
}

// NewHeadlessOutput creates a silent output
func NewHeadlessOutput() *HeadlessOutput {
	return &HeadlessOutput{}
}

func (o *HeadlessOutput) Play(s beep.Streamer) error {
	o.mu.Lock()
	o.streamers = append(o.streamers, s)
	o.mu.Unlock()
	return nil
}

func (o *HeadlessOutput) Lock()   { o.mu.Lock() }
func (o *HeadlessOutput) Unlock() { o.mu.Unlock() }

func (o *HeadlessOutput) Close() {
	o.mu.Lock()
	o.streamers = nil
	o.mu.Unlock()
}

func (o *HeadlessOutput) Headless() bool { return true }

// Pull streams n frames from every attached streamer and returns their sum
func (o *HeadlessOutput) Pull(n int) [][2]float64 {
	out := make([][2]float64, n)
	tmp := make([][2]float64, n)

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, s := range o.streamers {
		got, _ := s.Stream(tmp)
		for i := 0; i < got; i++ {
			out[i][0] += tmp[i][0]
			out[i][1] += tmp[i][1]
		}
	}
	return out
}

// NewOutput opens the speaker, degrading to a headless output when audio is
// disabled or no device is available
func NewOutput(cfg *AudioConfig, buffer time.Duration) Output {
	if cfg == nil || !cfg.Enabled {
		return NewHeadlessOutput()
	}

	out, err := newSpeakerOutput(beep.SampleRate(cfg.SampleRate), buffer)
	if err != nil {
		log.Printf("[AUDIO] [WARN] speaker init failed: %v (continuing without audio)", err)
		return NewHeadlessOutput()
	}
	return out
}
