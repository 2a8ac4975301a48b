package audio

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/maze-echo/constant"
)

// AudioConfig holds engine tuning
type AudioConfig struct {
	Enabled    bool    // false = headless output, state machine still runs
	MaxVolume  float64 // 0.0-1.0, level of an audible channel
	SampleRate int

	CrossfadeDuration time.Duration
	TickInterval      time.Duration
	RetryDelay        time.Duration

	// MusicDir holds track files; empty = synthesized loops only
	MusicDir string

	// TrackGains scales individual tracks for loudness matching (track id -> 0.0-1.0)
	TrackGains map[string]float64
}

// DefaultAudioConfig returns the stock settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:           true,
		MaxVolume:         constant.MaxVolume,
		SampleRate:        constant.AudioSampleRate,
		CrossfadeDuration: constant.CrossfadeDuration,
		TickInterval:      constant.FadeTickInterval,
		RetryDelay:        constant.PlayRetryDelay,
		TrackGains:        make(map[string]float64),
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("MAZE_ECHO_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Max volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("MAZE_ECHO_MAX_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MaxVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("MAZE_ECHO_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if ms := os.Getenv("MAZE_ECHO_CROSSFADE_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val >= 0 {
			cfg.CrossfadeDuration = time.Duration(val) * time.Millisecond
		}
	}

	if ms := os.Getenv("MAZE_ECHO_PLAY_RETRY_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val >= 0 {
			cfg.RetryDelay = time.Duration(val) * time.Millisecond
		}
	}

	if dir := os.Getenv("MAZE_ECHO_MUSIC_DIR"); dir != "" {
		cfg.MusicDir = dir
	}

	// Per-track gains from JSON, e.g. {"neon-drift":0.7}
	if gains := os.Getenv("MAZE_ECHO_TRACK_GAINS"); gains != "" {
		var parsed map[string]float64
		if err := json.Unmarshal([]byte(gains), &parsed); err == nil {
			for id, g := range parsed {
				cfg.TrackGains[id] = clampUnit(g)
			}
		}
	}

	return cfg
}

// gainFor returns the loudness scale of a track, 1 when unset
func (c *AudioConfig) gainFor(id string) float64 {
	if g, ok := c.TrackGains[id]; ok {
		return g
	}
	return 1
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
