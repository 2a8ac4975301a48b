package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes

	// SpeakerBufferDuration is the device buffer length handed to the speaker
	SpeakerBufferDuration = 100 * time.Millisecond
)

// Channel Pool
const (
	// GameChannelCount is one BGM role plus two exit-preview roles
	GameChannelCount = 3

	// MaxVolume is the level an audible game or preview channel settles at
	MaxVolume = 0.8
)

// Crossfade Timing
const (
	// FadeTickInterval is the fixed wall-clock period of the fade driver
	FadeTickInterval = 50 * time.Millisecond

	// CrossfadeDuration is the length of every volume ramp
	CrossfadeDuration = 1000 * time.Millisecond

	// FadeTargetEpsilon makes a fade to the in-flight target a no-op
	FadeTargetEpsilon = 0.001

	// FadeSnapThreshold completes a fade immediately when start and target are this close
	FadeSnapThreshold = 0.01
)

// Playback Recovery
const (
	// PlayRetryDelay is the wait before the single retry of a failed playback start
	PlayRetryDelay = 500 * time.Millisecond
)

// Synthesized Loops
const (
	// SynthLoopDuration is the length of a generated ambient loop
	SynthLoopDuration = 8 * time.Second

	// SynthAttack and SynthRelease shape each pad note inside the loop
	SynthAttack  = 400 * time.Millisecond
	SynthRelease = 900 * time.Millisecond
)
