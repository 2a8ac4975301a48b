package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Loader decodes a track into an in-memory buffer in the engine format.
// Buffered tracks loop without gaps and can back several channels at once.
type Loader interface {
	Load(t Track, format beep.Format) (*beep.Buffer, error)
}

// resampleQuality is beep's Resample quality knob (1-64)
const resampleQuality = 4

// FileLoader reads WAV files from a directory
type FileLoader struct {
	Dir string
}

func (l FileLoader) Load(t Track, format beep.Format) (*beep.Buffer, error) {
	if l.Dir == "" {
		return nil, ErrNoMusicDir
	}

	f, err := os.Open(filepath.Join(l.Dir, t.Filename))
	if err != nil {
		return nil, err
	}

	s, srcFormat, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", t.Filename, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if srcFormat.SampleRate != format.SampleRate {
		src = beep.Resample(resampleQuality, srcFormat.SampleRate, format.SampleRate, s)
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", t.Filename, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTrack, t.Filename)
	}
	return buf, nil
}

// FallbackLoader tries each loader in order and returns the first success
type FallbackLoader []Loader

func (l FallbackLoader) Load(t Track, format beep.Format) (*beep.Buffer, error) {
	var errs []error
	for _, next := range l {
		buf, err := next.Load(t, format)
		if err == nil {
			return buf, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: %s: no loaders", ErrLoadFailed, t.ID)
	}
	return nil, errors.Join(errs...)
}

// DefaultLoader reads from cfg.MusicDir when set and synthesizes otherwise
func DefaultLoader(cfg *AudioConfig) Loader {
	var chain FallbackLoader
	if cfg.MusicDir != "" {
		chain = append(chain, FileLoader{Dir: cfg.MusicDir})
	}
	chain = append(chain, SynthLoader{})
	return newTrackCache(chain)
}
