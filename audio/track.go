package audio

import (
	"fmt"
	"math/rand"
	"time"
)

// Track is an immutable catalog entry
type Track struct {
	ID       string
	Filename string
	Title    string
	Subtitle string
}

// Catalog is the static list of playable tracks
type Catalog struct {
	tracks []Track
	byID   map[string]int
}

// NewCatalog validates and indexes tracks
func NewCatalog(tracks []Track) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		tracks: make([]Track, len(tracks)),
		byID:   make(map[string]int, len(tracks)),
	}
	copy(c.tracks, tracks)

	for i, t := range c.tracks {
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID)
		}
		c.byID[t.ID] = i
	}
	return c, nil
}

var defaultTracks = []Track{
	{ID: "neon-drift", Filename: "neon_drift.wav", Title: "Neon Drift", Subtitle: "corridor loop"},
	{ID: "glass-corridor", Filename: "glass_corridor.wav", Title: "Glass Corridor", Subtitle: "slow pad"},
	{ID: "minotaur-lullaby", Filename: "minotaur_lullaby.wav", Title: "Minotaur Lullaby", Subtitle: "music box"},
	{ID: "dead-end-waltz", Filename: "dead_end_waltz.wav", Title: "Dead End Waltz", Subtitle: "3/4 drift"},
	{ID: "thread-of-ariadne", Filename: "thread_of_ariadne.wav", Title: "Thread of Ariadne", Subtitle: "arpeggio"},
	{ID: "vaulted-echo", Filename: "vaulted_echo.wav", Title: "Vaulted Echo", Subtitle: "reverb choir"},
	{ID: "low-ceiling", Filename: "low_ceiling.wav", Title: "Low Ceiling", Subtitle: "bass drone"},
	{ID: "far-exit", Filename: "far_exit.wav", Title: "Far Exit", Subtitle: "synth swell"},
}

// DefaultCatalog returns the built-in track list
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTracks)
	if err != nil {
		panic(err) // static data
	}
	return c
}

// Len returns the number of tracks
func (c *Catalog) Len() int { return len(c.tracks) }

// All returns a copy of the tracks in catalog order
func (c *Catalog) All() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// ByID looks up a track
func (c *Catalog) ByID(id string) (Track, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Track{}, false
	}
	return c.tracks[i], true
}

// Picker chooses tracks uniformly at random
type Picker struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewPicker creates a picker; nil rng uses a time-seeded source
func NewPicker(c *Catalog, rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{catalog: c, rng: rng}
}

// Pick returns a uniformly random track not in exclude.
// When exclusion leaves nothing, the whole catalog is eligible.
func (p *Picker) Pick(exclude ...string) Track {
	available := make([]Track, 0, len(p.catalog.tracks))
	for _, t := range p.catalog.tracks {
		if !contains(exclude, t.ID) {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		available = p.catalog.tracks
	}
	return available[p.rng.Intn(len(available))]
}

// PickExits draws two exit tracks that differ from current and from each other
// whenever the catalog is large enough
func (p *Picker) PickExits(current string) (a, b Track) {
	a = p.Pick(current)
	b = p.Pick(current, a.ID)
	return a, b
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
