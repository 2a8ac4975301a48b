package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// trackCache stores decoded buffers by track id so moving a track between
// channels never decodes twice. Failed loads are not cached.
type trackCache struct {
	next Loader

	mu    sync.RWMutex
	store map[string]*beep.Buffer
}

func newTrackCache(next Loader) *trackCache {
	return &trackCache{
		next:  next,
		store: make(map[string]*beep.Buffer),
	}
}

// Load returns the cached buffer or loads on demand
func (c *trackCache) Load(t Track, format beep.Format) (*beep.Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.store[t.ID]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := c.store[t.ID]; ok {
		return buf, nil
	}

	buf, err := c.next.Load(t, format)
	if err != nil {
		return nil, err
	}
	c.store[t.ID] = buf
	return buf, nil
}
