package audio

import (
	"github.com/gopxl/beep"
)

// ChannelPool is the fixed set of game channels plus a dedicated menu preview
// channel, all summed by one mixer. The pool never allocates after creation.
type ChannelPool struct {
	game    []*Channel
	preview *Channel
	mixer   *beep.Mixer
}

// NewChannelPool creates n game channels and one preview channel on out
func NewChannelPool(n int, out Output) *ChannelPool {
	p := &ChannelPool{
		game:  make([]*Channel, n),
		mixer: &beep.Mixer{},
	}
	for i := range p.game {
		p.game[i] = newChannel(i, out)
		p.mixer.Add(p.game[i].streamer())
	}
	p.preview = newChannel(n, out)
	p.mixer.Add(p.preview.streamer())
	return p
}

// Channels returns the game channels in slot order
func (p *ChannelPool) Channels() []*Channel { return p.game }

// Preview returns the menu preview channel
func (p *ChannelPool) Preview() *Channel { return p.preview }

// Streamer returns the mix of all channels
func (p *ChannelPool) Streamer() beep.Streamer { return p.mixer }

// FindAudible returns a playing game channel holding trackID that is audible.
// A channel heading toward a non-zero volume wins over one still fading out.
func (p *ChannelPool) FindAudible(trackID string, fades *Scheduler) *Channel {
	var fading *Channel
	for _, ch := range p.game {
		if ch.trackID != trackID || !ch.playing {
			continue
		}
		if fades.Target(ch) > 0 {
			return ch
		}
		if fading == nil && ch.volume > 0 {
			fading = ch
		}
	}
	return fading
}

// FindLoaded returns a game channel that already holds trackID
func (p *ChannelPool) FindLoaded(trackID string) *Channel {
	for _, ch := range p.game {
		if ch.trackID == trackID && ch.source != nil {
			return ch
		}
	}
	return nil
}

// Free returns the first paused or silent game channel, or slot 0 when all are busy
func (p *ChannelPool) Free() *Channel {
	for _, ch := range p.game {
		if !ch.playing || ch.volume == 0 {
			return ch
		}
	}
	return p.game[0]
}

// Except returns the game channels other than ch, in slot order
func (p *ChannelPool) Except(ch *Channel) []*Channel {
	out := make([]*Channel, 0, len(p.game)-1)
	for _, c := range p.game {
		if c != ch {
			out = append(out, c)
		}
	}
	return out
}
