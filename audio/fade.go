package audio

import (
	"math"
	"sort"
	"time"

	"github.com/lixenwraith/maze-echo/constant"
)

// FadeJob ramps one channel from Start to Target in Steps equal increments
type FadeJob struct {
	Channel *Channel
	Start   float64
	Target  float64
	Step    float64
	Steps   int

	done       int
	onComplete []func()
}

// task is deferred work due at a tick count
type task struct {
	due uint64
	fn  func()
}

// Scheduler drives every fade from one clock: each Tick advances all active
// jobs by one step and runs due tasks. At most one job exists per channel.
type Scheduler struct {
	interval time.Duration
	steps    int

	jobs  map[int]*FadeJob
	tasks []task
	ticks uint64
}

// NewScheduler creates a scheduler ticking every interval with ramps lasting duration
func NewScheduler(interval, duration time.Duration) *Scheduler {
	if interval <= 0 {
		interval = constant.FadeTickInterval
	}
	steps := int(duration / interval)
	if steps < 1 {
		steps = 1
	}
	return &Scheduler{
		interval: interval,
		steps:    steps,
		jobs:     make(map[int]*FadeJob),
	}
}

// FadeTo ramps ch toward target. A request for the target already in flight
// is a no-op, apart from attaching onComplete to the running job. Any other
// target replaces the running job. Near-equal start and target snap at once.
func (s *Scheduler) FadeTo(ch *Channel, target float64, onComplete func()) {
	target = clampUnit(target)

	if j, ok := s.jobs[ch.id]; ok && math.Abs(j.Target-target) < constant.FadeTargetEpsilon {
		if onComplete != nil {
			j.onComplete = append(j.onComplete, onComplete)
		}
		return
	}
	delete(s.jobs, ch.id)

	start := ch.volume
	diff := target - start
	if math.Abs(diff) < constant.FadeSnapThreshold {
		ch.SetVolume(target)
		if onComplete != nil {
			onComplete()
		}
		return
	}

	j := &FadeJob{
		Channel: ch,
		Start:   start,
		Target:  target,
		Step:    diff / float64(s.steps),
		Steps:   s.steps,
	}
	if onComplete != nil {
		j.onComplete = append(j.onComplete, onComplete)
	}
	s.jobs[ch.id] = j
}

// Cancel drops the job on ch, leaving its volume where it is
func (s *Scheduler) Cancel(ch *Channel) {
	delete(s.jobs, ch.id)
}

// Job returns a copy of the job running on ch
func (s *Scheduler) Job(ch *Channel) (FadeJob, bool) {
	j, ok := s.jobs[ch.id]
	if !ok {
		return FadeJob{}, false
	}
	return *j, true
}

// Target returns the volume ch is heading toward: the job target while
// ramping, otherwise its current volume
func (s *Scheduler) Target(ch *Channel) float64 {
	if j, ok := s.jobs[ch.id]; ok {
		return j.Target
	}
	return ch.volume
}

// Active returns the number of running jobs
func (s *Scheduler) Active() int { return len(s.jobs) }

// Ticks returns the number of ticks processed
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// After runs fn on the first tick at least d from now
func (s *Scheduler) After(d time.Duration, fn func()) {
	n := uint64((d + s.interval - 1) / s.interval)
	if n == 0 {
		n = 1
	}
	s.tasks = append(s.tasks, task{due: s.ticks + n, fn: fn})
}

// Pending returns the number of queued tasks
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Reset drops all jobs and tasks without running callbacks
func (s *Scheduler) Reset() {
	clear(s.jobs)
	s.tasks = nil
}

// Tick advances every job one step in channel order, then fires completion
// callbacks and due tasks. Callbacks may schedule new fades or tasks.
func (s *Scheduler) Tick() {
	s.ticks++

	ids := make([]int, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var completed []func()
	for _, id := range ids {
		j := s.jobs[id]
		j.done++

		v := j.Start + j.Step*float64(j.done)
		if j.Step > 0 {
			v = math.Min(v, j.Target)
		} else {
			v = math.Max(v, j.Target)
		}

		if j.done >= j.Steps {
			v = j.Target
			delete(s.jobs, id)
			completed = append(completed, j.onComplete...)
		}
		j.Channel.SetVolume(v)
	}

	for _, fn := range completed {
		fn()
	}

	if len(s.tasks) == 0 {
		return
	}
	due := s.tasks[:0:0]
	keep := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= s.ticks {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	s.tasks = keep
	for _, t := range due {
		t.fn()
	}
}
