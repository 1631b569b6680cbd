// Package playback advances the displayed frame of a sequence at a fixed
// rate from the host's per-frame callback.
package playback

import (
	"time"

	"github.com/milk9111/spritekit/common"
)

const (
	MinFPS = 1
	MaxFPS = 60
)

// Source is the sequence being played back.
type Source interface {
	Len() int
	Selected() int
	Playing() bool
	FPS() int
}

// Scheduler implements loop.Tickable over a Source. While the source is
// playing the index advances circularly once per frame interval; while
// paused it pins to the source's selection.
type Scheduler struct {
	src     Source
	index   int
	elapsed time.Duration
	running bool

	// OnAdvance, when set, observes each interval boundary.
	OnAdvance func(index int)
}

func New(src Source) *Scheduler {
	return &Scheduler{src: src}
}

// Interval is the display duration of one frame at fps, clamped to [MinFPS, MaxFPS].
func Interval(fps int) time.Duration {
	return time.Second / time.Duration(common.Clamp(fps, MinFPS, MaxFPS))
}

func (s *Scheduler) Start() {
	s.running = true
	s.elapsed = 0
	s.index = s.pinned()
}

// Stop deregisters the scheduler; later ticks are ignored.
func (s *Scheduler) Stop() {
	s.running = false
}

func (s *Scheduler) Running() bool { return s.running }

// Index is the frame index to display, always within [0, Len).
func (s *Scheduler) Index() int {
	n := s.src.Len()
	if n <= 0 {
		return 0
	}
	if s.index < 0 || s.index >= n {
		return common.Wrap(s.index, n)
	}
	return s.index
}

// Tick accumulates dt and applies one step for every whole interval elapsed.
// At most Len steps are applied per tick; intervals beyond that are dropped
// so the work per tick is bounded however long the stall was.
func (s *Scheduler) Tick(dt time.Duration) {
	if !s.running || dt < 0 {
		return
	}
	s.elapsed += dt
	interval := Interval(s.src.FPS())
	limit := max(s.src.Len(), 1)
	for steps := 0; s.elapsed >= interval && steps < limit; steps++ {
		s.elapsed -= interval
		s.step()
	}
	s.elapsed %= interval
}

func (s *Scheduler) step() {
	n := s.src.Len()
	if s.src.Playing() && n > 0 {
		s.index = common.Wrap(s.index+1, n)
	} else {
		s.index = s.pinned()
	}
	if s.OnAdvance != nil {
		s.OnAdvance(s.index)
	}
}

func (s *Scheduler) pinned() int {
	sel := s.src.Selected()
	if sel < 0 || sel >= s.src.Len() {
		return 0
	}
	return sel
}
