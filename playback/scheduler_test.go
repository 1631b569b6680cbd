package playback

import (
	"testing"
	"time"
)

type fakeSource struct {
	n, sel, fps int
	playing     bool
}

func (f *fakeSource) Len() int      { return f.n }
func (f *fakeSource) Selected() int { return f.sel }
func (f *fakeSource) Playing() bool { return f.playing }
func (f *fakeSource) FPS() int      { return f.fps }

func TestAdvancesOnePerInterval(t *testing.T) {
	src := &fakeSource{n: 4, fps: 8, playing: true}
	s := New(src)
	s.Start()

	cases := []struct {
		dt   time.Duration
		want int
	}{
		{100 * time.Millisecond, 0},
		{25 * time.Millisecond, 1},
		{124 * time.Millisecond, 1},
		{1 * time.Millisecond, 2},
		{250 * time.Millisecond, 0},
	}
	for i, c := range cases {
		s.Tick(c.dt)
		if s.Index() != c.want {
			t.Fatalf("step %d: expected index %d, got %d", i, c.want, s.Index())
		}
	}
}

func TestPausedPinsToSelection(t *testing.T) {
	src := &fakeSource{n: 5, sel: 3, fps: 8, playing: true}
	s := New(src)
	s.Start()
	s.Tick(125 * time.Millisecond)
	if s.Index() != 4 {
		t.Fatalf("expected 4 while playing, got %d", s.Index())
	}

	src.playing = false
	s.Tick(125 * time.Millisecond)
	if s.Index() != 3 {
		t.Fatalf("expected pin to selection 3, got %d", s.Index())
	}
	s.Tick(500 * time.Millisecond)
	if s.Index() != 3 {
		t.Fatalf("paused playback moved to %d", s.Index())
	}

	src.sel = 42
	s.Tick(125 * time.Millisecond)
	if s.Index() != 0 {
		t.Fatalf("invalid selection should pin to 0, got %d", s.Index())
	}
}

func TestStopIgnoresTicks(t *testing.T) {
	src := &fakeSource{n: 3, fps: 60, playing: true}
	s := New(src)
	advances := 0
	s.OnAdvance = func(int) { advances++ }
	s.Start()
	s.Tick(time.Second / 60)
	s.Stop()
	s.Tick(time.Second)
	if advances != 1 || s.Running() {
		t.Fatalf("expected 1 advance before stop, got %d (running=%v)", advances, s.Running())
	}
}

func TestFPSChangeKeepsElapsed(t *testing.T) {
	src := &fakeSource{n: 10, fps: 4, playing: true}
	s := New(src)
	s.Start()
	s.Tick(100 * time.Millisecond)
	src.fps = 10
	s.Tick(0)
	if s.Index() != 1 {
		t.Fatalf("accumulated 100ms should cover one 10fps interval, got %d", s.Index())
	}
}

func TestIntervalClamps(t *testing.T) {
	if Interval(0) != time.Second {
		t.Fatalf("fps below 1 should clamp to 1")
	}
	if Interval(1000) != time.Second/60 {
		t.Fatalf("fps above 60 should clamp to 60")
	}
	if Interval(8) != 125*time.Millisecond {
		t.Fatalf("expected 125ms at 8 fps")
	}
}

func TestIndexStaysInRangeWhenSourceShrinks(t *testing.T) {
	src := &fakeSource{n: 5, fps: 60, playing: true}
	s := New(src)
	s.Start()
	for i := 0; i < 4; i++ {
		s.Tick(time.Second / 60)
	}
	src.n = 2
	if idx := s.Index(); idx < 0 || idx >= 2 {
		t.Fatalf("index %d out of range", idx)
	}
}

func TestLongStallDropsSurplusIntervals(t *testing.T) {
	src := &fakeSource{n: 3, fps: 8, playing: true}
	s := New(src)
	advances := 0
	s.OnAdvance = func(int) { advances++ }
	s.Start()

	s.Tick(time.Hour + 50*time.Millisecond)
	if advances != 3 || s.Index() != 0 {
		t.Fatalf("expected 3 capped advances ending at 0, got %d advances index %d", advances, s.Index())
	}

	s.Tick(74 * time.Millisecond)
	if advances != 3 {
		t.Fatalf("only the sub-interval remainder should carry over, got %d advances", advances)
	}
	s.Tick(time.Millisecond)
	if advances != 4 || s.Index() != 1 {
		t.Fatalf("expected one more advance to index 1, got %d advances index %d", advances, s.Index())
	}
}
