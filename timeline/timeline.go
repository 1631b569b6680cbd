// Package timeline edits the ordered frame sequence of one sprite strip.
package timeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/raster"
)

const (
	MinFPS     = 1
	MaxFPS     = 60
	DefaultFPS = 8
)

var (
	// ErrClosed is returned by operations on a timeline that was saved.
	ErrClosed = errors.New("timeline: session closed")
	// ErrEmpty is returned when a timeline is built without frames.
	ErrEmpty = errors.New("timeline: no frames")
)

// Timeline is an ordered, editable frame sequence with a selection and
// playback settings. It always holds at least one frame.
type Timeline struct {
	frames   []*image.RGBA
	selected int
	playing  bool
	fps      int
	closed   bool
}

// New builds a timeline over frames. The slice is copied; the frames are not.
func New(frames []*image.RGBA, fps int) (*Timeline, error) {
	if len(frames) == 0 {
		return nil, ErrEmpty
	}
	t := &Timeline{
		frames: append([]*image.RGBA(nil), frames...),
		fps:    common.Clamp(fps, MinFPS, MaxFPS),
	}
	return t, nil
}

// Open slices strip into frameCount frames and builds a timeline over them.
func Open(strip image.Image, frameCount, fps int) (*Timeline, error) {
	frames, err := raster.Slice(strip, frameCount)
	if err != nil {
		return nil, fmt.Errorf("timeline: open: %w", err)
	}
	return New(frames, fps)
}

func (t *Timeline) Len() int { return len(t.frames) }

// Selected returns the selected frame index.
func (t *Timeline) Selected() int { return t.selected }

func (t *Timeline) Playing() bool { return t.playing }

func (t *Timeline) FPS() int { return t.fps }

func (t *Timeline) Closed() bool { return t.closed }

// Frame returns frame i, or nil when out of range.
func (t *Timeline) Frame(i int) *image.RGBA {
	if i < 0 || i >= len(t.frames) {
		return nil
	}
	return t.frames[i]
}

// Frames returns a copy of the frame order.
func (t *Timeline) Frames() []*image.RGBA {
	return append([]*image.RGBA(nil), t.frames...)
}

// Select sets the selection, clamped into range.
func (t *Timeline) Select(i int) {
	t.selected = common.Clamp(i, 0, len(t.frames)-1)
}

// MoveFrame swaps frame i with its neighbor at i+d, d being -1 or +1.
// The selection follows the moved frame. It reports whether a swap happened.
func (t *Timeline) MoveFrame(i, d int) bool {
	if t.closed || (d != -1 && d != 1) {
		return false
	}
	j := i + d
	if i < 0 || i >= len(t.frames) || j < 0 || j >= len(t.frames) {
		return false
	}
	t.frames[i], t.frames[j] = t.frames[j], t.frames[i]
	t.selected = j
	return true
}

// DeleteFrame removes frame i. The last remaining frame is never removed.
func (t *Timeline) DeleteFrame(i int) bool {
	if t.closed || len(t.frames) <= 1 || i < 0 || i >= len(t.frames) {
		return false
	}
	t.frames = append(t.frames[:i], t.frames[i+1:]...)
	if t.selected >= len(t.frames) {
		t.selected = len(t.frames) - 1
	}
	return true
}

// DuplicateFrame inserts a copy of frame i right after it and selects the copy.
func (t *Timeline) DuplicateFrame(i int) bool {
	if t.closed || i < 0 || i >= len(t.frames) {
		return false
	}
	cp := raster.Clone(t.frames[i])
	t.frames = append(t.frames, nil)
	copy(t.frames[i+2:], t.frames[i+1:])
	t.frames[i+1] = cp
	t.selected = i + 1
	return true
}

// SetFPS sets the playback rate, clamped to [MinFPS, MaxFPS].
func (t *Timeline) SetFPS(fps int) {
	t.fps = common.Clamp(fps, MinFPS, MaxFPS)
}

func (t *Timeline) Play()  { t.playing = true }
func (t *Timeline) Pause() { t.playing = false }

func (t *Timeline) TogglePlay() { t.playing = !t.playing }

// Save stitches the current order into a new strip and closes the timeline.
func (t *Timeline) Save() (*image.RGBA, int, error) {
	if t.closed {
		return nil, 0, ErrClosed
	}
	strip, err := raster.Stitch(t.frames)
	if err != nil {
		return nil, 0, fmt.Errorf("timeline: save: %w", err)
	}
	t.closed = true
	t.playing = false
	return strip, len(t.frames), nil
}
