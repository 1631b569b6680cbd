// Package session manages the editing sessions opened against an asset
// record: one active session per Manager, one tick registration per
// session, and the save contract back to the record's owner.
package session

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/spritekit/binding"
	"github.com/milk9111/spritekit/editor"
	"github.com/milk9111/spritekit/loop"
	"github.com/milk9111/spritekit/playback"
	"github.com/milk9111/spritekit/preview"
	"github.com/milk9111/spritekit/raster"
	"github.com/milk9111/spritekit/timeline"
)

var (
	ErrNoSession  = errors.New("session: no open session")
	ErrNotSavable = errors.New("session: session cannot be saved")
)

// SaveFunc receives a saved bitmap. frameCount is set for strip saves and
// nil for single-image pixel edits.
type SaveFunc func(assetID string, encoded []byte, frameCount *int)

// Record is the asset an editor session is opened on.
type Record struct {
	ID     string
	Image  *image.RGBA
	Frames int
}

// LoadRecord decodes a source bitmap into a record. A decode failure is
// terminal for the session that wanted it.
func LoadRecord(id string, r io.Reader, frames int) (Record, error) {
	img, err := raster.Decode(r)
	if err != nil {
		return Record{}, fmt.Errorf("session: load %s: %w", id, err)
	}
	return Record{ID: id, Image: img, Frames: frames}, nil
}

type Kind int

const (
	KindTimeline Kind = iota
	KindPixel
	KindPreview
)

func (k Kind) String() string {
	switch k {
	case KindTimeline:
		return "timeline"
	case KindPixel:
		return "pixel"
	case KindPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// Session is one open editor or preview.
type Session struct {
	ID      string
	Kind    Kind
	AssetID string

	Timeline *timeline.Timeline
	Playback *playback.Scheduler
	Editor   *editor.Editor
	Preview  *preview.Runner

	ticks int
}

// Ticks counts the frame callbacks delivered to a pixel session.
func (s *Session) Ticks() int { return s.ticks }

// Manager owns the tick driver and the current session.
type Manager struct {
	driver  *loop.Driver
	logger  *slog.Logger
	onSave  SaveFunc
	current *Session
}

func NewManager(driver *loop.Driver, onSave SaveFunc, logger *slog.Logger) *Manager {
	if driver == nil {
		driver = loop.NewDriver()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{driver: driver, onSave: onSave, logger: logger}
}

func (m *Manager) Current() *Session { return m.current }

// Update forwards one host frame to the active registration.
func (m *Manager) Update(dt time.Duration) {
	m.driver.Update(dt)
}

func (m *Manager) open(s *Session, t loop.Tickable) {
	m.Close()
	s.ID = uuid.NewString()
	m.current = s
	m.driver.Open(t)
	m.logger.Info("session opened", "session", s.ID, "kind", s.Kind.String(), "asset", s.AssetID)
}

func checkRecord(rec Record) error {
	if rec.Image == nil {
		return fmt.Errorf("session: %s: %w", rec.ID, raster.ErrDecode)
	}
	return nil
}

// OpenTimeline slices the record's strip and starts playback.
func (m *Manager) OpenTimeline(rec Record, fps int) (*Session, error) {
	if err := checkRecord(rec); err != nil {
		return nil, err
	}
	tl, err := timeline.Open(rec.Image, rec.Frames, fps)
	if err != nil {
		return nil, fmt.Errorf("session: %s: %w", rec.ID, err)
	}
	s := &Session{Kind: KindTimeline, AssetID: rec.ID, Timeline: tl, Playback: playback.New(tl)}
	m.open(s, s.Playback)
	return s, nil
}

// OpenPixel edits a copy of the record's bitmap.
func (m *Manager) OpenPixel(rec Record, opts editor.Options) (*Session, error) {
	if err := checkRecord(rec); err != nil {
		return nil, err
	}
	s := &Session{Kind: KindPixel, AssetID: rec.ID, Editor: editor.New(raster.Clone(rec.Image), opts)}
	m.open(s, loop.Func(func(time.Duration) { s.ticks++ }))
	return s, nil
}

// OpenPreview starts the runtime preview over resolved bindings.
func (m *Manager) OpenPreview(b binding.Bindings, params preview.Params, input preview.InputSource) *Session {
	frames := make(map[preview.State]int, 3)
	for st, slot := range map[preview.State]binding.Slot{
		preview.StateIdle: binding.SlotIdle,
		preview.StateRun:  binding.SlotRun,
		preview.StateJump: binding.SlotJump,
	} {
		if res, ok := b.Get(slot); ok {
			frames[st] = res.FrameCount()
		}
	}
	runner := preview.NewRunner(preview.NewSimulation(params, frames), input)
	s := &Session{Kind: KindPreview, AssetID: "preview", Preview: runner}
	m.open(s, runner)
	return s
}

// Save hands the session's result to the save contract and closes it.
func (m *Manager) Save() error {
	s := m.current
	if s == nil {
		return ErrNoSession
	}

	var (
		encoded []byte
		frames  *int
	)
	switch s.Kind {
	case KindTimeline:
		strip, n, err := s.Timeline.Save()
		if err != nil {
			return fmt.Errorf("session: save %s: %w", s.AssetID, err)
		}
		if encoded, err = raster.EncodePNG(strip); err != nil {
			return fmt.Errorf("session: save %s: %w", s.AssetID, err)
		}
		frames = &n
	case KindPixel:
		var err error
		if encoded, err = s.Editor.Encode(); err != nil {
			return fmt.Errorf("session: save %s: %w", s.AssetID, err)
		}
	default:
		return ErrNotSavable
	}

	if m.onSave != nil {
		m.onSave(s.AssetID, encoded, frames)
	}
	m.logger.Info("session saved", "session", s.ID, "asset", s.AssetID, "bytes", len(encoded))
	m.Close()
	return nil
}

// Close deregisters the session's tick callback and discards it.
func (m *Manager) Close() {
	if m.current == nil {
		return
	}
	m.driver.Close()
	m.logger.Debug("session closed", "session", m.current.ID, "kind", m.current.Kind.String())
	m.current = nil
}
