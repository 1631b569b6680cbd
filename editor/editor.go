// Package editor is the single-layer pixel editor: tool dispatch over a
// mutable RGBA buffer with zoomed pointer mapping.
package editor

import (
	"image"
	"image/color"
	"math"

	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/raster"
)

const (
	MinZoom     = 1
	MaxZoom     = 16
	DefaultZoom = 8
)

// Options configures a new Editor.
type Options struct {
	Zoom  int
	Color color.RGBA
}

// Editor owns the raster buffer being edited. All mutations happen
// synchronously inside the pointer handlers.
type Editor struct {
	buf     *image.RGBA
	palette []color.RGBA
	color   color.RGBA
	tool    Tool
	zoom    int
	dirty   bool
}

// New starts editing buf in place. The palette is computed once here.
func New(buf *image.RGBA, opts Options) *Editor {
	e := &Editor{
		buf:     buf,
		palette: raster.ExtractPalette(buf, raster.MaxPaletteColors),
		color:   opts.Color,
		tool:    ToolBrush,
	}
	if e.color == (color.RGBA{}) {
		e.color = color.RGBA{A: 0xff}
		if len(e.palette) > 0 {
			e.color = e.palette[0]
		}
	}
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}
	e.SetZoom(opts.Zoom)
	return e
}

func (e *Editor) Buffer() *image.RGBA { return e.buf }

// Palette returns the colors found when the editor was opened.
func (e *Editor) Palette() []color.RGBA {
	return append([]color.RGBA(nil), e.palette...)
}

func (e *Editor) Color() color.RGBA { return e.color }

func (e *Editor) SetColor(c color.RGBA) { e.color = c }

func (e *Editor) Tool() Tool { return e.tool }

func (e *Editor) SetTool(t Tool) {
	if t < ToolBrush || t > ToolPicker {
		return
	}
	e.tool = t
}

func (e *Editor) Zoom() int { return e.zoom }

// SetZoom sets the display magnification, clamped to [MinZoom, MaxZoom].
func (e *Editor) SetZoom(z int) {
	e.zoom = common.Clamp(z, MinZoom, MaxZoom)
}

func (e *Editor) ZoomIn()  { e.SetZoom(e.zoom * 2) }
func (e *Editor) ZoomOut() { e.SetZoom(e.zoom / 2) }

// Dirty reports whether any pixel changed since opening.
func (e *Editor) Dirty() bool { return e.dirty }

// DisplaySize is the on-screen size of the buffer at the current zoom.
func (e *Editor) DisplaySize() (int, int) {
	b := e.buf.Bounds()
	return b.Dx() * e.zoom, b.Dy() * e.zoom
}

// ScreenToBuffer maps a point relative to the canvas origin, drawn at
// displayW x displayH, onto buffer coordinates using the backing/on-screen ratio.
func (e *Editor) ScreenToBuffer(px, py, displayW, displayH float64) (int, int, bool) {
	if displayW <= 0 || displayH <= 0 {
		return 0, 0, false
	}
	b := e.buf.Bounds()
	x := int(math.Floor(px * float64(b.Dx()) / displayW))
	y := int(math.Floor(py * float64(b.Dy()) / displayH))
	x += b.Min.X
	y += b.Min.Y
	return x, y, raster.InBounds(e.buf, x, y)
}

// PointerDown applies the active tool at a canvas-relative point.
func (e *Editor) PointerDown(px, py float64) bool {
	x, y, ok := e.hit(px, py)
	if !ok {
		return false
	}
	return e.Apply(x, y)
}

// PointerDrag applies brush or eraser at the sampled point only. Points
// between successive samples are not interpolated.
func (e *Editor) PointerDrag(px, py float64) bool {
	if !e.tool.continuous() {
		return false
	}
	return e.PointerDown(px, py)
}

func (e *Editor) hit(px, py float64) (int, int, bool) {
	w, h := e.DisplaySize()
	return e.ScreenToBuffer(px, py, float64(w), float64(h))
}

// Apply runs the active tool at buffer coordinates x,y and reports whether
// the buffer or the editor state changed.
func (e *Editor) Apply(x, y int) bool {
	if !raster.InBounds(e.buf, x, y) {
		return false
	}
	switch e.tool {
	case ToolBrush:
		return e.set(x, y, e.color)
	case ToolEraser:
		return e.set(x, y, raster.Transparent)
	case ToolBucket:
		if raster.FloodFill(e.buf, x, y, e.color) == 0 {
			return false
		}
		e.dirty = true
		return true
	case ToolPicker:
		e.color = e.buf.RGBAAt(x, y)
		e.tool = ToolBrush
		return true
	}
	return false
}

func (e *Editor) set(x, y int, c color.RGBA) bool {
	if e.buf.RGBAAt(x, y) == c {
		return false
	}
	e.buf.SetRGBA(x, y, c)
	e.dirty = true
	return true
}

// Encode returns the buffer as PNG.
func (e *Editor) Encode() ([]byte, error) {
	return raster.EncodePNG(e.buf)
}
