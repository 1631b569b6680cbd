package editor

import (
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/spritekit/raster"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func newBuffer() *image.RGBA {
	buf := image.NewRGBA(image.Rect(0, 0, 4, 4))
	buf.SetRGBA(0, 0, red)
	buf.SetRGBA(3, 3, green)
	return buf
}

func TestNewComputesPaletteOnce(t *testing.T) {
	e := New(newBuffer(), Options{Zoom: 2})
	if p := e.Palette(); len(p) != 2 || p[0] != red || p[1] != green {
		t.Fatalf("unexpected palette %v", p)
	}
	e.SetColor(blue)
	e.Apply(1, 1)
	if len(e.Palette()) != 2 {
		t.Fatalf("palette must not update live")
	}
	if e.Color() != blue {
		t.Fatalf("expected active color to stay blue")
	}
}

func TestScreenToBuffer(t *testing.T) {
	e := New(newBuffer(), Options{Zoom: 4})
	cases := []struct {
		name   string
		px, py float64
		x, y   int
		ok     bool
	}{
		{"origin", 0, 0, 0, 0, true},
		{"inside_cell", 3.9, 7.9, 0, 1, true},
		{"far_corner", 15.5, 15.5, 3, 3, true},
		{"outside", 16, 2, 4, 0, false},
		{"negative", -0.5, 1, -1, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := e.DisplaySize()
			x, y, ok := e.ScreenToBuffer(c.px, c.py, float64(w), float64(h))
			if x != c.x || y != c.y || ok != c.ok {
				t.Fatalf("expected (%d,%d,%v), got (%d,%d,%v)", c.x, c.y, c.ok, x, y, ok)
			}
		})
	}
}

func TestBrushAndEraser(t *testing.T) {
	e := New(newBuffer(), Options{Zoom: 1, Color: blue})
	if !e.PointerDown(2.5, 1.5) {
		t.Fatalf("expected brush to paint")
	}
	if e.Buffer().RGBAAt(2, 1) != blue {
		t.Fatalf("brush did not set pixel")
	}
	if e.PointerDown(2.5, 1.5) {
		t.Fatalf("repainting the same color should report no change")
	}

	e.SetTool(ToolEraser)
	e.PointerDrag(0, 0)
	if e.Buffer().RGBAAt(0, 0) != raster.Transparent {
		t.Fatalf("eraser should clear alpha")
	}
	if !e.Dirty() {
		t.Fatalf("expected dirty after edits")
	}
}

func TestBrushDragDoesNotInterpolate(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 8, 1))
	e := New(buf, Options{Zoom: 1, Color: red})
	e.PointerDown(0, 0)
	e.PointerDrag(6, 0)
	for x := 1; x < 6; x++ {
		if buf.RGBAAt(x, 0) != raster.Transparent {
			t.Fatalf("pixel %d painted between samples", x)
		}
	}
}

func TestBucketFillsRegion(t *testing.T) {
	e := New(newBuffer(), Options{Zoom: 1, Color: blue})
	e.SetTool(ToolBucket)
	if e.PointerDrag(1, 1) {
		t.Fatalf("bucket must not act on drag")
	}
	if !e.PointerDown(1, 1) {
		t.Fatalf("expected bucket to fill")
	}
	buf := e.Buffer()
	if buf.RGBAAt(0, 0) != red || buf.RGBAAt(3, 3) != green || buf.RGBAAt(2, 2) != blue {
		t.Fatalf("bucket fill recolored the wrong pixels")
	}
	if e.PointerDown(1, 1) {
		t.Fatalf("filling with the same color should be a no-op")
	}
}

func TestPickerRevertsToBrush(t *testing.T) {
	e := New(newBuffer(), Options{Zoom: 1, Color: blue})
	e.SetTool(ToolPicker)
	e.PointerDown(3, 3)
	if e.Color() != green {
		t.Fatalf("picker should adopt the hit color, got %v", e.Color())
	}
	if e.Tool() != ToolBrush {
		t.Fatalf("picker should switch back to brush, got %v", e.Tool())
	}
	if e.Dirty() {
		t.Fatalf("picking must not modify the buffer")
	}
}

func TestZoomClamps(t *testing.T) {
	e := New(newBuffer(), Options{Zoom: 40})
	if e.Zoom() != MaxZoom {
		t.Fatalf("expected %d, got %d", MaxZoom, e.Zoom())
	}
	e.SetZoom(1)
	e.ZoomOut()
	if e.Zoom() != MinZoom {
		t.Fatalf("expected %d, got %d", MinZoom, e.Zoom())
	}
	e.ZoomIn()
	if e.Zoom() != 2 {
		t.Fatalf("expected 2, got %d", e.Zoom())
	}
}

func TestToolString(t *testing.T) {
	for _, tool := range Tools {
		if tool.String() == "Unknown" {
			t.Fatalf("tool %d has no name", tool)
		}
	}
	if Tool(9).String() != "Unknown" {
		t.Fatalf("expected Unknown for invalid tool")
	}
}
