package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spritekit/editor"
	"github.com/milk9111/spritekit/session"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	canvasMargin = 16
	swatchSize   = 24
	swatchGap    = 4
)

// pixelView draws the editor buffer at integer zoom with the palette
// along the right edge.
type pixelView struct {
	manager *session.Manager
	ed      *editor.Editor
	logger  *slog.Logger

	ui      *ebitenui.UI
	toolBar *ToolBar
	canvas  bufferImage

	screenW, screenH int
	painting         bool
	clipboardReady   bool
}

func newPixelView(manager *session.Manager, ed *editor.Editor, screenW, screenH int, logger *slog.Logger) (*pixelView, error) {
	face, err := loadFontFace(14)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	v := &pixelView{
		manager: manager,
		ed:      ed,
		logger:  logger,
		screenW: screenW,
		screenH: screenH,
	}
	theme := newToolTheme(face)
	bar, tb := buildToolBar(theme, face, func(t editor.Tool) { ed.SetTool(t) }, ed.Tool())
	v.ui = newRootUI(theme, bar)
	v.toolBar = tb

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "error", err)
	} else {
		v.clipboardReady = true
	}
	return v, nil
}

func (v *pixelView) canvasOrigin() (float64, float64) {
	return canvasMargin, canvasMargin
}

func (v *pixelView) swatchRect(i int) image.Rectangle {
	x := v.screenW - canvasMargin - swatchSize
	y := canvasMargin + i*(swatchSize+swatchGap)
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

func (v *pixelView) Update() error {
	v.ui.Update()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := v.manager.Save(); err != nil {
			v.logger.Error("save failed", "error", err)
		}
		return nil
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.copyToClipboard()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		v.ed.SetTool(editor.ToolBrush)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		v.ed.SetTool(editor.ToolEraser)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.ed.SetTool(editor.ToolBucket)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		v.ed.SetTool(editor.ToolPicker)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		v.ed.ZoomIn()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		v.ed.ZoomOut()
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		v.ed.ZoomIn()
	} else if wy < 0 {
		v.ed.ZoomOut()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.painting = false
	}
	if !ebuiinput.UIHovered {
		v.handlePointer()
	}

	// Picker reverts to brush inside the editor; keep the bar in step.
	v.toolBar.SetTool(v.ed.Tool())
	return nil
}

func (v *pixelView) handlePointer() {
	cx, cy := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pal := v.ed.Palette()
		for i := range pal {
			if image.Pt(cx, cy).In(v.swatchRect(i)) {
				v.ed.SetColor(pal[i])
				return
			}
		}
	}

	ox, oy := v.canvasOrigin()
	px, py := float64(cx)-ox, float64(cy)-oy
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.painting = true
		v.ed.PointerDown(px, py)
	case v.painting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		v.ed.PointerDrag(px, py)
	}
}

func (v *pixelView) copyToClipboard() {
	if !v.clipboardReady {
		return
	}
	b, err := v.ed.Encode()
	if err != nil {
		v.logger.Error("encode for clipboard failed", "error", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, b)
	v.logger.Info("image copied to clipboard", "bytes", len(b))
}

func (v *pixelView) Draw(screen *ebiten.Image) {
	buf := v.ed.Buffer()
	ox, oy := v.canvasOrigin()
	dw, dh := v.ed.DisplaySize()

	vector.FillRect(screen, float32(ox), float32(oy), float32(dw), float32(dh), colornames.Dimgray, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(v.ed.Zoom()), float64(v.ed.Zoom()))
	op.GeoM.Translate(ox, oy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(v.canvas.sync(buf), op)
	vector.StrokeRect(screen, float32(ox), float32(oy), float32(dw), float32(dh), 1, colornames.Lightgray, false)

	active := v.ed.Color()
	for i, c := range v.ed.Palette() {
		r := v.swatchRect(i)
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), swatchSize, swatchSize, c, false)
		if c == active {
			vector.StrokeRect(screen, float32(r.Min.X)-1, float32(r.Min.Y)-1, swatchSize+2, swatchSize+2, 2, color.White, false)
		}
	}

	status := fmt.Sprintf("%s  zoom x%d  color #%02x%02x%02x%02x", v.ed.Tool(), v.ed.Zoom(), active.R, active.G, active.B, active.A)
	if v.ed.Dirty() {
		status += "  (modified)"
	}
	ebitenutil.DebugPrintAt(screen, status, canvasMargin, 0)

	v.ui.Draw(screen)
}
