package main

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spritekit/playback"
	"github.com/milk9111/spritekit/raster"
	"github.com/milk9111/spritekit/session"
	"github.com/milk9111/spritekit/timeline"
	"golang.org/x/image/colornames"
)

const (
	thumbSize   = 64
	thumbGap    = 8
	thumbBottom = 64
)

// timelineView shows the playing frame contained in the upper area and a
// row of thumbnails with the selection outlined.
type timelineView struct {
	manager *session.Manager
	tl      *timeline.Timeline
	sched   *playback.Scheduler
	logger  *slog.Logger
	ui      *ebitenui.UI

	textures map[*image.RGBA]*ebiten.Image

	screenW, screenH int
}

func newTimelineView(manager *session.Manager, s *session.Session, screenW, screenH int, logger *slog.Logger) (*timelineView, error) {
	face, err := loadFontFace(14)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	v := &timelineView{
		manager:  manager,
		tl:       s.Timeline,
		sched:    s.Playback,
		logger:   logger,
		textures: make(map[*image.RGBA]*ebiten.Image),
		screenW:  screenW,
		screenH:  screenH,
	}

	theme := newToolTheme(face)
	bar := newBar(screenW/2, 40)
	for _, b := range []struct {
		label string
		fn    func()
	}{
		{"<", func() { v.tl.MoveFrame(v.tl.Selected(), -1) }},
		{">", func() { v.tl.MoveFrame(v.tl.Selected(), 1) }},
		{"Dup", func() { v.tl.DuplicateFrame(v.tl.Selected()) }},
		{"Del", func() { v.tl.DeleteFrame(v.tl.Selected()) }},
		{"Play", v.tl.TogglePlay},
		{"FPS-", func() { v.tl.SetFPS(v.tl.FPS() - 1) }},
		{"FPS+", func() { v.tl.SetFPS(v.tl.FPS() + 1) }},
		{"Save", v.save},
	} {
		bar.AddChild(newButton(theme, face, b.label, b.fn))
	}
	v.ui = newRootUI(theme, bar)
	return v, nil
}

func (v *timelineView) save() {
	if err := v.manager.Save(); err != nil {
		v.logger.Error("save failed", "error", err)
	}
}

func (v *timelineView) Update() error {
	v.ui.Update()
	if v.tl.Closed() {
		return nil
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	sel := v.tl.Selected()
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.save()
		return nil
	case shift && inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.tl.MoveFrame(sel, -1)
	case shift && inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.tl.MoveFrame(sel, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.tl.Select(sel - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.tl.Select(sel + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		v.tl.DuplicateFrame(sel)
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		v.tl.DeleteFrame(sel)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.tl.TogglePlay()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.tl.SetFPS(v.tl.FPS() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.tl.SetFPS(v.tl.FPS() - 1)
	}

	if !ebuiinput.UIHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		for i := range v.tl.Len() {
			if image.Pt(cx, cy).In(v.thumbRect(i)) {
				v.tl.Select(i)
				break
			}
		}
	}
	return nil
}

func (v *timelineView) thumbRect(i int) image.Rectangle {
	y := v.screenH - thumbBottom - thumbSize - thumbGap
	x := thumbGap + i*(thumbSize+thumbGap)
	return image.Rect(x, y, x+thumbSize, y+thumbSize)
}

// texture caches one ebiten image per frame. Frames are never mutated in
// place so the pointer identifies the pixels.
func (v *timelineView) texture(f *image.RGBA) *ebiten.Image {
	if img, ok := v.textures[f]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(f)
	v.textures[f] = img
	return img
}

func (v *timelineView) prune(frames []*image.RGBA) {
	live := make(map[*image.RGBA]bool, len(frames))
	for _, f := range frames {
		live[f] = true
	}
	for f, img := range v.textures {
		if !live[f] {
			img.Deallocate()
			delete(v.textures, f)
		}
	}
}

func (v *timelineView) Draw(screen *ebiten.Image) {
	frames := v.tl.Frames()
	v.prune(frames)

	previewH := v.thumbRect(0).Min.Y - thumbGap
	if f := v.tl.Frame(v.sched.Index()); f != nil {
		b := f.Bounds()
		p := raster.Contain(b.Dx(), b.Dy(), v.screenW, previewH, raster.DefaultFill)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Scale, p.Scale)
		op.GeoM.Translate(p.OffsetX, p.OffsetY)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(v.texture(f), op)
	}

	for i, f := range frames {
		r := v.thumbRect(i)
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), thumbSize, thumbSize, colornames.Dimgray, false)
		b := f.Bounds()
		p := raster.Contain(b.Dx(), b.Dy(), thumbSize, thumbSize, 1)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Scale, p.Scale)
		op.GeoM.Translate(float64(r.Min.X)+p.OffsetX, float64(r.Min.Y)+p.OffsetY)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(v.texture(f), op)
		if i == v.tl.Selected() {
			vector.StrokeRect(screen, float32(r.Min.X)-2, float32(r.Min.Y)-2, thumbSize+4, thumbSize+4, 2, colornames.Gold, false)
		}
	}

	state := "paused"
	if v.tl.Playing() {
		state = "playing"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d/%d  selected %d  %d fps  %s",
		v.sched.Index()+1, v.tl.Len(), v.tl.Selected()+1, v.tl.FPS(), state), thumbGap, 0)

	v.ui.Draw(screen)
}
