package main

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spritekit/config"
	"github.com/milk9111/spritekit/loop"
	"github.com/milk9111/spritekit/raster"
	"github.com/milk9111/spritekit/session"
)

var clearColor = color.RGBA{R: 32, G: 32, B: 40, A: 255}

// view is the window-specific half of a host: input handling before the
// session tick and drawing after it.
type view interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// hostGame adapts a session.Manager to ebiten.Game. Every frame it lets the
// view handle input, then forwards the elapsed time to the one active
// tick registration.
type hostGame struct {
	manager *session.Manager
	clock   *loop.Clock
	view    view
	logger  *slog.Logger

	width, height int
}

func newHostGame(cfg *config.Config, manager *session.Manager, v view, logger *slog.Logger) *hostGame {
	return &hostGame{
		manager: manager,
		clock:   loop.NewClock(nil),
		view:    v,
		logger:  logger,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.manager.Close()
		return ebiten.Termination
	}
	if err := g.view.Update(); err != nil {
		return err
	}
	if g.manager.Current() == nil {
		// Saved or closed by the view.
		return ebiten.Termination
	}
	g.manager.Update(g.clock.Delta())
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	g.view.Draw(screen)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func runWindow(cfg *config.Config, title string, g *hostGame) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " - " + title)
	ebiten.SetTPS(60)
	g.logger.Debug("window opened", "title", title, "width", cfg.Window.Width, "height", cfg.Window.Height)
	return ebiten.RunGame(g)
}

// bufferImage keeps an ebiten texture in sync with an RGBA buffer that
// changes in place.
type bufferImage struct {
	img *ebiten.Image
}

func (b *bufferImage) sync(buf *image.RGBA) *ebiten.Image {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	pix := buf.Pix
	if buf.Stride != 4*w || len(pix) != 4*w*h {
		pix = raster.ToRGBA(buf).Pix
	}
	if b.img == nil || b.img.Bounds().Dx() != w || b.img.Bounds().Dy() != h {
		if b.img != nil {
			b.img.Deallocate()
		}
		b.img = ebiten.NewImage(w, h)
	}
	b.img.WritePixels(pix)
	return b.img
}
