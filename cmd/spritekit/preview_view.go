package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritekit/binding"
	"github.com/milk9111/spritekit/catalog"
	"github.com/milk9111/spritekit/config"
	"github.com/milk9111/spritekit/preview"
	"github.com/milk9111/spritekit/raster"
	"github.com/milk9111/spritekit/session"
	"golang.org/x/image/colornames"
)

func previewParams(cfg *config.Config) preview.Params {
	p := preview.DefaultParams()
	if cfg.Preview.FloorY > 0 {
		p.FloorY = cfg.Preview.FloorY
	}
	pl := cfg.Preview.Platform
	if pl[2] > 0 && pl[3] > 0 {
		p.Platform = cp.BB{L: pl[0], B: pl[1], R: pl[0] + pl[2], T: pl[1] + pl[3]}
	}
	p.WorldWidth = float64(cfg.Window.Width)
	return p
}

// captureInput reads the keyboard once; the runner calls it once per tick.
func captureInput() preview.Input {
	return preview.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
	}
}

// resolveBindings decodes the catalog bitmaps and binds every slot once.
func resolveBindings(cat *catalog.Catalog, scriptPath string, logger *slog.Logger) (binding.Bindings, error) {
	if failed := cat.LoadImages(logger); failed > 0 {
		logger.Warn("some catalog bitmaps could not be decoded", "failed", failed)
	}
	var matcher binding.Matcher
	if scriptPath != "" {
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("read match script: %w", err)
		}
		m, err := binding.NewScriptMatcher(src)
		if err != nil {
			return nil, err
		}
		matcher = m
	}
	b := binding.Bind(binding.NewHeuristic(cat.Candidates(), matcher, logger))
	for _, slot := range binding.Slots {
		if res, ok := b.Get(slot); ok {
			logger.Debug("slot bound", "slot", string(slot), "source", res.Source, "frames", res.FrameCount())
		} else {
			logger.Debug("slot unbound", "slot", string(slot))
		}
	}
	return b, nil
}

// previewView renders the running simulation and reloads the bindings
// when the catalog changes on disk.
type previewView struct {
	manager *session.Manager
	cfg     *config.Config
	logger  *slog.Logger

	catalogPath string
	scriptPath  string
	watcher     *catalog.Watcher

	bindings binding.Bindings
	sim      *preview.Simulation
	textures map[*image.RGBA]*ebiten.Image
}

func newPreviewView(manager *session.Manager, cfg *config.Config, catalogPath, scriptPath string, logger *slog.Logger) (*previewView, error) {
	v := &previewView{
		manager:     manager,
		cfg:         cfg,
		logger:      logger,
		catalogPath: catalogPath,
		scriptPath:  scriptPath,
		textures:    make(map[*image.RGBA]*ebiten.Image),
	}
	if err := v.reload(); err != nil {
		return nil, err
	}

	dirs := []string{filepath.Dir(catalogPath)}
	if scriptPath != "" {
		dirs = append(dirs, filepath.Dir(scriptPath))
	}
	w, err := catalog.NewWatcher(dirs...)
	if err != nil {
		logger.Warn("catalog hot reload disabled", "error", err)
	} else {
		v.watcher = w
	}
	return v, nil
}

func (v *previewView) reload() error {
	cat, err := catalog.Load(v.catalogPath)
	if err != nil {
		return err
	}
	b, err := resolveBindings(cat, v.scriptPath, v.logger)
	if err != nil {
		return err
	}
	for _, img := range v.textures {
		img.Deallocate()
	}
	clear(v.textures)
	v.bindings = b
	s := v.manager.OpenPreview(b, previewParams(v.cfg), captureInput)
	v.sim = s.Preview.Simulation()
	return nil
}

func (v *previewView) close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

func (v *previewView) Update() error {
	if v.watcher == nil {
		return nil
	}
	if changed := v.watcher.Poll(); len(changed) > 0 {
		v.logger.Info("catalog changed, rebinding", "files", changed)
		if err := v.reload(); err != nil {
			v.logger.Error("catalog reload failed", "error", err)
		}
	}
	select {
	case err := <-v.watcher.Errors:
		v.logger.Warn("catalog watcher error", "error", err)
	default:
	}
	return nil
}

func (v *previewView) texture(img *image.RGBA) *ebiten.Image {
	if t, ok := v.textures[img]; ok {
		return t
	}
	t := ebiten.NewImageFromImage(img)
	v.textures[img] = t
	return t
}

// frameImage returns the sub-image of frame index in a bound strip.
func (v *previewView) frameImage(res binding.Resolved, index int) *ebiten.Image {
	b := res.Image.Bounds()
	fw := raster.FrameWidth(b.Dx(), res.FrameCount())
	if fw < 1 {
		return nil
	}
	r := raster.FrameRect(index, fw, b.Dy())
	return v.texture(res.Image).SubImage(r).(*ebiten.Image)
}

func drawInto(screen, img *ebiten.Image, x, y, w, h float64, mirror bool) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	sx, sy := w/float64(b.Dx()), h/float64(b.Dy())
	if mirror {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(x+w, y)
	} else {
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x, y)
	}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

var stateSlots = map[preview.State]binding.Slot{
	preview.StateIdle: binding.SlotIdle,
	preview.StateRun:  binding.SlotRun,
	preview.StateJump: binding.SlotJump,
}

func (v *previewView) Draw(screen *ebiten.Image) {
	sw, sh := float64(v.cfg.Window.Width), float64(v.cfg.Window.Height)
	view := v.sim.View()

	if bg, ok := v.bindings.Get(binding.SlotBackground); ok {
		if img := v.frameImage(bg, 0); img != nil {
			drawInto(screen, img, 0, 0, sw, sh, false)
		}
	}

	vector.FillRect(screen, 0, float32(view.FloorY), float32(sw), float32(sh-view.FloorY), colornames.Darkolivegreen, false)

	pl := view.Platform
	if tile, ok := v.bindings.Get(binding.SlotTile); ok {
		if img := v.frameImage(tile, 0); img != nil {
			drawInto(screen, img, pl.L, pl.B, pl.R-pl.L, pl.T-pl.B, false)
		}
	} else {
		vector.FillRect(screen, float32(pl.L), float32(pl.B), float32(pl.R-pl.L), float32(pl.T-pl.B), colornames.Sienna, false)
	}

	if enemy, ok := v.bindings.Get(binding.SlotEnemy); ok {
		if img := v.frameImage(enemy, 0); img != nil {
			const size = 32
			drawInto(screen, img, sw-size*3, view.FloorY-size, size, size, true)
		}
	}

	if res, ok := v.bindings.Get(stateSlots[view.State]); ok {
		if img := v.frameImage(res, view.Frame); img != nil {
			drawInto(screen, img, view.X, view.Y, view.W, view.H, view.FacingLeft)
		}
	} else {
		vector.FillRect(screen, float32(view.X), float32(view.Y), float32(view.W), float32(view.H), colornames.Cornflowerblue, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  frame %d  grounded %v", view.State, view.Frame, view.Grounded), 8, 0)
}
