package catalog

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/spritekit/raster"
)

const manifest = `
assets:
  - id: hero-idle
    category: character
    name: Hero Idle
    file: hero_idle.png
    frames: 4
  - category: tile
    name: grass
    file: tiles/grass.png
  - id: broken
    category: enemy
    name: bat
    file: bat.png
    frames: 2
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 9, A: 255})
	b, err := raster.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func loadFixture(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	writePNG(t, filepath.Join(dir, "hero_idle.png"), 32, 8)
	writePNG(t, filepath.Join(dir, "tiles", "grass.png"), 8, 8)
	if err := os.WriteFile(filepath.Join(dir, "bat.png"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("write bat: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := loadFixture(t)
	if len(c.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(c.Entries))
	}
	grass, err := c.Entry("tiles/grass.png")
	if err != nil {
		t.Fatalf("expected id to default to file: %v", err)
	}
	if grass.Frames != 1 {
		t.Fatalf("expected default frame count 1, got %d", grass.Frames)
	}
	if _, err := c.Entry("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadImagesAndCandidates(t *testing.T) {
	c := loadFixture(t)
	if failed := c.LoadImages(nil); failed != 1 {
		t.Fatalf("expected one decode failure, got %d", failed)
	}
	if img := c.Image("hero-idle"); img == nil || img.Bounds().Dx() != 32 {
		t.Fatalf("hero bitmap not decoded")
	}
	cands := c.Candidates()
	if len(cands) != 3 || cands[0].Frames != 4 || cands[2].Image != nil {
		t.Fatalf("unexpected candidates %+v", cands)
	}

	_, err := c.DecodeEntry(c.Entries[2])
	if !errors.Is(err, raster.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestSetImage(t *testing.T) {
	c := loadFixture(t)
	img := image.NewRGBA(image.Rect(0, 0, 24, 8))
	c.SetImage("hero-idle", img, 3)
	e, _ := c.Entry("hero-idle")
	if e.Frames != 3 || c.Image("hero-idle") != img {
		t.Fatalf("SetImage did not update the record")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("assets: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWatcherReportsBitmapChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	writePNG(t, filepath.Join(dir, "hero.png"), 2, 2)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Ext(name) == ".txt" {
				t.Fatalf("non-catalog file reported: %s", name)
			}
			if filepath.Base(name) == "hero.png" {
				return
			}
		case <-deadline:
			t.Fatalf("no event for hero.png")
		}
	}
}

func TestWatcherReportsScriptChangesInEveryDir(t *testing.T) {
	catalogDir := t.TempDir()
	scriptDir := t.TempDir()
	w, err := NewWatcher(catalogDir, scriptDir, catalogDir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(scriptDir, "match.tengo"), []byte("match := func(s, n, f, c) { return false }"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Base(name) == "match.tengo" {
				return
			}
		case <-deadline:
			t.Fatalf("no event for match.tengo")
		}
	}
}
