package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

var (
	colA = color.RGBA{R: 255, A: 255}
	colB = color.RGBA{G: 255, A: 255}
	colC = color.RGBA{B: 255, A: 255}
)

func checkerboard(n int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, colA)
			} else {
				img.SetRGBA(x, y, colB)
			}
		}
	}
	return img
}

func TestFloodFillCheckerboardIsFourConnected(t *testing.T) {
	img := checkerboard(3)
	if n := FloodFill(img, 0, 0, colC); n != 1 {
		t.Fatalf("expected 1 pixel filled, got %d", n)
	}
	if img.RGBAAt(0, 0) != colC {
		t.Fatalf("start pixel not recolored")
	}
	for _, p := range []image.Point{{2, 0}, {1, 1}, {0, 2}, {2, 2}} {
		if img.RGBAAt(p.X, p.Y) != colA {
			t.Fatalf("diagonal pixel %v must remain unchanged", p)
		}
	}
}

func TestFloodFillRegionBoundedByColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		img.SetRGBA(2, y, colB)
	}
	n := FloodFill(img, 0, 0, colA)
	if n != 10 {
		t.Fatalf("expected 10 pixels filled left of the wall, got %d", n)
	}
	if img.RGBAAt(4, 4) != Transparent {
		t.Fatalf("fill leaked across the wall")
	}
}

func TestFloodFillNoOpAndOutOfBounds(t *testing.T) {
	img := checkerboard(3)
	before := bytes.Clone(img.Pix)
	if n := FloodFill(img, 0, 0, colA); n != 0 {
		t.Fatalf("expected no-op when source equals target, got %d", n)
	}
	if n := FloodFill(img, -1, 5, colC); n != 0 {
		t.Fatalf("expected no-op out of bounds, got %d", n)
	}
	if !bytes.Equal(before, img.Pix) {
		t.Fatalf("buffer changed on no-op fill")
	}
}

func TestFloodFillIdempotent(t *testing.T) {
	once := checkerboard(4)
	FloodFill(once, 1, 0, colC)
	twice := Clone(once)
	FloodFill(twice, 1, 0, colC)
	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Fatalf("second fill changed the buffer")
	}
}

func TestFloodFillLargeRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 512, 512))
	if n := FloodFill(img, 100, 100, colA); n != 512*512 {
		t.Fatalf("expected whole buffer filled, got %d", n)
	}
}
