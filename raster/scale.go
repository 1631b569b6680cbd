package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultFill is the share of the viewport a contained bitmap occupies.
const DefaultFill = 0.8

// Placement is where a bitmap lands inside a viewport.
type Placement struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Contain computes an aspect-preserving scale so a srcW x srcH bitmap
// fits fill (0..1] of a viewW x viewH viewport, centered.
func Contain(srcW, srcH, viewW, viewH int, fill float64) Placement {
	if srcW <= 0 || srcH <= 0 || viewW <= 0 || viewH <= 0 {
		return Placement{}
	}
	if fill <= 0 || fill > 1 {
		fill = DefaultFill
	}
	sx := float64(viewW) * fill / float64(srcW)
	sy := float64(viewH) * fill / float64(srcH)
	s := min(sx, sy)
	return Placement{
		Scale:   s,
		OffsetX: (float64(viewW) - float64(srcW)*s) / 2,
		OffsetY: (float64(viewH) - float64(srcH)*s) / 2,
	}
}

// Upscale returns src enlarged by an integer factor using nearest-neighbor
// sampling so pixel edges stay hard.
func Upscale(src image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
