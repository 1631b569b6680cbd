package raster

import (
	"image"
	"image/color"
)

// MaxPaletteColors caps the number of colors reported by ExtractPalette.
const MaxPaletteColors = 20

// ExtractPalette returns the distinct RGB colors of every non-transparent
// pixel in row-major discovery order, truncated to limit entries (limit <= 0
// means MaxPaletteColors). Returned colors are fully opaque.
func ExtractPalette(img *image.RGBA, limit int) []color.RGBA {
	if img == nil {
		return nil
	}
	if limit <= 0 {
		limit = MaxPaletteColors
	}
	seen := make(map[uint32]struct{})
	palette := make([]color.RGBA, 0, limit)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			palette = append(palette, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
			if len(palette) == limit {
				return palette
			}
		}
	}
	return palette
}
