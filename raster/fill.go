package raster

import (
	"image"
	"image/color"
)

// FloodFill recolors the 4-connected region of pixels that exactly match
// the color at x,y. It uses an explicit stack so region size is bounded
// only by memory. It returns the number of pixels recolored; zero means
// the start was out of bounds or already the target color.
func FloodFill(buf *image.RGBA, x, y int, target color.RGBA) int {
	if !InBounds(buf, x, y) {
		return 0
	}
	source := buf.RGBAAt(x, y)
	if source == target {
		return 0
	}

	filled := 0
	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !InBounds(buf, p.X, p.Y) || buf.RGBAAt(p.X, p.Y) != source {
			continue
		}
		buf.SetRGBA(p.X, p.Y, target)
		filled++
		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return filled
}
