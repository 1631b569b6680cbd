// Package raster holds the pixel-buffer utilities shared by the strip
// editor, the pixel editor and the runtime preview: strip slicing and
// stitching, flood fill, palette extraction and nearest-neighbor scaling.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

var (
	// ErrDecode is returned when a source bitmap cannot be decoded.
	ErrDecode = errors.New("raster: decode failed")
	// ErrInvalidFrameCount is returned when a strip is sliced into fewer than one frame.
	ErrInvalidFrameCount = errors.New("raster: frame count must be at least 1")
	// ErrNoFrames is returned when stitching an empty sequence.
	ErrNoFrames = errors.New("raster: no frames to stitch")
)

// Transparent is the color written by the eraser.
var Transparent = color.RGBA{}

// Decode reads a bitmap and returns it as an RGBA buffer anchored at 0,0.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return ToRGBA(img), nil
}

// DecodeBytes is Decode over an in-memory encoding.
func DecodeBytes(b []byte) (*image.RGBA, error) {
	return Decode(bytes.NewReader(b))
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToRGBA copies any image into a new RGBA buffer whose bounds start at 0,0.
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst
}

// Clone returns an independent copy of buf.
func Clone(buf *image.RGBA) *image.RGBA {
	if buf == nil {
		return nil
	}
	out := &image.RGBA{
		Pix:    make([]uint8, len(buf.Pix)),
		Stride: buf.Stride,
		Rect:   buf.Rect,
	}
	copy(out.Pix, buf.Pix)
	return out
}

// InBounds reports whether x,y addresses a pixel of buf.
func InBounds(buf *image.RGBA, x, y int) bool {
	return buf != nil && image.Pt(x, y).In(buf.Rect)
}
