package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// FrameWidth returns the width of one frame of a strip that is stripWidth
// pixels wide and holds frameCount frames. Trailing columns that do not
// fill a whole frame are not part of any frame.
func FrameWidth(stripWidth, frameCount int) int {
	if frameCount < 1 || stripWidth < 0 {
		return 0
	}
	return stripWidth / frameCount
}

// FrameRect is the source rectangle of frame index in a horizontal strip.
func FrameRect(index, frameWidth, height int) image.Rectangle {
	sx := index * frameWidth
	return image.Rect(sx, 0, sx+frameWidth, height)
}

// Slice cuts a horizontal strip into frameCount independent frames.
// The remainder of an unevenly divisible width is truncated, so a strip
// narrower than frameCount yields frameCount zero-width frames.
func Slice(strip image.Image, frameCount int) ([]*image.RGBA, error) {
	if frameCount < 1 {
		return nil, ErrInvalidFrameCount
	}
	b := strip.Bounds()
	fw := FrameWidth(b.Dx(), frameCount)
	h := b.Dy()
	frames := make([]*image.RGBA, frameCount)
	for i := range frameCount {
		src := FrameRect(i, fw, h).Add(b.Min)
		dst := image.NewRGBA(image.Rect(0, 0, fw, h))
		draw.Copy(dst, image.Point{}, strip, src, draw.Src, nil)
		frames[i] = dst
	}
	return frames, nil
}

// Stitch lays frames out left to right with no gaps. The first frame
// defines the cell size; later frames are drawn clipped to that cell.
func Stitch(frames []*image.RGBA) (*image.RGBA, error) {
	if len(frames) == 0 || frames[0] == nil {
		return nil, ErrNoFrames
	}
	fw := frames[0].Bounds().Dx()
	fh := frames[0].Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, fw*len(frames), fh))
	for i, f := range frames {
		if f == nil {
			continue
		}
		cell := FrameRect(i, fw, fh)
		sr := f.Bounds()
		if sr.Dx() > fw {
			sr.Max.X = sr.Min.X + fw
		}
		if sr.Dy() > fh {
			sr.Max.Y = sr.Min.Y + fh
		}
		draw.Copy(out, cell.Min, f, sr, draw.Src, nil)
	}
	return out, nil
}
