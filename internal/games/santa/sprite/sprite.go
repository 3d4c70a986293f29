// Package sprite holds animated frame-grid images with a per-pixel opacity
// mask and the pixel-accurate collision test built on it.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/vovakirdan/santa-racer/internal/core"
)

// ErrFrameGrid is returned when a frame grid does not fit the image.
var ErrFrameGrid = errors.New("sprite: invalid frame grid")

// Sprite is an immutable image split into cols x rows equally sized frames.
// Frames are numbered row-major: frame k sits at column k mod cols and
// row (k / cols) mod rows.
type Sprite struct {
	name   string
	img    image.Image
	width  int // full surface
	height int
	cols   int
	rows   int
	frameW int
	frameH int
	mask   []bool
}

// New builds a sprite from an image. A pixel is opaque when its alpha is non-zero.
func New(name string, img image.Image, cols, rows int) (*Sprite, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: %s: nil image", ErrFrameGrid, name)
	}
	b := img.Bounds()
	mask := make([]bool, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			mask[y*b.Dx()+x] = a > 0
		}
	}
	s, err := NewFromMask(name, b.Dx(), b.Dy(), cols, rows, mask)
	if err != nil {
		return nil, err
	}
	s.img = img
	return s, nil
}

// NewFromMask builds an image-less sprite from a row-major opacity mask of
// the full w x h surface.
func NewFromMask(name string, w, h, cols, rows int, mask []bool) (*Sprite, error) {
	switch {
	case cols <= 0 || rows <= 0:
		return nil, fmt.Errorf("%w: %s: %dx%d frames", ErrFrameGrid, name, cols, rows)
	case cols > w || rows > h:
		return nil, fmt.Errorf("%w: %s: %dx%d frames on a %dx%d image", ErrFrameGrid, name, cols, rows, w, h)
	case len(mask) != w*h:
		return nil, fmt.Errorf("%w: %s: mask has %d pixels, expected %d", ErrFrameGrid, name, len(mask), w*h)
	}
	return &Sprite{
		name:   name,
		width:  w,
		height: h,
		cols:   cols,
		rows:   rows,
		frameW: w / cols,
		frameH: h / rows,
		mask:   mask,
	}, nil
}

// Name returns the asset name the sprite was loaded under.
func (s *Sprite) Name() string { return s.name }

// Image returns the source image, or nil for mask-only sprites.
func (s *Sprite) Image() image.Image { return s.img }

// FrameWidth returns the width of a single frame.
func (s *Sprite) FrameWidth() int { return s.frameW }

// FrameHeight returns the height of a single frame.
func (s *Sprite) FrameHeight() int { return s.frameH }

// Size returns the single-frame size.
func (s *Sprite) Size() core.Vec2 {
	return core.V(float64(s.frameW), float64(s.frameH))
}

// TotalFrames returns cols * rows.
func (s *Sprite) TotalFrames() int { return s.cols * s.rows }

// FrameIndex truncates a continuous frame value and reduces it into
// [0, TotalFrames). Negative frames wrap from the end.
func (s *Sprite) FrameIndex(frame float64) int {
	n := s.TotalFrames()
	k := int(math.Floor(frame)) % n
	if k < 0 {
		k += n
	}
	return k
}

// FrameRect returns the source rectangle of a frame on the full surface.
func (s *Sprite) FrameRect(frame float64) image.Rectangle {
	k := s.FrameIndex(frame)
	x := (k % s.cols) * s.frameW
	y := (k / s.cols % s.rows) * s.frameH
	return image.Rect(x, y, x+s.frameW, y+s.frameH)
}

// Opaque reports whether the surface pixel (x, y) is opaque. Out-of-range
// coordinates are transparent.
func (s *Sprite) Opaque(x, y int) bool {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return false
	}
	return s.mask[y*s.width+x]
}

// OpaqueInFrame reports whether pixel (x, y) of the given frame is opaque,
// with (0, 0) at the frame's top-left corner.
func (s *Sprite) OpaqueInFrame(frame float64, x, y int) bool {
	if x < 0 || y < 0 || x >= s.frameW || y >= s.frameH {
		return false
	}
	r := s.FrameRect(frame)
	return s.mask[(r.Min.Y+y)*s.width+r.Min.X+x]
}

// Bounds returns the frame-sized box of the sprite drawn at pos.
func (s *Sprite) Bounds(pos core.Vec2) core.Rect {
	x, y := pos.Floor()
	return core.NewRect(x, y, s.frameW, s.frameH)
}
