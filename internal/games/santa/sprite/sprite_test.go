package sprite

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/vovakirdan/santa-racer/internal/core"
)

func solid(t *testing.T, name string, w, h, cols, rows int) *Sprite {
	t.Helper()
	mask := make([]bool, w*h)
	for i := range mask {
		mask[i] = true
	}
	s, err := NewFromMask(name, w, h, cols, rows, mask)
	if err != nil {
		t.Fatalf("NewFromMask() error = %v", err)
	}
	return s
}

// dotFrames builds a 1-row sprite whose frame k has a single opaque pixel at (k, 0).
func dotFrames(t *testing.T, frames, size int) *Sprite {
	t.Helper()
	w := frames * size
	mask := make([]bool, w*size)
	for k := 0; k < frames; k++ {
		mask[k*size+k] = true
	}
	s, err := NewFromMask("dots", w, size, frames, 1, mask)
	if err != nil {
		t.Fatalf("NewFromMask() error = %v", err)
	}
	return s
}

func TestNewFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 2))
	img.Set(5, 1, color.NRGBA{R: 255, A: 255})

	s, err := New("img", img, 4, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.FrameWidth() != 2 || s.FrameHeight() != 2 {
		t.Errorf("frame size = %dx%d, expected 2x2", s.FrameWidth(), s.FrameHeight())
	}
	if !s.Opaque(5, 1) || s.Opaque(4, 1) {
		t.Error("mask should follow the alpha channel")
	}
	if !s.OpaqueInFrame(2, 1, 1) {
		t.Error("OpaqueInFrame(2, 1, 1) = false, expected true")
	}
	if s.Image() != img {
		t.Error("Image() should return the source image")
	}
}

func TestNewFrameGridErrors(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		maskLen    int
	}{
		{"zero cols", 4, 4, 0, 1, 16},
		{"more cols than pixels", 2, 4, 3, 1, 8},
		{"mask size mismatch", 4, 4, 1, 1, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFromMask(tc.name, tc.w, tc.h, tc.cols, tc.rows, make([]bool, tc.maskLen))
			if !errors.Is(err, ErrFrameGrid) {
				t.Errorf("NewFromMask() error = %v, expected ErrFrameGrid", err)
			}
		})
	}
	if _, err := New("nil", nil, 1, 1); !errors.Is(err, ErrFrameGrid) {
		t.Errorf("New(nil) error = %v, expected ErrFrameGrid", err)
	}
}

func TestFrameIndexAndRect(t *testing.T) {
	s := solid(t, "grid", 12, 6, 3, 2)

	tests := []struct {
		frame    float64
		expected int
		rect     image.Rectangle
	}{
		{0, 0, image.Rect(0, 0, 4, 3)},
		{2.9, 2, image.Rect(8, 0, 12, 3)},
		{4, 4, image.Rect(4, 3, 8, 6)},
		{6, 0, image.Rect(0, 0, 4, 3)},
		{13.5, 1, image.Rect(4, 0, 8, 3)},
		{-1, 5, image.Rect(8, 3, 12, 6)},
	}
	for _, tc := range tests {
		if got := s.FrameIndex(tc.frame); got != tc.expected {
			t.Errorf("FrameIndex(%v) = %d, expected %d", tc.frame, got, tc.expected)
		}
		if got := s.FrameRect(tc.frame); got != tc.rect {
			t.Errorf("FrameRect(%v) = %v, expected %v", tc.frame, got, tc.rect)
		}
	}
	if s.TotalFrames() != 6 {
		t.Errorf("TotalFrames() = %d, expected 6", s.TotalFrames())
	}
}

func TestBounds(t *testing.T) {
	s := solid(t, "grid", 12, 6, 3, 2)
	tests := []struct {
		pos      core.Vec2
		expected core.Rect
	}{
		{core.V(0, 0), core.NewRect(0, 0, 4, 3)},
		{core.V(2.7, 5.2), core.NewRect(2, 5, 4, 3)},
		{core.V(-0.5, -3.1), core.NewRect(-1, -4, 4, 3)},
	}
	for _, tc := range tests {
		if got := s.Bounds(tc.pos); got != tc.expected {
			t.Errorf("Bounds(%v) = %+v, expected %+v", tc.pos, got, tc.expected)
		}
	}
}

func TestCollidesSymmetric(t *testing.T) {
	a := dotFrames(t, 4, 4)
	b := solid(t, "block", 3, 3, 1, 1)

	positions := []core.Vec2{
		core.V(0, 0), core.V(1, 0), core.V(2.7, -0.5), core.V(-2, 0), core.V(3, 3), core.V(10, 10), core.V(-2.5, -2.5),
	}
	for frame := 0.0; frame < 8; frame++ {
		for _, pa := range positions {
			for _, pb := range positions {
				ab := Collides(a, pa, frame, b, pb, 0)
				ba := Collides(b, pb, 0, a, pa, frame)
				if ab != ba {
					t.Errorf("Collides(a@%v f%v, b@%v) = %v, reversed = %v", pa, frame, pb, ab, ba)
				}
			}
		}
	}
}

func TestCollidesBoundingBoxShortCircuit(t *testing.T) {
	a := solid(t, "a", 10, 10, 1, 1)
	b := solid(t, "b", 10, 10, 1, 1)

	tests := []struct {
		name     string
		posB     core.Vec2
		expected bool
	}{
		{"far right", core.V(100, 0), false},
		{"far below", core.V(0, 100), false},
		{"touching edge", core.V(10, 0), false},
		{"touching corner", core.V(10, 10), false},
		{"one pixel overlap", core.V(9, 9), true},
		{"fully inside", core.V(2, 2), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(a, core.V(0, 0), 0, b, tc.posB, 0); got != tc.expected {
				t.Errorf("Collides() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCollidesFrameWraparound(t *testing.T) {
	a := dotFrames(t, 4, 4)
	pixel := solid(t, "pixel", 1, 1, 1, 1)

	for k := 0; k < 4; k++ {
		pos := core.V(float64(k), 0)
		for _, frame := range []float64{float64(k), float64(4 + k), float64(12 + k), float64(k) + 0.6} {
			if !Collides(a, core.V(0, 0), frame, pixel, pos, 0) {
				t.Errorf("Collides(frame %v) at dot %d = false, expected true", frame, k)
			}
		}
		other := core.V(float64((k+1)%4), 0)
		if Collides(a, core.V(0, 0), float64(4+k), pixel, other, 0) {
			t.Errorf("Collides(frame %d) at dot %v = true, expected false", 4+k, other)
		}
	}
}

func TestCollidesTransparentOverlap(t *testing.T) {
	a := dotFrames(t, 1, 4) // opaque only at (0, 0)
	b := solid(t, "b", 2, 2, 1, 1)

	if Collides(a, core.V(0, 0), 0, b, core.V(2, 2), 0) {
		t.Error("overlap of transparent pixels should not collide")
	}
	if !Collides(a, core.V(0, 0), 0, b, core.V(-1, -1), 0) {
		t.Error("overlap at the opaque pixel should collide")
	}
	if Collides(nil, core.V(0, 0), 0, b, core.V(0, 0), 0) {
		t.Error("nil sprite should never collide")
	}
}
