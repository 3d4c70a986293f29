package sprite

import "github.com/vovakirdan/santa-racer/internal/core"

// Collides reports whether sprite a drawn at posA with frameA and sprite b
// drawn at posB with frameB share at least one pixel that is opaque in both.
//
// Positions are floored to whole pixels. Disjoint bounding boxes return false
// without touching either mask.
func Collides(a *Sprite, posA core.Vec2, frameA float64, b *Sprite, posB core.Vec2, frameB float64) bool {
	if a == nil || b == nil {
		return false
	}

	boxA, boxB := a.Bounds(posA), b.Bounds(posB)
	if !boxA.Intersects(boxB) {
		return false
	}
	clip := boxA.Intersection(boxB)

	srcA, srcB := a.FrameRect(frameA), b.FrameRect(frameB)
	for y := clip.Y; y < clip.Bottom(); y++ {
		rowA := (srcA.Min.Y + y - boxA.Y) * a.width
		rowB := (srcB.Min.Y + y - boxB.Y) * b.width
		for x := clip.X; x < clip.Right(); x++ {
			if a.mask[rowA+srcA.Min.X+x-boxA.X] && b.mask[rowB+srcB.Min.X+x-boxB.X] {
				return true
			}
		}
	}
	return false
}
