package sprite

import "github.com/vovakirdan/santa-racer/internal/core"

// Visual is one sprite placement produced by an entity for the renderer.
// Position is in world space unless Screen is set.
type Visual struct {
	Sprite   *Sprite
	Position core.Vec2
	Frame    float64
	Screen   bool
}
