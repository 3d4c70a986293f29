// Package physics provides the shared integration rule for every moving
// entity and the linear velocity ramp used by the sleigh controller.
package physics

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/core"
)

// Body is the state shared by all moving entities. Frame is continuous and
// may exceed a sprite's frame count; consumers reduce it when sampling.
type Body struct {
	Position     core.Vec2
	Velocity     core.Vec2
	Acceleration core.Vec2
	Frame        float64
	FrameSpeed   float64
	LastUpdate   time.Time
}

// NewBody returns a resting body at pos whose clock starts at now.
func NewBody(pos core.Vec2, frameSpeed float64, now time.Time) Body {
	return Body{Position: pos, FrameSpeed: frameSpeed, LastUpdate: now}
}

// Advance integrates dt seconds: velocity first, then position, then frame.
func (b *Body) Advance(dt float64) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Frame += b.FrameSpeed * dt
}

// Elapsed returns the seconds since the last update and moves the body's
// clock to now. A clock that went backwards yields zero.
func (b *Body) Elapsed(now time.Time) float64 {
	dt := Seconds(b.LastUpdate, now)
	b.LastUpdate = now
	return dt
}

// Update advances the body by the wall-clock time since its last update
// and returns the dt it used.
func (b *Body) Update(now time.Time) float64 {
	dt := b.Elapsed(now)
	b.Advance(dt)
	return dt
}

// Seconds returns to - from in seconds, floored at zero.
func Seconds(from, to time.Time) float64 {
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Seconds()
}
