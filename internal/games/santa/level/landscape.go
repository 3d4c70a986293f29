package level

import (
	"math"
	"time"

	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
)

// Landscape is the background strip that scrolls at a fraction of the
// level speed and wraps around its own width.
type Landscape struct {
	Width  float64
	Factor float64

	offset     float64
	lastUpdate time.Time
}

// NewLandscape creates a landscape strip.
func NewLandscape(width, factor float64, now time.Time) *Landscape {
	return &Landscape{Width: width, Factor: factor, lastUpdate: now}
}

// Update scrolls by Factor * scrollSpeed since the last update.
func (l *Landscape) Update(now time.Time, scrollSpeed float64) {
	dt := physics.Seconds(l.lastUpdate, now)
	l.lastUpdate = now
	if l.Width <= 0 {
		return
	}
	l.offset = math.Mod(l.offset+dt*l.Factor*scrollSpeed, l.Width)
	if l.offset < 0 {
		l.offset += l.Width
	}
}

// Reset rewinds the strip.
func (l *Landscape) Reset(now time.Time) {
	l.offset = 0
	l.lastUpdate = now
}

// Offset returns the wrapped horizontal offset in [0, Width).
func (l *Landscape) Offset() float64 { return l.offset }
