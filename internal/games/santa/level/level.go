// Package level implements the scrolling tile level: terrain and NPC
// marker grids, the visible-tile window and position-driven scroll speed.
package level

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// Tile is one visible grid cell with a non-negative value.
type Tile struct {
	X, Y  int
	Frame float64
}

// Level owns the terrain grid, the NPC marker grid and the scroll offset.
type Level struct {
	tiles      *sprite.Sprite
	background Grid
	foreground Grid
	canvas     core.Vec2
	tileSize   core.Vec2
	cfg        config.LevelConfig

	menu        bool
	offset      float64
	speed       float64
	start       time.Time
	pausedUntil time.Time
	lastUpdate  time.Time
}

// New validates both grids and builds a level in menu mode.
func New(tiles *sprite.Sprite, background, foreground Grid, canvas core.Vec2, cfg config.LevelConfig) (*Level, error) {
	if tiles == nil {
		return nil, fmt.Errorf("level: nil tile sprite")
	}
	if err := background.validate(); err != nil {
		return nil, fmt.Errorf("level: background: %w", err)
	}
	if err := foreground.validate(); err != nil {
		return nil, fmt.Errorf("level: foreground: %w", err)
	}
	if background.Rows() != foreground.Rows() || background.Cols() != foreground.Cols() {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrGridMismatch,
			background.Cols(), background.Rows(), foreground.Cols(), foreground.Rows())
	}
	size := tiles.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("level: zero tile size %v", size)
	}
	return &Level{
		tiles:      tiles,
		background: background,
		foreground: foreground,
		canvas:     canvas,
		tileSize:   size,
		cfg:        cfg,
		menu:       true,
		speed:      cfg.MenuScrollSpeed,
	}, nil
}

// StartGame resets the offset. Scrolling begins at start.
func (l *Level) StartGame(start time.Time) {
	l.menu = false
	l.offset = 0
	l.speed = 0
	l.start = start
	l.pausedUntil = time.Time{}
}

// StartMenu switches to the constant demo scroll from the beginning of the level.
func (l *Level) StartMenu(now time.Time) {
	l.menu = true
	l.offset = 0
	l.speed = l.cfg.MenuScrollSpeed
	l.start = now
	l.pausedUntil = time.Time{}
	l.lastUpdate = now
}

// PauseScrolling stops the level until the given instant.
func (l *Level) PauseScrolling(until time.Time) {
	if until.After(l.pausedUntil) {
		l.pausedUntil = until
	}
}

// Update derives the scroll speed from the player's horizontal position and
// advances the offset by the time since the last update.
func (l *Level) Update(now time.Time, playerX, playerW float64) {
	from := l.lastUpdate
	if from.IsZero() {
		from = now
	}
	if from.Before(l.start) {
		from = l.start
	}
	if from.Before(l.pausedUntil) {
		from = l.pausedUntil
	}
	l.lastUpdate = now

	switch {
	case now.Before(l.start) || now.Before(l.pausedUntil):
		l.speed = 0
	case l.menu:
		l.speed = l.cfg.MenuScrollSpeed
	default:
		span := l.canvas.X - playerW
		frac := 0.0
		if span > 0 {
			frac = core.ClampF(playerX/span, 0, 1)
		}
		l.speed = l.cfg.MinScrollSpeed + frac*(l.cfg.MaxScrollSpeed-l.cfg.MinScrollSpeed)
	}
	l.offset += physics.Seconds(from, now) * l.speed
}

// SetOffset moves the viewport.
func (l *Level) SetOffset(offset float64) {
	l.offset = math.Max(0, offset)
}

// VisibleColumns returns the half-open column window [min, max).
func (l *Level) VisibleColumns() (int, int) {
	minCol := max(int(math.Floor(l.offset/l.tileSize.X)), 0)
	span := int(math.Ceil(l.canvas.X/l.tileSize.X)) + 1
	maxCol := min(minCol+span, l.Cols())
	return minCol, max(maxCol, minCol)
}

// VisibleTiles yields every (x, y) in the visible window, rows outer.
// The sequence can be ranged over any number of times.
func (l *Level) VisibleTiles() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		minCol, maxCol := l.VisibleColumns()
		for y := 0; y < l.Rows(); y++ {
			for x := minCol; x < maxCol; x++ {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// VisibleTerrain yields the visible terrain tiles, skipping empty cells.
func (l *Level) VisibleTerrain() iter.Seq[Tile] {
	return l.visible(l.background)
}

// VisibleMarkers yields the visible NPC markers, skipping empty cells.
func (l *Level) VisibleMarkers() iter.Seq[Tile] {
	return l.visible(l.foreground)
}

func (l *Level) visible(g Grid) iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for x, y := range l.VisibleTiles() {
			v := g[y][x]
			if v < 0 {
				continue
			}
			if !yield(Tile{X: x, Y: y, Frame: v}) {
				return
			}
		}
	}
}

// IsVisible reports whether column x is inside the visible window.
func (l *Level) IsVisible(x, y int) bool {
	minCol, maxCol := l.VisibleColumns()
	return x >= minCol && x < maxCol && y >= 0 && y < l.Rows()
}

// Tile returns the terrain frame at (x, y), or -1.
func (l *Level) Tile(x, y int) float64 { return l.background.At(x, y) }

// Marker returns the NPC marker at (x, y), or -1.
func (l *Level) Marker(x, y int) float64 { return l.foreground.At(x, y) }

// TilePosition returns the world-space top-left corner of tile (x, y).
func (l *Level) TilePosition(x, y int) core.Vec2 {
	return core.V(float64(x)*l.tileSize.X, float64(y)*l.tileSize.Y)
}

// ScreenPosition converts a world-space position into canvas space.
func (l *Level) ScreenPosition(world core.Vec2) core.Vec2 {
	return core.V(world.X-l.offset, world.Y)
}

// TileSize returns the size of a single tile.
func (l *Level) TileSize() core.Vec2 { return l.tileSize }

// TileSprite returns the terrain sprite sheet.
func (l *Level) TileSprite() *sprite.Sprite { return l.tiles }

// Cols returns the grid column count.
func (l *Level) Cols() int { return l.background.Cols() }

// Rows returns the grid row count.
func (l *Level) Rows() int { return l.background.Rows() }

// Width returns the level width in world units.
func (l *Level) Width() float64 { return float64(l.Cols()) * l.tileSize.X }

// Canvas returns the viewport size.
func (l *Level) Canvas() core.Vec2 { return l.canvas }

// Offset returns the horizontal scroll offset.
func (l *Level) Offset() float64 { return l.offset }

// ScrollSpeed returns the speed used by the last update.
func (l *Level) ScrollSpeed() float64 { return l.speed }

// InMenu reports whether the level runs the demo scroll.
func (l *Level) InMenu() bool { return l.menu }

// Paused reports whether scrolling is paused at now.
func (l *Level) Paused(now time.Time) bool { return now.Before(l.pausedUntil) }
