package npc

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

type tileKey struct{ x, y int }

// Manager owns the live NPCs: at most one per visible marker tile, kept in
// draw order.
type Manager struct {
	factory   *Factory
	logger    *log.Logger
	npcs      []NPC
	unmatched []float64
}

// NewManager creates an empty manager. A nil logger discards output.
func NewManager(f *Factory, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{factory: f, logger: logger}
}

// Update runs every NPC's behaviour, then its collision, in draw order.
// In the menu only the finish line collides.
func (m *Manager) Update(env *Env) {
	for _, n := range m.npcs {
		n.Update(env)
		if env.Menu && n.Kind() != Finish {
			continue
		}
		n.Collide(env)
	}
}

// Sync drops NPCs whose tile scrolled out of view and spawns one for each
// newly visible marker tile.
func (m *Manager) Sync(lvl *level.Level, now time.Time) {
	live := make(map[tileKey]bool, len(m.npcs))
	valid := m.npcs[:0]
	for _, n := range m.npcs {
		x, y := n.Tile()
		if !lvl.IsVisible(x, y) {
			continue
		}
		live[tileKey{x, y}] = true
		valid = append(valid, n)
	}
	clear(m.npcs[len(valid):])
	m.npcs = valid

	spawned := false
	for t := range lvl.VisibleMarkers() {
		key := tileKey{t.X, t.Y}
		if live[key] {
			continue
		}
		n, ok := m.factory.Create(t.X, t.Y, t.Frame, lvl, now)
		if !ok {
			m.flag(t)
		}
		live[key] = true
		m.npcs = append(m.npcs, n)
		spawned = true
	}
	if spawned {
		slices.SortStableFunc(m.npcs, func(a, b NPC) int {
			return a.ZOrder() - b.ZOrder()
		})
	}
}

func (m *Manager) flag(t level.Tile) {
	if slices.Contains(m.unmatched, t.Frame) {
		return
	}
	m.unmatched = append(m.unmatched, t.Frame)
	m.logger.Warn("unknown npc marker, using fallback",
		"marker", t.Frame, "tile_x", t.X, "tile_y", t.Y, "fallback", m.factory.fallback)
}

// Reset removes every NPC.
func (m *Manager) Reset() {
	clear(m.npcs)
	m.npcs = m.npcs[:0]
}

// NPCs returns the live NPCs in draw order. The slice is shared.
func (m *Manager) NPCs() []NPC { return m.npcs }

// Len returns the number of live NPCs.
func (m *Manager) Len() int { return len(m.npcs) }

// Unmatched returns the distinct unknown markers seen so far.
func (m *Manager) Unmatched() []float64 { return slices.Clone(m.unmatched) }

// Visuals returns every NPC's sprites in draw order, in world space.
func (m *Manager) Visuals() []sprite.Visual {
	var out []sprite.Visual
	for _, n := range m.npcs {
		out = append(out, n.Visuals()...)
	}
	return out
}
