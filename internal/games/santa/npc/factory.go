package npc

import (
	"fmt"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// Extra sprites used by archetypes besides their own image.
const (
	SnowballImage = "snowball"
	StarImage     = "star"
)

// ImageSource loads sprites by name.
type ImageSource interface {
	Image(name string) (*sprite.Sprite, error)
}

// Factory maps tile markers to archetypes. Every sprite is loaded up front
// so a missing asset fails at construction.
type Factory struct {
	cfg      config.NPCConfig
	markers  map[float64]Kind
	fallback Kind
	sprites  map[Kind]*sprite.Sprite
	snowball *sprite.Sprite
	star     *sprite.Sprite
}

// NewFactory resolves the marker table and preloads all archetype images.
func NewFactory(images ImageSource, cfg config.NPCConfig) (*Factory, error) {
	f := &Factory{
		cfg:     cfg,
		markers: make(map[float64]Kind, len(cfg.Markers)),
		sprites: make(map[Kind]*sprite.Sprite, len(kindImages)),
	}

	fallback, err := ParseKind(cfg.Fallback)
	if err != nil {
		return nil, fmt.Errorf("npc: fallback: %w", err)
	}
	f.fallback = fallback

	for _, m := range cfg.Markers {
		k, err := ParseKind(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("npc: marker %v: %w", m.Marker, err)
		}
		if prev, dup := f.markers[m.Marker]; dup {
			return nil, fmt.Errorf("npc: marker %v bound to both %s and %s", m.Marker, prev, k)
		}
		f.markers[m.Marker] = k
	}

	for k := range kindImages {
		spr, err := images.Image(kindImages[k])
		if err != nil {
			return nil, fmt.Errorf("npc: %s: %w", Kind(k), err)
		}
		f.sprites[Kind(k)] = spr
	}
	if f.snowball, err = images.Image(SnowballImage); err != nil {
		return nil, fmt.Errorf("npc: goblin snowball: %w", err)
	}
	if f.star, err = images.Image(StarImage); err != nil {
		return nil, fmt.Errorf("npc: snowman star: %w", err)
	}
	return f, nil
}

// Lookup returns the archetype bound to marker and whether the binding
// exists. Matching is exact.
func (f *Factory) Lookup(marker float64) (Kind, bool) {
	k, ok := f.markers[marker]
	if !ok {
		return f.fallback, false
	}
	return k, true
}

// Create instantiates the archetype for a marker at tile (x, y). The bool
// is false when the marker was unknown and the fallback archetype was used.
func (f *Factory) Create(x, y int, marker float64, lvl *level.Level, now time.Time) (NPC, bool) {
	k, ok := f.Lookup(marker)
	return f.New(k, x, y, lvl, now), ok
}

// New instantiates a specific archetype at tile (x, y).
func (f *Factory) New(k Kind, x, y int, lvl *level.Level, now time.Time) NPC {
	spr := f.sprites[k]
	cfg := f.cfg
	switch {
	case k.Balloon():
		return newBalloon(k, spr, lvl, x, y, cfg.BalloonFrameSpeed, cfg.Balloon, now)
	case k == Cloud:
		return newCloud(spr, lvl, x, y, cfg.Damage, now)
	case k == Finish:
		return newFinish(spr, lvl, x, y, now)
	case k == Goblin:
		return newGoblin(spr, f.snowball, lvl, x, y, cfg.GoblinFrameSpeed, cfg.Damage, cfg.Goblin, now)
	case k == Snowman:
		return newSnowman(spr, f.star, lvl, x, y, cfg.SnowmanFrameSpeed, cfg.Damage, cfg.Snowman, now)
	default:
		return newAngel(f.sprites[Angel], lvl, x, y, cfg.AngelFrameSpeed, cfg.Damage, now)
	}
}
