package sleigh

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// star is one decorative particle of the trail, in canvas space.
type star struct {
	body     physics.Body
	maxFrame float64
	small    bool
	drunk    bool
	hidden   bool
}

// trail is the cloud of stars behind the sleigh.
type trail struct {
	cfg   config.StarConfig
	rng   *rand.Rand
	big   *sprite.Sprite
	small *sprite.Sprite
	drunk *sprite.Sprite
	smallDrunk *sprite.Sprite
	stars []star
}

func newTrail(cfg config.StarConfig, sprites Sprites, rng *rand.Rand) *trail {
	t := &trail{
		cfg:        cfg,
		rng:        rng,
		big:        sprites.Star,
		small:      sprites.SmallStar,
		drunk:      sprites.DrunkStar,
		smallDrunk: sprites.SmallDrunkStar,
		stars:      make([]star, cfg.Count),
	}
	t.hide()
	return t
}

func (t *trail) frames() float64 {
	if t.big == nil {
		return 1
	}
	return float64(t.big.TotalFrames())
}

func (t *trail) hide() {
	for i := range t.stars {
		t.stars[i].hidden = true
	}
}

// scatter restarts every star at a random point of its lifetime.
func (t *trail) scatter(now time.Time, pos, size core.Vec2, drunk bool) {
	for i := range t.stars {
		t.restart(&t.stars[i], now, pos, size, drunk)
		t.stars[i].body.Frame = t.rng.Float64() * t.cfg.MaxLifetime
	}
}

func (t *trail) restart(s *star, now time.Time, pos, size core.Vec2, drunk bool) {
	off := core.V(t.between(t.cfg.MinOffset.X, t.cfg.MaxOffset.X), t.between(t.cfg.MinOffset.Y, t.cfg.MaxOffset.Y))
	s.body = physics.NewBody(pos.Add(size).Add(off), t.cfg.FrameSpeed, now)
	s.maxFrame = t.between(t.frames(), t.cfg.MaxLifetime)
	s.small = t.rng.Float64() < t.cfg.SmallProbability
	s.drunk = drunk
	s.hidden = false
}

func (t *trail) between(lo, hi float64) float64 {
	if lo >= hi {
		return lo
	}
	return lo + t.rng.Float64()*(hi-lo)
}

func (t *trail) update(now time.Time, pos, size core.Vec2, drunk bool) {
	for i := range t.stars {
		s := &t.stars[i]
		if s.hidden {
			t.restart(s, now, pos, size, drunk)
			s.body.Frame = t.rng.Float64() * t.cfg.MaxLifetime
		}
		s.body.Update(now)
		if s.body.Frame >= s.maxFrame {
			t.restart(s, now, pos, size, drunk)
		}
	}
}

func (t *trail) visuals(out []sprite.Visual) []sprite.Visual {
	n := t.frames()
	for _, s := range t.stars {
		if s.hidden || s.body.Frame >= n {
			continue
		}
		spr := t.big
		switch {
		case s.small && s.drunk:
			spr = t.smallDrunk
		case s.small:
			spr = t.small
		case s.drunk:
			spr = t.drunk
		}
		if spr == nil {
			continue
		}
		out = append(out, sprite.Visual{Sprite: spr, Position: s.body.Position, Frame: s.body.Frame, Screen: true})
	}
	return out
}
