// Package gift implements dropped gifts: falling under gravity, scoring on
// chimneys, showing points and removal.
package gift

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/score"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
)

// Mode is the gift lifecycle state.
type Mode int

const (
	Falling Mode = iota
	ShowingPoints
	CanBeDeleted
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Falling:
		return "falling"
	case ShowingPoints:
		return "showing_points"
	case CanBeDeleted:
		return "can_be_deleted"
	default:
		return "unknown"
	}
}

// Sound names emitted by gifts.
const (
	SoundChimney = "giftCollidedWithChimney"
	SoundGround  = "giftCollidedWithGround"
)

// Star placements relative to the scoring point, indexed like the frame offsets.
var starOffsets = [3]core.Vec2{{X: 10, Y: 10}, {X: 25, Y: 15}, {X: 15, Y: 25}}

var bonusOffset = core.V(10, 10)

// Env is what a gift reads and mutates during one tick.
type Env struct {
	Now      time.Time
	Level    *level.Level
	Score    *score.Score
	Audio    audio.Sink
	Chimneys []Chimney
}

// Spawn describes a gift at the moment it leaves the sleigh.
type Spawn struct {
	Position core.Vec2 // world space
	Velocity core.Vec2
	Bonus    bool
	Sprite   *sprite.Sprite
	Star     *sprite.Sprite
	Frame    float64
}

// Gift is one dropped payload.
type Gift struct {
	body   physics.Body
	cfg    config.GiftConfig
	mode   Mode
	points float64
	bonus  bool
	sprite *sprite.Sprite
	star   *sprite.Sprite
}

// New creates a falling gift.
func New(cfg config.GiftConfig, spawn Spawn, now time.Time) *Gift {
	b := physics.NewBody(spawn.Position, cfg.FrameSpeed, now)
	b.Velocity = spawn.Velocity
	b.Acceleration = cfg.Acceleration
	b.Frame = spawn.Frame
	return &Gift{
		body:   b,
		cfg:    cfg,
		bonus:  spawn.Bonus,
		sprite: spawn.Sprite,
		star:   spawn.Star,
	}
}

// Update runs one tick of the lifecycle. CanBeDeleted is terminal.
func (g *Gift) Update(env *Env) {
	switch g.mode {
	case Falling:
		g.body.Update(env.Now)
		if row, ok := g.hitChimney(env); ok {
			g.points = g.tierPoints(row)
			g.mode = ShowingPoints
			g.body.Frame = 0
			g.body.FrameSpeed = g.cfg.ShowingFrameSpeed
			g.play(env, SoundChimney)
			if g.bonus {
				env.Score.AddGiftPoints(g.cfg.BonusMultiplier * g.points)
			} else {
				env.Score.AddGiftPoints(g.points)
			}
		} else if g.body.Position.Y >= env.Level.Canvas().Y {
			g.mode = CanBeDeleted
			g.play(env, SoundGround)
			env.Score.AddDamagePoints(g.cfg.GroundDamage)
		}
	case ShowingPoints:
		dt := g.body.Elapsed(env.Now)
		g.body.Frame += dt * g.body.FrameSpeed
		if g.body.Frame >= g.cfg.StarFrameOffset+float64(g.starFrames()) {
			g.mode = CanBeDeleted
		}
	}
}

func (g *Gift) hitChimney(env *Env) (int, bool) {
	if len(env.Chimneys) == 0 {
		return 0, false
	}
	center := g.body.Position.Add(g.size().Scale(0.5))
	for tile := range env.Level.VisibleTerrain() {
		origin := env.Level.TilePosition(tile.X, tile.Y)
		for _, c := range env.Chimneys {
			if c.Frame == tile.Frame && c.contains(origin, center) {
				return tile.Y, true
			}
		}
	}
	return 0, false
}

func (g *Gift) tierPoints(row int) float64 {
	switch {
	case row <= 1:
		return g.cfg.Points.Low
	case row == 2:
		return g.cfg.Points.Mid
	default:
		return g.cfg.Points.High
	}
}

func (g *Gift) play(env *Env, name string) {
	if env.Audio == nil {
		return
	}
	screen := env.Level.ScreenPosition(g.body.Position)
	env.Audio.Play(name, 1, audio.Pan(screen.X, env.Level.Canvas().X))
}

func (g *Gift) size() core.Vec2 {
	if g.sprite == nil {
		return core.Vec2{}
	}
	return g.sprite.Size()
}

func (g *Gift) starFrames() int {
	if g.star == nil {
		return 0
	}
	return g.star.TotalFrames()
}

// Mode returns the lifecycle state.
func (g *Gift) Mode() Mode { return g.mode }

// Points returns the tier points of a scored gift, before any bonus.
func (g *Gift) Points() float64 { return g.points }

// Bonus reports whether the gift was dropped under the bonus effect.
func (g *Gift) Bonus() bool { return g.bonus }

// Position returns the world-space position.
func (g *Gift) Position() core.Vec2 { return g.body.Position }

// Velocity returns the current velocity.
func (g *Gift) Velocity() core.Vec2 { return g.body.Velocity }

// Frame returns the continuous animation frame.
func (g *Gift) Frame() float64 { return g.body.Frame }

// Visuals returns the falling gift, or the scoring star burst.
func (g *Gift) Visuals() []sprite.Visual {
	switch g.mode {
	case Falling:
		if g.sprite == nil {
			return nil
		}
		return []sprite.Visual{{Sprite: g.sprite, Position: g.body.Position, Frame: g.body.Frame}}
	case ShowingPoints:
		if g.star == nil {
			return nil
		}
		base := g.body.Position.Sub(g.star.Size().Scale(0.5))
		out := g.stars(base, nil)
		if g.bonus {
			out = g.stars(base.Add(bonusOffset), out)
		}
		return out
	default:
		return nil
	}
}

func (g *Gift) stars(base core.Vec2, out []sprite.Visual) []sprite.Visual {
	n := float64(g.star.TotalFrames())
	frameOffsets := [3]float64{0, g.cfg.StarFrameOffset / 2, g.cfg.StarFrameOffset}
	for i, off := range frameOffsets {
		f := g.body.Frame - off
		if f >= 0 && f < n {
			out = append(out, sprite.Visual{Sprite: g.star, Position: base.Add(starOffsets[i]), Frame: f})
		}
	}
	return out
}
