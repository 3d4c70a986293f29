package npc

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// goblinNPC throws a snowball every period. The goblin and all of its
// snowballs are hostile.
type goblinNPC struct {
	base
	cfg       config.GoblinConfig
	damage    float64
	snowball  *sprite.Sprite
	period    time.Duration
	nextThrow time.Time
	balls     []physics.Body
}

func newGoblin(spr, snowball *sprite.Sprite, lvl *level.Level, x, y int, frameSpeed, damage float64, cfg config.GoblinConfig, now time.Time) *goblinNPC {
	g := &goblinNPC{
		base:     newBase(Goblin, spr, lvl, x, y, frameSpeed, now),
		cfg:      cfg,
		damage:   damage,
		snowball: snowball,
	}
	if frameSpeed > 0 {
		g.period = time.Duration(float64(snowball.TotalFrames()) / frameSpeed * float64(time.Second))
	}
	g.nextThrow = now.Add(g.period)
	return g
}

func (g *goblinNPC) Update(env *Env) {
	g.body.Update(env.Now)

	if g.period > 0 {
		for !env.Now.Before(g.nextThrow) {
			g.throw(env, g.nextThrow)
			g.nextThrow = g.nextThrow.Add(g.period)
		}
	}

	lvl := env.Level
	valid := g.balls[:0]
	for _, b := range g.balls {
		b.Update(env.Now)
		screen := lvl.ScreenPosition(b.Position)
		if b.Position.Y >= lvl.Canvas().Y || screen.X+g.snowball.Size().X < 0 {
			continue
		}
		valid = append(valid, b)
	}
	clear(g.balls[len(valid):])
	g.balls = valid
}

func (g *goblinNPC) throw(env *Env, at time.Time) {
	pos := g.centre().Sub(g.snowball.Size().Scale(0.5))
	b := physics.NewBody(pos, g.cfg.ProjectileFrameSpeed, at)
	b.Velocity = g.cfg.ProjectileVelocity
	b.Acceleration = g.cfg.ProjectileAcceleration
	g.balls = append(g.balls, b)
	if !env.Menu {
		g.play(env, SoundThrow)
	}
}

func (g *goblinNPC) Collide(env *Env) bool {
	if !g.touching(env) || !hostileHit(env, g.damage) {
		return false
	}
	g.play(env, SoundHit)
	return true
}

func (g *goblinNPC) touching(env *Env) bool {
	if g.touches(env) {
		return true
	}
	for _, b := range g.balls {
		if env.Player.CollidesWith(g.snowball, env.Level.ScreenPosition(b.Position), b.Frame) {
			return true
		}
	}
	return false
}

// Snowballs returns the number of live projectiles.
func (g *goblinNPC) Snowballs() int { return len(g.balls) }

func (g *goblinNPC) Visuals() []sprite.Visual {
	out := g.base.Visuals()
	for _, b := range g.balls {
		out = append(out, sprite.Visual{Sprite: g.snowball, Position: b.Position, Frame: b.Frame})
	}
	return out
}
