package npc

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// snowmanNPC stands still until the player will reach its column in the
// time it needs to rise to the player's height, then launches upwards.
type snowmanNPC struct {
	base
	cfg      config.SnowmanConfig
	damage   float64
	launched bool
	star     *sprite.Sprite
	stars    []physics.Body
}

func newSnowman(spr, star *sprite.Sprite, lvl *level.Level, x, y int, frameSpeed, damage float64, cfg config.SnowmanConfig, now time.Time) *snowmanNPC {
	s := &snowmanNPC{
		base:   newBase(Snowman, spr, lvl, x, y, frameSpeed, now),
		cfg:    cfg,
		damage: damage,
		star:   star,
	}
	for range cfg.StarOffsets {
		s.stars = append(s.stars, physics.NewBody(core.Vec2{}, cfg.StarFrameSpeed, now))
	}
	return s
}

func (s *snowmanNPC) Update(env *Env) {
	if !s.launched && s.shouldLaunch(env) {
		s.launched = true
		s.body.Velocity = core.V(0, -s.cfg.LaunchSpeed)
		s.body.FrameSpeed = s.cfg.LaunchedFrameSpeed
		for i := range s.stars {
			s.stars[i].LastUpdate = env.Now
		}
		s.play(env, SoundLaunch)
	}
	s.body.Update(env.Now)
	for i := range s.stars {
		if s.launched {
			s.stars[i].Update(env.Now)
		}
		s.stars[i].Position = s.body.Position.Add(s.cfg.StarOffsets[i])
	}
}

// shouldLaunch compares the time the player needs to close the horizontal
// gap with the time the snowman needs to rise to the player's centre.
func (s *snowmanNPC) shouldLaunch(env *Env) bool {
	if s.cfg.LaunchSpeed <= 0 {
		return false
	}
	p := env.Player
	playerCentre := p.Position().Add(p.Size().Scale(0.5))
	centre := env.Level.ScreenPosition(s.centre())

	gap := centre.X - playerCentre.X
	rise := centre.Y - playerCentre.Y
	closing := env.Level.ScrollSpeed() + p.Velocity().X
	if gap < 0 || rise <= 0 || closing <= 0 {
		return false
	}
	return gap/closing <= rise/s.cfg.LaunchSpeed
}

func (s *snowmanNPC) Collide(env *Env) bool {
	if !s.touches(env) || !hostileHit(env, s.damage) {
		return false
	}
	s.play(env, SoundHit)
	return true
}

// Launched reports whether the snowman has taken off.
func (s *snowmanNPC) Launched() bool { return s.launched }

func (s *snowmanNPC) Visuals() []sprite.Visual {
	out := s.base.Visuals()
	if !s.launched || s.star == nil {
		return out
	}
	for _, st := range s.stars {
		out = append(out, sprite.Visual{Sprite: s.star, Position: st.Position, Frame: st.Frame})
	}
	return out
}
