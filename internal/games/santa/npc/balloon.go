package npc

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// balloonNPC waits until the viewport's trailing edge reaches its column,
// then rises with a ping-pong animation. It is collected on contact.
type balloonNPC struct {
	base
	cfg        config.BalloonConfig
	increasing bool
	collected  bool
}

func newBalloon(kind Kind, spr *sprite.Sprite, lvl *level.Level, x, y int, frameSpeed float64, cfg config.BalloonConfig, now time.Time) *balloonNPC {
	return &balloonNPC{
		base:       newBase(kind, spr, lvl, x, y, frameSpeed, now),
		cfg:        cfg,
		increasing: true,
	}
}

func (b *balloonNPC) ZOrder() int { return -1 }

func (b *balloonNPC) Update(env *Env) {
	lvl := env.Level
	if (lvl.Offset()+lvl.Canvas().X)/lvl.TileSize().X >= float64(b.tileX) {
		b.body.Velocity.Y = -b.cfg.LaunchSpeed
	}

	frame := b.body.Frame
	dt := b.body.Update(env.Now)
	sign := 1.0
	if !b.increasing {
		sign = -1
	}
	b.body.Frame, b.increasing = pingPong(frame+sign*dt*b.body.FrameSpeed, float64(b.sprite.TotalFrames()), b.increasing)
}

// pingPong reflects f back into [0, n], flipping the direction on each bounce.
func pingPong(f, n float64, increasing bool) (float64, bool) {
	if n <= 0 {
		return 0, increasing
	}
	for f < 0 || f > n {
		if f < 0 {
			f = -f
		} else {
			f = 2*n - f
		}
		increasing = !increasing
	}
	return f, increasing
}

func (b *balloonNPC) Collide(env *Env) bool {
	if b.collected || !b.touches(env) {
		return false
	}
	b.collected = true
	b.hidden = true
	switch b.kind {
	case CashBalloon:
		env.Score.AddGiftPoints(b.cfg.CashPoints)
	case GiftBalloon:
		env.Player.StartBonus(env.Now)
	case HeartBalloon:
		env.Score.AddDamagePoints(-b.cfg.HeartPoints)
	case ShieldBalloon:
		env.Player.StartShield(env.Now)
	case WineBalloon:
		env.Player.StartDrunk(env.Now)
	}
	b.play(env, SoundBalloon)
	return true
}

// Collected reports whether the player picked the balloon up.
func (b *balloonNPC) Collected() bool { return b.collected }
