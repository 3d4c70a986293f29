package npc

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// angelNPC loops its animation and hurts on contact.
type angelNPC struct {
	base
	damage float64
}

func newAngel(spr *sprite.Sprite, lvl *level.Level, x, y int, frameSpeed, damage float64, now time.Time) *angelNPC {
	return &angelNPC{base: newBase(Angel, spr, lvl, x, y, frameSpeed, now), damage: damage}
}

func (a *angelNPC) Collide(env *Env) bool {
	if !a.touches(env) || !hostileHit(env, a.damage) {
		return false
	}
	a.play(env, SoundHit)
	return true
}

// cloudNPC is a static thundercloud drawn above the terrain.
type cloudNPC struct {
	base
	damage float64
}

func newCloud(spr *sprite.Sprite, lvl *level.Level, x, y int, damage float64, now time.Time) *cloudNPC {
	return &cloudNPC{base: newBase(Cloud, spr, lvl, x, y, 0, now), damage: damage}
}

func (c *cloudNPC) ZOrder() int { return 1 }

func (c *cloudNPC) Collide(env *Env) bool {
	if !c.touches(env) || !hostileHit(env, c.damage) {
		return false
	}
	env.Player.StartElectrocuted(env.Now)
	c.play(env, SoundElectrocuted)
	return true
}

// finishNPC ends the run once the player's leading edge passes its centre.
// In the menu it rewinds the demo instead.
type finishNPC struct {
	base
}

func newFinish(spr *sprite.Sprite, lvl *level.Level, x, y int, now time.Time) *finishNPC {
	return &finishNPC{base: newBase(Finish, spr, lvl, x, y, 0, now)}
}

func (f *finishNPC) Collide(env *Env) bool {
	lead := env.Level.Offset() + env.Player.Position().X + env.Player.Size().X
	if lead < f.centre().X {
		return false
	}
	if env.Menu {
		env.Level.SetOffset(0)
		return true
	}
	if env.Score.Won() {
		return false
	}
	env.Score.SetWon()
	f.play(env, SoundFinish)
	return true
}
