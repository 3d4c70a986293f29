// Package npc implements the level's non-player characters: the archetype
// behaviours, the marker-to-archetype factory and the per-tile lifecycle.
package npc

import (
	"fmt"
	"time"

	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/score"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
)

// Kind identifies an archetype.
type Kind int

const (
	Angel Kind = iota
	CashBalloon
	GiftBalloon
	HeartBalloon
	ShieldBalloon
	WineBalloon
	Cloud
	Finish
	Goblin
	Snowman
)

var kindNames = [...]string{
	Angel:         "angel",
	CashBalloon:   "cash_balloon",
	GiftBalloon:   "gift_balloon",
	HeartBalloon:  "heart_balloon",
	ShieldBalloon: "shield_balloon",
	WineBalloon:   "wine_balloon",
	Cloud:         "cloud",
	Finish:        "finish",
	Goblin:        "goblin",
	Snowman:       "snowman",
}

// Image names per archetype.
var kindImages = [...]string{
	Angel:         "angel",
	CashBalloon:   "cashBalloon",
	GiftBalloon:   "giftBalloon",
	HeartBalloon:  "heartBalloon",
	ShieldBalloon: "shieldBalloon",
	WineBalloon:   "wineBalloon",
	Cloud:         "cloud",
	Finish:        "finish",
	Goblin:        "goblin",
	Snowman:       "snowman",
}

// Sound names emitted by NPCs.
const (
	SoundHit          = "sleighCollidedWithNpc"
	SoundBalloon      = "balloonCollected"
	SoundElectrocuted = "cloudElectrocuted"
	SoundThrow        = "goblinThrow"
	SoundLaunch       = "snowmanLaunch"
	SoundFinish       = "finish"
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Image returns the sprite name used by the kind.
func (k Kind) Image() string {
	if k < 0 || int(k) >= len(kindImages) {
		return ""
	}
	return kindImages[k]
}

// Balloon reports whether the kind is one of the five balloons.
func (k Kind) Balloon() bool {
	return k >= CashBalloon && k <= WineBalloon
}

// ParseKind resolves a configuration name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("npc: unknown kind %q", name)
}

// Player is the part of the sleigh NPCs read and affect. Positions are in
// canvas space.
type Player interface {
	Position() core.Vec2
	Size() core.Vec2
	Velocity() core.Vec2
	Invincible() bool
	Shielded() bool
	CollidesWith(spr *sprite.Sprite, pos core.Vec2, frame float64) bool

	StartInvincible(now time.Time)
	StartElectrocuted(now time.Time)
	StartBonus(now time.Time)
	StartShield(now time.Time)
	StartDrunk(now time.Time)
}

// Env is the per-tick context handed to every NPC.
type Env struct {
	Now    time.Time
	Level  *level.Level
	Player Player
	Score  *score.Score
	Audio  audio.Sink
	Menu   bool
}

// NPC is one live character bound to a level tile.
type NPC interface {
	Kind() Kind
	Tile() (int, int)
	ZOrder() int
	Update(env *Env)
	// Collide tests the player and applies the contact effect. It reports
	// whether an effect was applied.
	Collide(env *Env) bool
	Visuals() []sprite.Visual
}

// base is the state shared by all archetypes. Position is in world space.
type base struct {
	kind   Kind
	tileX  int
	tileY  int
	body   physics.Body
	sprite *sprite.Sprite
	hidden bool
}

// newBase centres the sprite on its tile.
func newBase(kind Kind, spr *sprite.Sprite, lvl *level.Level, x, y int, frameSpeed float64, now time.Time) base {
	centre := lvl.TilePosition(x, y).Add(lvl.TileSize().Scale(0.5))
	pos := centre.Sub(spr.Size().Scale(0.5))
	return base{
		kind:   kind,
		tileX:  x,
		tileY:  y,
		body:   physics.NewBody(pos, frameSpeed, now),
		sprite: spr,
	}
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) Tile() (int, int) { return b.tileX, b.tileY }

func (b *base) ZOrder() int { return 0 }

func (b *base) Update(env *Env) { b.body.Update(env.Now) }

// Position returns the world-space top-left corner.
func (b *base) Position() core.Vec2 { return b.body.Position }

// Frame returns the continuous animation frame.
func (b *base) Frame() float64 { return b.body.Frame }

func (b *base) Visuals() []sprite.Visual {
	if b.hidden {
		return nil
	}
	return []sprite.Visual{{Sprite: b.sprite, Position: b.body.Position, Frame: b.body.Frame}}
}

func (b *base) centre() core.Vec2 {
	return b.body.Position.Add(b.sprite.Size().Scale(0.5))
}

func (b *base) touches(env *Env) bool {
	if b.hidden {
		return false
	}
	return env.Player.CollidesWith(b.sprite, env.Level.ScreenPosition(b.body.Position), b.body.Frame)
}

func (b *base) play(env *Env, name string) {
	if env.Audio == nil {
		return
	}
	screen := env.Level.ScreenPosition(b.centre())
	env.Audio.Play(name, 1, audio.Pan(screen.X, env.Level.Canvas().X))
}

// hostileHit applies damage and invincibility unless the player is
// protected. It reports whether the hit landed.
func hostileHit(env *Env, damage float64) bool {
	if env.Player.Invincible() || env.Player.Shielded() {
		return false
	}
	env.Score.AddDamagePoints(damage)
	env.Player.StartInvincible(env.Now)
	return true
}
