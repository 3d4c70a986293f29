// Package sleigh implements the player controller: the menu flight path,
// the countdown, ramped steering, timed status effects and the response
// to terrain hits.
package sleigh

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/gift"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/physics"
	"github.com/vovakirdan/santa-racer/internal/games/santa/score"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
)

// ErrMissingSprite is returned when a required sleigh image is nil.
var ErrMissingSprite = errors.New("sleigh: missing sprite")

// Terrain hit sounds; one is picked at random per hit.
var terrainSounds = [...]string{"sleighCollidedWithLevel1", "sleighCollidedWithLevel2"}

var electrocutedOffset = core.V(-3, -2)

var shieldOffset = core.V(-12, -17)

// Mode is the controller state.
type Mode int

const (
	MenuFloat Mode = iota
	CountingDown
	Running
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case MenuFloat:
		return "menu"
	case CountingDown:
		return "countdown"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Intent is the requested direction per axis, each -1, 0 or +1.
type Intent struct {
	X, Y int
}

// Sprites are the images the sleigh draws and collides with. Sleigh and
// Reindeer are required.
type Sprites struct {
	Sleigh               *sprite.Sprite
	Reindeer             *sprite.Sprite
	ElectrocutedSleigh   *sprite.Sprite
	ElectrocutedReindeer *sprite.Sprite
	Shield               *sprite.Sprite
	Star                 *sprite.Sprite
	SmallStar            *sprite.Sprite
	DrunkStar            *sprite.Sprite
	SmallDrunkStar       *sprite.Sprite
	BigStar              *sprite.Sprite
	Gifts                []*sprite.Sprite
}

// Sleigh is the player. Its position is in canvas space.
type Sleigh struct {
	cfg     config.SleighConfig
	canvas  core.Vec2
	sprites Sprites
	rng     *rand.Rand

	mode    Mode
	body    physics.Body
	rampX   physics.Ramp
	rampY   physics.Ramp
	effects Effects

	start       time.Time // countdown end
	menuStart   time.Time
	phase       core.Vec2
	shieldFrame float64
	lastDrop    time.Time
	countdown   int

	trail *trail
}

// New validates the sprites and returns a sleigh in menu mode.
func New(sprites Sprites, canvas core.Vec2, cfg config.SleighConfig, rng *rand.Rand) (*Sleigh, error) {
	if sprites.Sleigh == nil {
		return nil, fmt.Errorf("%w: sleigh", ErrMissingSprite)
	}
	if sprites.Reindeer == nil {
		return nil, fmt.Errorf("%w: reindeer", ErrMissingSprite)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Sleigh{
		cfg:     cfg,
		canvas:  canvas,
		sprites: sprites,
		rng:     rng,
		body:    physics.NewBody(cfg.StartPosition, cfg.FrameSpeed, time.Time{}),
	}
	s.trail = newTrail(cfg.Stars, sprites, rng)
	return s, nil
}

// StartMenu switches to the attract-mode flight path with a fresh random phase.
func (s *Sleigh) StartMenu(now time.Time) {
	s.mode = MenuFloat
	s.menuStart = now
	s.phase = core.V(s.rng.Float64()*2*math.Pi, s.rng.Float64()*2*math.Pi)
	s.effects.Clear()
	s.rampX.Hold(now, 0)
	s.rampY.Hold(now, 0)
	s.body.Velocity = core.Vec2{}
	s.body.LastUpdate = now
	s.body.Position = s.menuPosition(now)
	s.trail.hide()
}

// StartGame places the sleigh at its start position and counts down until start.
func (s *Sleigh) StartGame(start, now time.Time) {
	s.mode = CountingDown
	if !now.Before(start) {
		s.mode = Running
	}
	s.start = start
	s.effects.Clear()
	s.rampX.Hold(now, 0)
	s.rampY.Hold(now, 0)
	s.body.Position = s.cfg.StartPosition
	s.body.Velocity = core.Vec2{}
	s.body.LastUpdate = now
	s.lastDrop = time.Time{}
	s.updateCountdown(now)
	s.trail.scatter(now, s.body.Position, s.Size(), false)
}

// Steer requests a new target velocity. It is ignored unless running and
// mobile. Drunk inverts both axes.
func (s *Sleigh) Steer(intent Intent, now time.Time) {
	if s.mode != Running || s.effects.Active(EffectImmobile) {
		return
	}
	dx, dy := core.Sign(float64(intent.X)), core.Sign(float64(intent.Y))
	if s.effects.Active(EffectDrunk) {
		dx, dy = -dx, -dy
	}
	s.retarget(&s.rampX, now, dx*s.cfg.MaxVelocity.X, s.cfg.MaxAcceleration.X)
	s.retarget(&s.rampY, now, dy*s.cfg.MaxVelocity.Y, s.cfg.MaxAcceleration.Y)
}

func (s *Sleigh) retarget(r *physics.Ramp, now time.Time, target, accel float64) {
	if r.To == target {
		return
	}
	r.Retarget(now, target, accel)
}

// Update expires effects, then moves and animates the sleigh.
func (s *Sleigh) Update(now time.Time) {
	s.effects.Expire(now)
	if s.mode == CountingDown && !now.Before(s.start) {
		s.mode = Running
	}

	dt := s.body.Elapsed(now)
	s.body.FrameSpeed = s.cfg.FrameSpeed
	if s.effects.Active(EffectImmobile) {
		s.body.FrameSpeed = 0
	}

	switch s.mode {
	case MenuFloat:
		s.body.Velocity = core.Vec2{}
		s.body.Advance(dt)
		s.body.Position = s.menuPosition(now)
	case CountingDown:
		s.body.Velocity = core.Vec2{}
		s.body.Advance(dt)
	case Running:
		s.body.Velocity = core.V(s.rampX.At(now), s.rampY.At(now))
		s.stopAtBounds(now)
		s.body.Advance(dt)
		s.clamp()
	}

	if s.Shielded() {
		s.shieldFrame += dt * s.cfg.ShieldFrameSpeed
	}
	s.updateCountdown(now)
	if s.mode != MenuFloat {
		s.trail.update(now, s.body.Position, s.Size(), s.effects.Active(EffectDrunk))
	}
}

func (s *Sleigh) menuPosition(now time.Time) core.Vec2 {
	t := physics.Seconds(s.menuStart, now)
	m := s.cfg.Menu
	axis := func(period, phase, lo, hi float64) float64 {
		if period <= 0 {
			return lo
		}
		return (math.Sin(t/period*2*math.Pi+phase)+1)*(hi-lo)/2 + lo
	}
	return core.V(axis(m.Period.X, s.phase.X, m.Min.X, m.Max.X), axis(m.Period.Y, s.phase.Y, m.Min.Y, m.Max.Y))
}

func (s *Sleigh) bounds() core.Vec2 {
	size := s.Size()
	return core.V(math.Max(0, s.canvas.X-size.X), math.Max(0, s.canvas.Y-size.Y))
}

// stopAtBounds zeroes velocity on an axis that presses further into a bound.
func (s *Sleigh) stopAtBounds(now time.Time) {
	hi := s.bounds()
	p, v := s.body.Position, s.body.Velocity
	if (p.X <= 0 && v.X < 0) || (p.X >= hi.X && v.X > 0) {
		s.body.Velocity.X = 0
		s.rampX.Hold(now, 0)
	}
	if (p.Y <= 0 && v.Y < 0) || (p.Y >= hi.Y && v.Y > 0) {
		s.body.Velocity.Y = 0
		s.rampY.Hold(now, 0)
	}
}

func (s *Sleigh) clamp() {
	hi := s.bounds()
	s.body.Position.X = core.ClampF(s.body.Position.X, 0, hi.X)
	s.body.Position.Y = core.ClampF(s.body.Position.Y, 0, hi.Y)
}

func (s *Sleigh) updateCountdown(now time.Time) {
	s.countdown = 0
	if s.mode == CountingDown {
		s.countdown = int(math.Ceil(physics.Seconds(now, s.start)))
	}
}

// CollideTerrain tests the visible terrain and applies the hit response on
// the first overlap: sound, invincible and immobile, upward velocity,
// damage and a scrolling pause. It returns whether a hit was applied.
func (s *Sleigh) CollideTerrain(now time.Time, lvl *level.Level, sc *score.Score, sink audio.Sink) bool {
	if s.mode != Running || s.effects.Active(EffectInvincible) || s.effects.Active(EffectImmobile) {
		return false
	}
	tiles := lvl.TileSprite()
	for t := range lvl.VisibleTerrain() {
		pos := lvl.ScreenPosition(lvl.TilePosition(t.X, t.Y))
		if !s.CollidesWith(tiles, pos, t.Frame) {
			continue
		}
		if sink != nil {
			name := terrainSounds[s.rng.Intn(len(terrainSounds))]
			sink.Play(name, 1, audio.Pan(s.body.Position.X, s.canvas.X))
		}
		s.StartInvincibleAndImmobile(now)
		sc.AddDamagePoints(s.cfg.TerrainDamage)
		lvl.PauseScrolling(now.Add(s.cfg.ImmobileDuration))
		return true
	}
	return false
}

// CollidesWith tests spr at a canvas position against the sleigh and both reindeer.
func (s *Sleigh) CollidesWith(spr *sprite.Sprite, pos core.Vec2, frame float64) bool {
	if sprite.Collides(s.sprites.Sleigh, s.body.Position, s.body.Frame, spr, pos, frame) {
		return true
	}
	rf := s.ReindeerFrame()
	front, back := s.reindeerPositions()
	return sprite.Collides(s.sprites.Reindeer, front, rf, spr, pos, frame) ||
		sprite.Collides(s.sprites.Reindeer, back, s.body.Frame, spr, pos, frame)
}

func (s *Sleigh) reindeerPositions() (core.Vec2, core.Vec2) {
	w := float64(s.sprites.Sleigh.FrameWidth())
	back := s.body.Position.Add(core.V(w, 0))
	return back.Add(s.cfg.ReindeerOffset), back
}

// DropGift releases a gift below the sleigh unless one was dropped within
// the gift wait. The spawn is in world space.
func (s *Sleigh) DropGift(now time.Time, lvl *level.Level, cfg config.GiftConfig, hard bool) (gift.Spawn, bool) {
	if s.mode != Running || len(s.sprites.Gifts) == 0 {
		return gift.Spawn{}, false
	}
	if !s.lastDrop.IsZero() && now.Sub(s.lastDrop) < s.cfg.GiftWait {
		return gift.Spawn{}, false
	}
	s.lastDrop = now

	spr := s.sprites.Gifts[s.rng.Intn(len(s.sprites.Gifts))]
	vel := core.V(lvl.ScrollSpeed(), cfg.FallSpeed)
	if hard {
		vel = vel.Add(s.body.Velocity)
	}
	return gift.Spawn{
		Position: core.V(s.body.Position.X+lvl.Offset(), s.body.Position.Y+float64(s.sprites.Sleigh.FrameHeight())),
		Velocity: vel,
		Bonus:    s.effects.Active(EffectBonus),
		Sprite:   spr,
		Star:     s.sprites.BigStar,
		Frame:    float64(s.rng.Intn(spr.TotalFrames())),
	}, true
}

// StartBonus doubles gift points for the bonus duration.
func (s *Sleigh) StartBonus(now time.Time) {
	s.effects.Start(EffectBonus, now.Add(s.cfg.BonusDuration))
}

// StartShield protects against hostile NPCs.
func (s *Sleigh) StartShield(now time.Time) {
	s.effects.Start(EffectShield, now.Add(s.cfg.ShieldDuration))
	s.shieldFrame = 0
}

// StartDrunk inverts steering.
func (s *Sleigh) StartDrunk(now time.Time) {
	s.effects.Start(EffectDrunk, now.Add(s.cfg.DrunkDuration))
}

// StartInvincible ignores hits for the invincible duration.
func (s *Sleigh) StartInvincible(now time.Time) {
	s.effects.Start(EffectInvincible, now.Add(s.cfg.InvincibleDuration))
}

// StartElectrocuted swaps in the electrocuted images.
func (s *Sleigh) StartElectrocuted(now time.Time) {
	s.effects.Start(EffectElectrocuted, now.Add(s.cfg.ElectrocutedDuration))
}

// StartInvincibleAndImmobile freezes controls and sends the sleigh straight
// up. Invincibility outlasts immobility by the invincible duration.
func (s *Sleigh) StartInvincibleAndImmobile(now time.Time) {
	s.effects.Start(EffectImmobile, now.Add(s.cfg.ImmobileDuration))
	s.effects.Start(EffectInvincible, now.Add(s.cfg.ImmobileDuration+s.cfg.InvincibleDuration))
	s.rampX.Hold(now, 0)
	s.rampY.Hold(now, -s.cfg.MaxVelocity.Y)
	s.body.Velocity = core.V(0, -s.cfg.MaxVelocity.Y)
}

// Mode returns the controller state.
func (s *Sleigh) Mode() Mode { return s.mode }

// Position returns the top-left corner in canvas space.
func (s *Sleigh) Position() core.Vec2 { return s.body.Position }

// Velocity returns the current velocity.
func (s *Sleigh) Velocity() core.Vec2 { return s.body.Velocity }

// Size spans the sleigh and the front reindeer.
func (s *Sleigh) Size() core.Vec2 {
	w := float64(s.sprites.Sleigh.FrameWidth()) + s.cfg.ReindeerOffset.X + float64(s.sprites.Reindeer.FrameWidth())
	return core.V(w, float64(s.sprites.Sleigh.FrameHeight()))
}

// Frame returns the sleigh animation frame.
func (s *Sleigh) Frame() float64 { return s.body.Frame }

// ReindeerFrame runs half a cycle ahead of the sleigh.
func (s *Sleigh) ReindeerFrame() float64 {
	return s.body.Frame + float64(s.sprites.Reindeer.TotalFrames())/2
}

// Countdown returns the whole seconds left before running, or 0.
func (s *Sleigh) Countdown() int { return s.countdown }

// Active reports whether an effect is set.
func (s *Sleigh) Active(e Effect) bool { return s.effects.Active(e) }

// Remaining returns the time left on an effect.
func (s *Sleigh) Remaining(e Effect, now time.Time) time.Duration {
	return s.effects.Remaining(e, now)
}

func (s *Sleigh) Invincible() bool   { return s.effects.Active(EffectInvincible) }
func (s *Sleigh) Shielded() bool     { return s.effects.Active(EffectShield) }
func (s *Sleigh) Drunk() bool        { return s.effects.Active(EffectDrunk) }
func (s *Sleigh) Immobile() bool     { return s.effects.Active(EffectImmobile) }
func (s *Sleigh) Electrocuted() bool { return s.effects.Active(EffectElectrocuted) }
func (s *Sleigh) Bonus() bool        { return s.effects.Active(EffectBonus) }

// Hidden reports whether the blink hides the sleigh at now.
func (s *Sleigh) Hidden(now time.Time) bool {
	if !s.effects.Active(EffectInvincible) {
		return false
	}
	return Blink(s.effects.Remaining(EffectInvincible, now), s.cfg.BlinkPeriod)
}

// Blink is the hidden half of each blink period of the remaining time.
func Blink(remaining, period time.Duration) bool {
	if period <= 0 || remaining <= 0 {
		return false
	}
	_, frac := math.Modf(remaining.Seconds() / period.Seconds())
	return frac >= 0.5
}

// Visuals returns stars, sleigh, reindeer and shield in draw order. All
// positions are in canvas space.
func (s *Sleigh) Visuals(now time.Time) []sprite.Visual {
	out := s.trail.visuals(nil)
	if !s.Hidden(now) {
		sl, rd := s.sprites.Sleigh, s.sprites.Reindeer
		front, back := s.reindeerPositions()
		pos := s.body.Position
		if s.Electrocuted() && s.sprites.ElectrocutedSleigh != nil && s.sprites.ElectrocutedReindeer != nil {
			pos = s.centred(pos, sl, s.sprites.ElectrocutedSleigh)
			front = s.centred(front, rd, s.sprites.ElectrocutedReindeer)
			back = s.centred(back, rd, s.sprites.ElectrocutedReindeer)
			sl, rd = s.sprites.ElectrocutedSleigh, s.sprites.ElectrocutedReindeer
		}
		out = append(out,
			sprite.Visual{Sprite: rd, Position: back, Frame: s.body.Frame, Screen: true},
			sprite.Visual{Sprite: sl, Position: pos, Frame: s.body.Frame, Screen: true},
			sprite.Visual{Sprite: rd, Position: front, Frame: s.ReindeerFrame(), Screen: true},
		)
	}
	if s.Shielded() && s.sprites.Shield != nil {
		out = append(out, sprite.Visual{Sprite: s.sprites.Shield, Position: s.body.Position.Add(shieldOffset), Frame: s.shieldFrame, Screen: true})
	}
	return out
}

func (s *Sleigh) centred(pos core.Vec2, normal, shocked *sprite.Sprite) core.Vec2 {
	diff := shocked.Size().Sub(normal.Size()).Scale(0.5)
	return pos.Add(electrocutedOffset).Sub(diff)
}
