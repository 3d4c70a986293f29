package sleigh

import "time"

// Effect is a timed status flag on the sleigh.
type Effect int

const (
	EffectBonus Effect = iota
	EffectShield
	EffectDrunk
	EffectInvincible
	EffectImmobile
	EffectElectrocuted
	effectCount
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectBonus:
		return "bonus"
	case EffectShield:
		return "shield"
	case EffectDrunk:
		return "drunk"
	case EffectInvincible:
		return "invincible"
	case EffectImmobile:
		return "immobile"
	case EffectElectrocuted:
		return "electrocuted"
	default:
		return "unknown"
	}
}

// Effects holds one flag and expiry per effect. Flags are independent;
// exclusivity rules live in the code that starts them.
type Effects struct {
	active [effectCount]bool
	expiry [effectCount]time.Time
}

// Start activates e until the given instant, replacing any previous expiry.
func (fx *Effects) Start(e Effect, until time.Time) {
	fx.active[e] = true
	fx.expiry[e] = until
}

// Active reports whether e is set.
func (fx *Effects) Active(e Effect) bool { return fx.active[e] }

// Remaining returns the time left on e at now, or zero.
func (fx *Effects) Remaining(e Effect, now time.Time) time.Duration {
	if !fx.active[e] || !now.Before(fx.expiry[e]) {
		return 0
	}
	return fx.expiry[e].Sub(now)
}

// Expire clears every effect whose expiry is at or before now and returns
// the ones it cleared.
func (fx *Effects) Expire(now time.Time) []Effect {
	var expired []Effect
	for e := Effect(0); e < effectCount; e++ {
		if fx.active[e] && !now.Before(fx.expiry[e]) {
			fx.active[e] = false
			expired = append(expired, e)
		}
	}
	return expired
}

// Clear deactivates everything.
func (fx *Effects) Clear() {
	*fx = Effects{}
}
