package physics

import (
	"math"
	"time"
)

// Ramp is a velocity that moves linearly from From at Start to To at End
// and holds To afterwards.
type Ramp struct {
	From  float64
	To    float64
	Start time.Time
	End   time.Time
}

// At returns the ramp value at t.
func (r Ramp) At(t time.Time) float64 {
	switch {
	case !t.After(r.Start):
		return r.From
	case !t.Before(r.End):
		return r.To
	}
	frac := t.Sub(r.Start).Seconds() / r.End.Sub(r.Start).Seconds()
	return r.From + (r.To-r.From)*frac
}

// Retarget starts a new ramp at now from the current value towards target,
// changing by at most maxAccel per second.
func (r *Ramp) Retarget(now time.Time, target, maxAccel float64) {
	from := r.At(now)
	r.From = from
	r.To = target
	r.Start = now
	r.End = now
	if maxAccel > 0 {
		r.End = now.Add(time.Duration(math.Abs(target-from) / maxAccel * float64(time.Second)))
	}
}

// Hold pins the ramp to the constant v.
func (r *Ramp) Hold(now time.Time, v float64) {
	r.From, r.To = v, v
	r.Start, r.End = now, now
}
