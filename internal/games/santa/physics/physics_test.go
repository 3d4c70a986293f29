package physics

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/santa-racer/internal/core"
)

var epoch = time.Date(2020, 12, 24, 18, 0, 0, 0, time.UTC)

func TestBodyAdvanceOrder(t *testing.T) {
	b := Body{
		Position:     core.V(100, 50),
		Velocity:     core.V(0, 50),
		Acceleration: core.V(0, 200),
		FrameSpeed:   15,
	}

	b.Advance(1)
	if b.Velocity != core.V(0, 250) {
		t.Errorf("Velocity = %v, expected (0, 250)", b.Velocity)
	}
	if b.Position != core.V(100, 300) {
		t.Errorf("Position = %v, expected (100, 300)", b.Position)
	}
	if b.Frame != 15 {
		t.Errorf("Frame = %v, expected 15", b.Frame)
	}
}

func TestBodyUpdateUsesOwnClock(t *testing.T) {
	b := NewBody(core.V(0, 0), 2, epoch)
	b.Velocity = core.V(10, 0)

	if dt := b.Update(epoch.Add(500 * time.Millisecond)); dt != 0.5 {
		t.Errorf("Update() dt = %v, expected 0.5", dt)
	}
	if b.Position.X != 5 || b.Frame != 1 {
		t.Errorf("Position.X = %v, Frame = %v, expected 5 and 1", b.Position.X, b.Frame)
	}

	// backwards clock must not integrate
	if dt := b.Update(epoch); dt != 0 {
		t.Errorf("Update(past) dt = %v, expected 0", dt)
	}
	if b.Position.X != 5 {
		t.Errorf("Position.X = %v after backwards update, expected 5", b.Position.X)
	}
}

func TestRampConvergence(t *testing.T) {
	tests := []struct {
		name     string
		from     float64
		target   float64
		maxAccel float64
	}{
		{"accelerate right", 0, 200, 1000},
		{"reverse", 200, -200, 1000},
		{"brake to zero", -150, 0, 1000},
		{"slow accel", 0, 200, 25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r Ramp
			r.Hold(epoch, tc.from)
			r.Retarget(epoch, tc.target, tc.maxAccel)

			reach := epoch.Add(time.Duration((tc.target - tc.from) / tc.maxAccel * float64(time.Second)))
			if tc.target < tc.from {
				reach = epoch.Add(time.Duration((tc.from - tc.target) / tc.maxAccel * float64(time.Second)))
			}
			if got := r.At(reach); got != tc.target {
				t.Errorf("At(t0 + dv/a) = %v, expected %v", got, tc.target)
			}
			if got := r.At(reach.Add(time.Hour)); got != tc.target {
				t.Errorf("At(later) = %v, expected %v", got, tc.target)
			}

			prev := r.At(epoch)
			if prev != tc.from {
				t.Errorf("At(t0) = %v, expected %v", prev, tc.from)
			}
			steps := 50
			span := reach.Sub(epoch)
			for i := 1; i <= steps; i++ {
				v := r.At(epoch.Add(span * time.Duration(i) / time.Duration(steps)))
				if tc.target > tc.from && v < prev || tc.target < tc.from && v > prev {
					t.Fatalf("ramp not monotonic at step %d: %v after %v", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestRampRetargetMidway(t *testing.T) {
	var r Ramp
	r.Retarget(epoch, 200, 1000) // reaches 200 after 0.2s

	mid := epoch.Add(100 * time.Millisecond)
	if got := r.At(mid); got != 100 {
		t.Fatalf("At(0.1s) = %v, expected 100", got)
	}

	r.Retarget(mid, 0, 1000)
	if r.From != 100 {
		t.Errorf("From = %v, expected 100", r.From)
	}
	if got := r.End.Sub(mid); got < 100*time.Millisecond-time.Microsecond || got > 100*time.Millisecond+time.Microsecond {
		t.Errorf("End - now = %v, expected 100ms", got)
	}
	if got := r.At(mid.Add(50 * time.Millisecond)); math.Abs(got-50) > 1e-6 {
		t.Errorf("At(0.15s) = %v, expected 50", got)
	}
}

func TestRampHold(t *testing.T) {
	var r Ramp
	r.Retarget(epoch, 200, 1000)
	r.Hold(epoch.Add(50*time.Millisecond), -200)

	for _, d := range []time.Duration{0, time.Second} {
		if got := r.At(epoch.Add(d)); got != -200 {
			t.Errorf("At(+%v) = %v, expected -200", d, got)
		}
	}
}
