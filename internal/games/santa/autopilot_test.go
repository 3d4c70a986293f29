package santa

import (
	"testing"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
)

func TestAutopilot(t *testing.T) {
	canvas := core.V(1000, 500) // cruise point (350, 100)

	tests := []struct {
		name string
		mode Mode
		pos  core.Vec2
		x, y int
		drop bool
	}{
		{"menu does nothing", ModeMenu, core.V(0, 0), 0, 0, false},
		{"behind and level", ModeRunning, core.V(100, 100), 1, 0, true},
		{"ahead and low", ModeRunning, core.V(600, 300), -1, -1, true},
		{"on point but high", ModeRunning, core.V(350, 20), 0, 1, true},
		{"inside the slop", ModeRunning, core.V(355, 95), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Autopilot(Snapshot{Mode: tt.mode, Position: tt.pos}, canvas)
			x := in.Axis(core.ActionLeft, core.ActionRight)
			y := in.Axis(core.ActionUp, core.ActionDown)
			if x != tt.x || y != tt.y {
				t.Errorf("Autopilot() axes = (%d, %d), expected (%d, %d)", x, y, tt.x, tt.y)
			}
			if in.Has(core.ActionDrop) != tt.drop {
				t.Errorf("Autopilot() drop = %v, expected %v", in.Has(core.ActionDrop), tt.drop)
			}
		})
	}
}

func TestSimulateRunsOutOfTime(t *testing.T) {
	f := newFixture(t, testMap(200, nil, nil), func(c *config.SantaConfig) {
		c.Score.TotalTime = 5 * time.Second
		c.Score.MaxDamage = 0
	})

	res := Simulate(f.game, f.clock, config.DifficultyHard, 50*time.Millisecond, time.Minute)
	if res.Outcome != core.OutcomeLostDueToTime {
		t.Fatalf("Simulate().Outcome = %v, expected %v", res.Outcome, core.OutcomeLostDueToTime)
	}
	if res.Final.Mode != ModeLostDueToTime || res.Final.Difficulty != config.DifficultyHard {
		t.Errorf("Simulate().Final = %v/%v, expected a lost hard run", res.Final.Mode, res.Final.Difficulty)
	}
	// 3s countdown plus the 5s budget.
	if res.Elapsed < 8*time.Second || res.Elapsed > 8*time.Second+50*time.Millisecond {
		t.Errorf("Simulate().Elapsed = %v, expected 8s", res.Elapsed)
	}
	if res.Ticks != int(res.Elapsed/(50*time.Millisecond)) {
		t.Errorf("Simulate().Ticks = %d, expected %d", res.Ticks, int(res.Elapsed/(50*time.Millisecond)))
	}
}

func TestSimulateStopsAtLimit(t *testing.T) {
	f := newFixture(t, testMap(200, nil, nil), nil)

	res := Simulate(f.game, f.clock, config.DifficultyEasy, 100*time.Millisecond, 2*time.Second)
	if res.Outcome != core.OutcomeNone {
		t.Errorf("Simulate().Outcome = %v, expected none", res.Outcome)
	}
	if res.Ticks != 20 || res.Final.Mode != ModeRunning {
		t.Errorf("Simulate() = %d ticks in %v, expected 20 ticks still running", res.Ticks, res.Final.Mode)
	}
}
