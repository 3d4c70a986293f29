package santa

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
)

// Cruise point of the autopilot as a fraction of the canvas.
const (
	cruiseX    = 0.35
	cruiseY    = 0.2
	cruiseSlop = 8.0 // canvas pixels
)

// Autopilot returns the input of a simple bot: hold the sleigh near a
// cruise point high above the roofs and drop a gift whenever allowed.
func Autopilot(s Snapshot, canvas core.Vec2) core.InputFrame {
	in := core.NewInputFrame()
	if s.Mode != ModeRunning {
		return in
	}
	in.Set(core.ActionDrop)

	tx, ty := canvas.X*cruiseX, canvas.Y*cruiseY
	switch {
	case s.Position.X < tx-cruiseSlop:
		in.Set(core.ActionRight)
	case s.Position.X > tx+cruiseSlop:
		in.Set(core.ActionLeft)
	}
	switch {
	case s.Position.Y < ty-cruiseSlop:
		in.Set(core.ActionDown)
	case s.Position.Y > ty+cruiseSlop:
		in.Set(core.ActionUp)
	}
	return in
}

// SimResult summarises a headless run.
type SimResult struct {
	Outcome core.Outcome
	Final   Snapshot // after the last step; totals survive the finish
	Ticks   int
	Elapsed time.Duration
}

// Simulate starts a run of difficulty d and drives it with the
// autopilot, advancing clock by tick per step, until the run ends or
// limit has elapsed. The game must use clock.
func Simulate(g *Game, clock *core.ManualClock, d config.DifficultyPreset, tick, limit time.Duration) SimResult {
	start := core.ActionStartEasy
	if d == config.DifficultyHard {
		start = core.ActionStartHard
	}
	in := core.NewInputFrame()
	in.Set(start)
	g.Step(in)

	var res SimResult
	last := g.Snapshot()
	for res.Elapsed < limit {
		clock.Advance(tick)
		res.Elapsed += tick
		res.Ticks++
		g.Step(Autopilot(last, g.cfg.Canvas))

		last = g.Snapshot()
		if last.Mode.Over() {
			res.Outcome = g.outcome
			break
		}
	}
	res.Final = last
	return res
}
