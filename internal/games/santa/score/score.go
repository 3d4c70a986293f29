// Package score tracks gift points, damage points and the countdown that
// decide the outcome of a run.
package score

import (
	"math"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
)

// Score accumulates points for one run. Both point totals are floored at
// zero after every addition.
type Score struct {
	cfg config.ScoreConfig

	running    bool
	won        bool
	gift       float64
	damage     float64
	remaining  time.Duration
	start      time.Time
	lastUpdate time.Time
}

// New creates a score in menu mode.
func New(cfg config.ScoreConfig) *Score {
	return &Score{cfg: cfg}
}

// StartGame resets all totals. The countdown begins at start.
func (s *Score) StartGame(start, now time.Time) {
	s.running = true
	s.won = false
	s.gift = 0
	s.damage = 0
	s.remaining = s.cfg.TotalTime
	s.start = start
	s.lastUpdate = now
}

// StartMenu stops the countdown. Totals stay readable for the outcome screen.
func (s *Score) StartMenu() {
	s.running = false
}

// AddGiftPoints adds p (which may be negative) to the gift total.
func (s *Score) AddGiftPoints(p float64) {
	s.gift = math.Max(0, s.gift+p)
}

// AddDamagePoints adds p (which may be negative) to the damage total.
func (s *Score) AddDamagePoints(p float64) {
	s.damage = math.Max(0, s.damage+p)
}

// Update counts the remaining time down while running and after the start instant.
func (s *Score) Update(now time.Time) {
	if s.running && !now.Before(s.start) {
		from := s.lastUpdate
		if from.Before(s.start) {
			from = s.start
		}
		if now.After(from) {
			s.remaining -= now.Sub(from)
		}
		if s.remaining < 0 {
			s.remaining = 0
		}
	}
	s.lastUpdate = now
}

// GiftPoints returns the gift total.
func (s *Score) GiftPoints() float64 { return s.gift }

// DamagePoints returns the damage total.
func (s *Score) DamagePoints() float64 { return s.damage }

// RemainingTime returns the countdown value.
func (s *Score) RemainingTime() time.Duration { return s.remaining }

// Running reports whether a run is in progress.
func (s *Score) Running() bool { return s.running }

// SetWon marks the run as won.
func (s *Score) SetWon() { s.won = true }

// Won reports whether the finish line was crossed.
func (s *Score) Won() bool { return s.won }

// LostDueToTime reports whether the countdown ran out.
func (s *Score) LostDueToTime() bool {
	return s.running && s.remaining <= 0
}

// LostDueToDamage reports whether damage reached the configured maximum.
func (s *Score) LostDueToDamage() bool {
	return s.cfg.MaxDamage > 0 && s.damage >= s.cfg.MaxDamage
}

// Outcome folds the flags into a single value. Winning takes precedence.
func (s *Score) Outcome() core.Outcome {
	switch {
	case s.won:
		return core.OutcomeWon
	case s.LostDueToDamage():
		return core.OutcomeLostDueToDamage
	case s.LostDueToTime():
		return core.OutcomeLostDueToTime
	default:
		return core.OutcomeNone
	}
}

// Final returns the highscore value: gift minus damage, never negative.
func (s *Score) Final() int {
	return int(math.Max(0, s.gift-s.damage))
}
