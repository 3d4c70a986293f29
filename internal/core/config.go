package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome is how a finished run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLostDueToTime
	OutcomeLostDueToDamage
)

// String returns the outcome name used in logs and storage.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLostDueToTime:
		return "lost_time"
	case OutcomeLostDueToDamage:
		return "lost_damage"
	default:
		return "none"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score      int     // Final score if the run ended now
	GameOver   bool    // Whether the run has ended
	Paused     bool    // Whether the game is paused
	Outcome    Outcome // Set once GameOver is true
	Difficulty string  // Difficulty of the current or last run

	GiftPoints   int           // Gift total of the current or last run
	DamagePoints int           // Damage total of the current or last run
	Played       time.Duration // Run time elapsed on the countdown
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
