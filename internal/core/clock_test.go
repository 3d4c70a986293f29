package core

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2020, 12, 24, 18, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	if !c.Now().Equal(start) {
		t.Errorf("Now() = %v, expected %v", c.Now(), start)
	}

	got := c.Advance(1500 * time.Millisecond)
	if want := start.Add(1500 * time.Millisecond); !got.Equal(want) || !c.Now().Equal(want) {
		t.Errorf("Advance() = %v, expected %v", got, want)
	}

	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Now() after Set = %v, expected %v", c.Now(), start)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeNone:            "none",
		OutcomeWon:             "won",
		OutcomeLostDueToTime:   "lost_time",
		OutcomeLostDueToDamage: "lost_damage",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, expected %q", o, got, want)
		}
	}
}
