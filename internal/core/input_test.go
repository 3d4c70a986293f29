package core

import "testing"

func TestInputFrameAxis(t *testing.T) {
	tests := []struct {
		name     string
		held     []Action
		expected int
	}{
		{"nothing held", nil, 0},
		{"left", []Action{ActionLeft}, -1},
		{"right", []Action{ActionRight}, 1},
		{"both prefers negative", []Action{ActionRight, ActionLeft}, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.held {
				f.Set(a)
			}
			if got := f.Axis(ActionLeft, ActionRight); got != tc.expected {
				t.Errorf("Axis() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	var f InputFrame
	f.Set(ActionDrop)

	c := f.Clone()
	f.Clear()

	if f.Has(ActionDrop) {
		t.Error("Clear() should remove actions")
	}
	if !c.Has(ActionDrop) {
		t.Error("Clone() should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionStartHard.String() != "StartHard" {
		t.Errorf("String() = %q, expected StartHard", ActionStartHard.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q, expected Unknown", Action(99).String())
	}
}
