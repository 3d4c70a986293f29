package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

var testFormat = beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}

func TestPan(t *testing.T) {
	tests := []struct {
		x, w     float64
		expected float64
	}{
		{0, 640, 0},
		{320, 640, 0.5},
		{640, 640, 1},
		{-50, 640, 0},
		{900, 640, 1},
		{10, 0, 0.5},
	}
	for _, tc := range tests {
		if got := Pan(tc.x, tc.w); got != tc.expected {
			t.Errorf("Pan(%v, %v) = %v, expected %v", tc.x, tc.w, got, tc.expected)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play("a", 1, 0.2)
	r.Play("b", 0.5, 0.5)
	r.Play("a", 1, 0.9)

	if r.Count("a") != 2 {
		t.Errorf("Count(a) = %d, expected 2", r.Count("a"))
	}
	if got := r.Played(); len(got) != 3 || got[1].Volume != 0.5 {
		t.Errorf("Played() = %v, expected 3 entries", got)
	}
	r.Reset()
	if len(r.Played()) != 0 {
		t.Error("Reset() should clear requests")
	}
}

func TestTones(t *testing.T) {
	buf, err := Tones(testFormat, Note{Freq: 440, Duration: 100 * time.Millisecond}, Note{Duration: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tones() error = %v", err)
	}
	if expected := testFormat.SampleRate.N(150 * time.Millisecond); buf.Len() != expected {
		t.Errorf("Len() = %d, expected %d", buf.Len(), expected)
	}

	if _, err := Tones(testFormat, Note{Freq: 10000, Duration: time.Millisecond}); err == nil {
		t.Error("Tones() above Nyquist error = nil, expected error")
	}
}

func TestMixerPlay(t *testing.T) {
	m := NewMixer(testFormat, WithVolume(0.5))
	buf, err := Tones(testFormat, Note{Freq: 440, Duration: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	m.Load("beep", buf)

	m.Play("missing", 1, 0.5)
	if m.Active() != 0 {
		t.Errorf("Active() = %d after unknown sound, expected 0", m.Active())
	}

	m.Play("beep", 1, 0)
	m.Play("beep", 1, 1)
	if m.Active() != 2 {
		t.Fatalf("Active() = %d, expected 2", m.Active())
	}

	samples := make([][2]float64, 512)
	for i := 0; i < 10 && m.Active() > 0; i++ {
		m.Streamer().Stream(samples)
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d after draining, expected 0", m.Active())
	}

	m.Play("beep", 1, 0.5)
	m.Clear()
	if m.Active() != 0 {
		t.Errorf("Active() = %d after Clear, expected 0", m.Active())
	}
}

func TestNullSink(t *testing.T) {
	var s Sink = Null{}
	s.Play("anything", 1, 0.5)
}
