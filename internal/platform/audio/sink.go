// Package audio provides the fire-and-forget sound sink used by the
// simulation and a beep-based mixer that implements it.
package audio

import "sync"

// Sink plays a named sound. Pan runs from 0 (left) to 1 (right).
// Implementations must not block.
type Sink interface {
	Play(name string, volume, pan float64)
}

// Null discards every request.
type Null struct{}

// Play implements Sink.
func (Null) Play(string, float64, float64) {}

// Pan maps a canvas x coordinate to a pan value in [0, 1].
func Pan(screenX, canvasW float64) float64 {
	if canvasW <= 0 {
		return 0.5
	}
	p := screenX / canvasW
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Played is one recorded play request.
type Played struct {
	Name   string
	Volume float64
	Pan    float64
}

// Recorder is a Sink that remembers every request. It is used by the
// headless simulation and in tests.
type Recorder struct {
	mu     sync.Mutex
	played []Played
}

// Play implements Sink.
func (r *Recorder) Play(name string, volume, pan float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, Played{Name: name, Volume: volume, Pan: pan})
}

// Played returns a copy of the recorded requests.
func (r *Recorder) Played() []Played {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Played(nil), r.played...)
}

// Count returns how often the named sound was played.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets all requests.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = r.played[:0]
}
