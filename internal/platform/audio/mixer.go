package audio

import (
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Mixer keeps decoded sound buffers and mixes every play request into a
// single beep stream. Hand Streamer() to the speaker once.
type Mixer struct {
	mu      sync.Locker
	format  beep.Format
	buffers map[string]*beep.Buffer
	mixer   *beep.Mixer
	volume  float64
	logger  *log.Logger
	missing map[string]bool
}

// MixerOption configures a Mixer.
type MixerOption func(*Mixer)

// WithLocker replaces the internal mutex, e.g. with the speaker lock so
// that plays never race the output callback.
func WithLocker(l sync.Locker) MixerOption {
	return func(m *Mixer) { m.mu = l }
}

// WithLogger sets the logger used for unknown sound names.
func WithLogger(l *log.Logger) MixerOption {
	return func(m *Mixer) { m.logger = l }
}

// WithVolume sets the master volume in [0, 1].
func WithVolume(v float64) MixerOption {
	return func(m *Mixer) { m.volume = v }
}

// NewMixer creates an empty mixer for the given output format.
func NewMixer(format beep.Format, opts ...MixerOption) *Mixer {
	m := &Mixer{
		mu:      &sync.Mutex{},
		format:  format,
		buffers: make(map[string]*beep.Buffer),
		mixer:   &beep.Mixer{},
		volume:  1,
		logger:  log.New(io.Discard),
		missing: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Format returns the output format.
func (m *Mixer) Format() beep.Format { return m.format }

// Load registers a buffer under name, replacing any previous one.
func (m *Mixer) Load(name string, buf *beep.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffers[name] = buf
}

// Play implements Sink. Unknown names are logged once and ignored.
func (m *Mixer) Play(name string, volume, pan float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.buffers[name]
	if !ok {
		if !m.missing[name] {
			m.missing[name] = true
			m.logger.Warn("unknown sound", "name", name)
		}
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	s = &effects.Pan{Streamer: s, Pan: 2*Pan(pan, 1) - 1}
	m.mixer.Add(newVolume(s, volume*m.volume))
}

// Active returns the number of sounds still playing.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

// Streamer returns the mixed output stream.
func (m *Mixer) Streamer() beep.Streamer {
	return m.mixer
}

// Clear stops every playing sound.
func (m *Mixer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.Clear()
}

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
