package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Note is one step of a synthesized sound.
type Note struct {
	Freq     float64 // Hz, 0 for a rest
	Duration time.Duration
}

// Tones renders a sequence of sine notes into a buffer.
func Tones(format beep.Format, notes ...Note) (*beep.Buffer, error) {
	buf := beep.NewBuffer(format)
	for _, n := range notes {
		samples := format.SampleRate.N(n.Duration)
		if n.Freq <= 0 {
			buf.Append(beep.Silence(samples))
			continue
		}
		sine, err := generators.SineTone(format.SampleRate, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %.0fHz: %w", n.Freq, err)
		}
		buf.Append(newVolume(beep.Take(samples, sine), 0.5))
	}
	return buf, nil
}
