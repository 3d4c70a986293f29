package assets

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
)

const ms = time.Millisecond

// tunes synthesizes every sound the game plays.
var tunes = map[string][]audio.Note{
	"giftCollidedWithChimney":  {{Freq: 784, Duration: 60 * ms}, {Freq: 1047, Duration: 90 * ms}},
	"giftCollidedWithGround":   {{Freq: 196, Duration: 120 * ms}},
	"sleighCollidedWithLevel1": {{Freq: 147, Duration: 80 * ms}, {Freq: 110, Duration: 160 * ms}},
	"sleighCollidedWithLevel2": {{Freq: 131, Duration: 80 * ms}, {Freq: 98, Duration: 160 * ms}},
	"sleighCollidedWithNpc":    {{Freq: 220, Duration: 60 * ms}, {Freq: 0, Duration: 20 * ms}, {Freq: 185, Duration: 100 * ms}},
	"balloonCollected":         {{Freq: 659, Duration: 50 * ms}, {Freq: 880, Duration: 50 * ms}, {Freq: 1319, Duration: 80 * ms}},
	"cloudElectrocuted":        {{Freq: 1760, Duration: 30 * ms}, {Freq: 0, Duration: 15 * ms}, {Freq: 1760, Duration: 30 * ms}, {Freq: 110, Duration: 120 * ms}},
	"goblinThrow":              {{Freq: 330, Duration: 40 * ms}, {Freq: 440, Duration: 40 * ms}},
	"snowmanLaunch":            {{Freq: 262, Duration: 50 * ms}, {Freq: 392, Duration: 50 * ms}, {Freq: 523, Duration: 70 * ms}},
	"finish":                   {{Freq: 523, Duration: 120 * ms}, {Freq: 659, Duration: 120 * ms}, {Freq: 784, Duration: 120 * ms}, {Freq: 1047, Duration: 300 * ms}},
}

// SoundNames lists the sounds the procedural provider can synthesize.
func SoundNames() []string {
	names := make([]string, 0, len(tunes))
	for name := range tunes {
		names = append(names, name)
	}
	return names
}

// ProceduralProvider draws every image, synthesizes every sound and
// generates a level from a seed. It needs no files.
type ProceduralProvider struct {
	format beep.Format
	level  generated

	mu     sync.Mutex
	images map[string]*sprite.Sprite
	sounds map[string]*beep.Buffer
}

// ProceduralOption configures a ProceduralProvider.
type ProceduralOption func(*proceduralConfig)

type proceduralConfig struct {
	cols, rows int
}

// WithSize sets the generated level size in tiles.
func WithSize(cols, rows int) ProceduralOption {
	return func(c *proceduralConfig) {
		c.cols, c.rows = cols, rows
	}
}

// Procedural returns a provider whose level is derived from seed.
func Procedural(seed int64, format beep.Format, opts ...ProceduralOption) *ProceduralProvider {
	cfg := proceduralConfig{cols: 120, rows: 5}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ProceduralProvider{
		format: format,
		level:  generateLevel(seed, max(cfg.cols, 16), max(cfg.rows, 2)),
		images: make(map[string]*sprite.Sprite),
		sounds: make(map[string]*beep.Buffer),
	}
}

// Image implements Provider.
func (p *ProceduralProvider) Image(name string) (*sprite.Sprite, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.images[name]; ok {
		return s, nil
	}
	img, g, ok := render(name)
	if !ok {
		return nil, fmt.Errorf("%w: image %q", ErrNotFound, name)
	}
	s, err := sprite.New(name, img, g.Cols, g.Rows)
	if err != nil {
		return nil, fmt.Errorf("assets: image %q: %w", name, err)
	}
	p.images[name] = s
	return s, nil
}

// Sound implements Provider.
func (p *ProceduralProvider) Sound(name string) (*beep.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.sounds[name]; ok {
		return b, nil
	}
	notes, ok := tunes[name]
	if !ok {
		return nil, fmt.Errorf("%w: sound %q", ErrNotFound, name)
	}
	b, err := audio.Tones(p.format, notes...)
	if err != nil {
		return nil, fmt.Errorf("assets: sound %q: %w", name, err)
	}
	p.sounds[name] = b
	return b, nil
}

// Data implements Provider.
func (p *ProceduralProvider) Data(name string) ([]float64, error) {
	switch name {
	case BackgroundMap:
		return p.level.background, nil
	case ForegroundMap:
		return p.level.foreground, nil
	case Chimneys:
		return p.level.chimneys, nil
	default:
		return nil, fmt.Errorf("%w: data %q", ErrNotFound, name)
	}
}
