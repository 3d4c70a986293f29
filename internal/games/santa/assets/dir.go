package assets

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// DirProvider loads assets from an asset directory laid out as
// images/<name>.png, sounds/<name>.wav and data/<name>.txt. Loaded assets
// are cached.
type DirProvider struct {
	root   string
	format beep.Format

	mu     sync.Mutex
	images map[string]*sprite.Sprite
	sounds map[string]*beep.Buffer
	data   map[string][]float64
}

// Dir returns a provider rooted at root. Sounds are resampled to format.
func Dir(root string, format beep.Format) *DirProvider {
	return &DirProvider{
		root:   root,
		format: format,
		images: make(map[string]*sprite.Sprite),
		sounds: make(map[string]*beep.Buffer),
		data:   make(map[string][]float64),
	}
}

func (d *DirProvider) open(kind, name, ext string) (*os.File, error) {
	f, err := os.Open(filepath.Join(d.root, kind, name+ext))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	return f, err
}

// Image implements Provider.
func (d *DirProvider) Image(name string) (*sprite.Sprite, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.images[name]; ok {
		return s, nil
	}

	f, err := d.open("images", name, ".png")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode image %q: %w", name, err)
	}
	g := GridFor(name)
	s, err := sprite.New(name, img, g.Cols, g.Rows)
	if err != nil {
		return nil, fmt.Errorf("assets: image %q: %w", name, err)
	}
	d.images[name] = s
	return s, nil
}

// Sound implements Provider.
func (d *DirProvider) Sound(name string) (*beep.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.sounds[name]; ok {
		return b, nil
	}

	f, err := d.open("sounds", name, ".wav")
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("assets: decode sound %q: %w", name, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != d.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, d.format.SampleRate, streamer)
	}
	buf := beep.NewBuffer(d.format)
	buf.Append(s)
	d.sounds[name] = buf
	return buf, nil
}

// Data implements Provider. Files hold whitespace-separated numbers.
func (d *DirProvider) Data(name string) ([]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.data[name]; ok {
		return v, nil
	}

	f, err := d.open("data", name, ".txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values []float64
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("assets: data %q: %w", name, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("assets: read data %q: %w", name, err)
	}
	d.data[name] = values
	return values, nil
}
