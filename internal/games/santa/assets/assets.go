// Package assets resolves named images, sounds and numeric data for the
// game, either from an asset directory or generated procedurally.
package assets

import (
	"errors"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/santa-racer/internal/games/santa/maps"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// ErrNotFound is returned for names a provider does not know.
var ErrNotFound = errors.New("assets: not found")

// Data names used by the level.
const (
	BackgroundMap = "backgroundObjectMap"
	ForegroundMap = "foregroundObjectMap"
	Chimneys      = "chimneys"
)

// Provider resolves assets by name.
type Provider interface {
	Image(name string) (*sprite.Sprite, error)
	Sound(name string) (*beep.Buffer, error)
	Data(name string) ([]float64, error)
}

// Grid is the frame layout of an image.
type Grid struct {
	Cols, Rows int
}

// FrameGrids lists the frame layout of every animated image. Images not
// listed are a single frame.
var FrameGrids = map[string]Grid{
	"angel":                {13, 1},
	"bigStar":              {10, 1},
	"cashBalloon":          {8, 1},
	"drunkStar":            {17, 1},
	"electrocutedReindeer": {14, 1},
	"electrocutedSleigh":   {14, 1},
	"gift1":                {15, 1},
	"gift2":                {15, 1},
	"gift3":                {15, 1},
	"giftBalloon":          {8, 1},
	"goblin":               {19, 1},
	"heartBalloon":         {8, 1},
	"level":                {1, 81},
	"reindeer":             {14, 1},
	"shield":               {8, 1},
	"shieldBalloon":        {8, 1},
	"sleigh":               {14, 1},
	"smallDrunkStar":       {17, 1},
	"smallStar":            {17, 1},
	"snowball":             {8, 1},
	"snowman":              {8, 1},
	"star":                 {17, 1},
	"wineBalloon":          {7, 1},
}

// GridFor returns the frame layout of an image, 1x1 when unlisted.
func GridFor(name string) Grid {
	if g, ok := FrameGrids[name]; ok {
		return g
	}
	return Grid{1, 1}
}

// GridSource is implemented by providers that know the row layout of
// their tile grids. Such grids are used as given instead of being laid
// out over the configured row count.
type GridSource interface {
	Grid(name string) ([][]float64, bool)
}

// mapOverride serves level data from a loaded map and everything else
// from the wrapped provider.
type mapOverride struct {
	Provider
	data  map[string][]float64
	grids map[string][][]float64
}

// WithMap returns a provider whose tile grids come from m. The chimney
// table comes from m when it has one and from p otherwise.
func WithMap(p Provider, m maps.Map) Provider {
	data := map[string][]float64{
		BackgroundMap: m.FlatBackground(),
		ForegroundMap: m.FlatForeground(),
	}
	if len(m.Chimneys) > 0 {
		data[Chimneys] = m.Chimneys
	}
	grids := map[string][][]float64{
		BackgroundMap: m.Background,
		ForegroundMap: m.Foreground,
	}
	return &mapOverride{Provider: p, data: data, grids: grids}
}

// Grid returns the map's rows for a tile grid name.
func (o *mapOverride) Grid(name string) ([][]float64, bool) {
	g, ok := o.grids[name]
	return g, ok
}

func (o *mapOverride) Data(name string) ([]float64, error) {
	if d, ok := o.data[name]; ok {
		return d, nil
	}
	return o.Provider.Data(name)
}
