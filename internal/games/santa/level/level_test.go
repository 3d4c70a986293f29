package level

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

var epoch = time.Date(2020, 12, 24, 18, 0, 0, 0, time.UTC)

var testCfg = config.LevelConfig{
	Rows:            5,
	MinScrollSpeed:  40,
	MaxScrollSpeed:  160,
	MenuScrollSpeed: 60,
	LandscapeFactor: 0.1,
}

func tileSprite(t *testing.T, w, h, frames int) *sprite.Sprite {
	t.Helper()
	mask := make([]bool, w*h*frames)
	for i := range mask {
		mask[i] = true
	}
	s, err := sprite.NewFromMask("level", w, h*frames, 1, frames, mask)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func filled(rows, cols int, v float64) Grid {
	g := make(Grid, rows)
	for y := range g {
		g[y] = make([]float64, cols)
		for x := range g[y] {
			g[y][x] = v
		}
	}
	return g
}

func newLevel(t *testing.T, cols int) *Level {
	t.Helper()
	l, err := New(tileSprite(t, 64, 96, 2), filled(5, cols, 0), filled(5, cols, -1), core.V(640, 480), testCfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid([]float64{1, 2, 3, 4, 5, 6, 7}, 2)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	expected := Grid{{1, 2, 3, 4}, {5, 6, 7, 0}}
	if g.Rows() != 2 || g.Cols() != 4 {
		t.Fatalf("size = %dx%d, expected 4x2", g.Cols(), g.Rows())
	}
	for y := range expected {
		for x := range expected[y] {
			if g.At(x, y) != expected[y][x] {
				t.Errorf("At(%d, %d) = %v, expected %v", x, y, g.At(x, y), expected[y][x])
			}
		}
	}
	if g.At(9, 0) != -1 {
		t.Errorf("At(out of range) = %v, expected -1", g.At(9, 0))
	}
}

func TestGridErrors(t *testing.T) {
	if _, err := NewGrid(nil, 5); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("NewGrid(nil) error = %v, expected ErrEmptyGrid", err)
	}
	if _, err := GridFromRows([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrRaggedGrid) {
		t.Errorf("GridFromRows(ragged) error = %v, expected ErrRaggedGrid", err)
	}
	if _, err := GridFromRows(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("GridFromRows(nil) error = %v, expected ErrEmptyGrid", err)
	}
}

func TestNewLevelErrors(t *testing.T) {
	tiles := tileSprite(t, 64, 96, 1)
	tests := []struct {
		name   string
		bg, fg Grid
		target error
	}{
		{"empty background", Grid{}, filled(5, 3, -1), ErrEmptyGrid},
		{"ragged foreground", filled(2, 3, 0), Grid{{1, 2, 3}, {1}}, ErrRaggedGrid},
		{"row mismatch", filled(5, 3, 0), filled(4, 3, -1), ErrGridMismatch},
		{"column mismatch", filled(5, 3, 0), filled(5, 4, -1), ErrGridMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tiles, tc.bg, tc.fg, core.V(640, 480), testCfg); !errors.Is(err, tc.target) {
				t.Errorf("New() error = %v, expected %v", err, tc.target)
			}
		})
	}
}

func TestVisibleTilesWindow(t *testing.T) {
	l := newLevel(t, 100)
	l.SetOffset(640)

	seen := make(map[int]int)
	for x, y := range l.VisibleTiles() {
		if y < 0 || y >= 5 {
			t.Fatalf("VisibleTiles() yielded row %d outside the grid", y)
		}
		seen[x]++
	}
	if len(seen) != 11 {
		t.Errorf("visible column count = %d, expected 11", len(seen))
	}
	for x := 10; x < 21; x++ {
		if seen[x] != 5 {
			t.Errorf("column %d seen %d times, expected 5", x, seen[x])
		}
	}

	// restartable
	n := 0
	for range l.VisibleTiles() {
		n++
	}
	if n != 55 {
		t.Errorf("second pass yielded %d tiles, expected 55", n)
	}
}

func TestVisibleTilesClampedAtEnd(t *testing.T) {
	l := newLevel(t, 12)
	l.SetOffset(64 * 8)

	minCol, maxCol := l.VisibleColumns()
	if minCol != 8 || maxCol != 12 {
		t.Errorf("VisibleColumns() = [%d, %d), expected [8, 12)", minCol, maxCol)
	}

	l.SetOffset(64 * 50)
	n := 0
	for range l.VisibleTiles() {
		n++
	}
	if n != 0 {
		t.Errorf("VisibleTiles() past the end yielded %d tiles, expected 0", n)
	}
}

func TestVisibleTerrainSkipsEmpty(t *testing.T) {
	bg := filled(5, 20, -1)
	bg[4][2] = 1
	bg[3][5] = 0
	fg := filled(5, 20, -1)
	fg[1][3] = 70

	l, err := New(tileSprite(t, 64, 96, 2), bg, fg, core.V(640, 480), testCfg)
	if err != nil {
		t.Fatal(err)
	}

	var terrain []Tile
	for tile := range l.VisibleTerrain() {
		terrain = append(terrain, tile)
	}
	if len(terrain) != 2 {
		t.Fatalf("VisibleTerrain() = %v, expected 2 tiles", terrain)
	}
	// rows outer
	if terrain[0] != (Tile{X: 5, Y: 3, Frame: 0}) || terrain[1] != (Tile{X: 2, Y: 4, Frame: 1}) {
		t.Errorf("VisibleTerrain() = %v, expected row-major order", terrain)
	}

	var markers []Tile
	for tile := range l.VisibleMarkers() {
		markers = append(markers, tile)
	}
	if len(markers) != 1 || markers[0].Frame != 70 {
		t.Errorf("VisibleMarkers() = %v, expected one angel marker", markers)
	}
}

func TestScrollSpeedFollowsPlayer(t *testing.T) {
	tests := []struct {
		name     string
		playerX  float64
		expected float64
	}{
		{"left edge", 0, 40},
		{"middle", 270, 100},
		{"right edge", 540, 160},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newLevel(t, 100)
			l.StartGame(epoch)
			l.Update(epoch, 0, 100)
			l.Update(epoch.Add(time.Second), tc.playerX, 100)

			if l.ScrollSpeed() != tc.expected {
				t.Errorf("ScrollSpeed() = %v, expected %v", l.ScrollSpeed(), tc.expected)
			}
			if l.Offset() != tc.expected {
				t.Errorf("Offset() = %v, expected %v", l.Offset(), tc.expected)
			}
		})
	}
}

func TestScrollWaitsForStartAndPause(t *testing.T) {
	l := newLevel(t, 100)
	l.StartMenu(epoch)
	start := epoch.Add(3 * time.Second)
	l.StartGame(start)

	l.Update(epoch.Add(2*time.Second), 0, 100)
	if l.Offset() != 0 || l.ScrollSpeed() != 0 {
		t.Errorf("before start: Offset() = %v, ScrollSpeed() = %v, expected 0", l.Offset(), l.ScrollSpeed())
	}

	l.Update(start.Add(time.Second), 0, 100)
	if l.Offset() != 40 {
		t.Errorf("Offset() = %v, expected 40 after one second at min speed", l.Offset())
	}

	pauseEnd := start.Add(6 * time.Second)
	l.PauseScrolling(pauseEnd)
	l.Update(start.Add(4*time.Second), 0, 100)
	if l.Offset() != 40 {
		t.Errorf("Offset() = %v while paused, expected 40", l.Offset())
	}
	if !l.Paused(start.Add(4 * time.Second)) {
		t.Error("Paused() = false, expected true")
	}

	l.Update(pauseEnd.Add(time.Second), 0, 100)
	if l.Offset() != 80 {
		t.Errorf("Offset() = %v after pause, expected 80", l.Offset())
	}
}

func TestMenuScroll(t *testing.T) {
	l := newLevel(t, 100)
	l.StartMenu(epoch)
	l.Update(epoch.Add(2*time.Second), 500, 100)

	if l.Offset() != 120 {
		t.Errorf("Offset() = %v, expected 120 at menu speed", l.Offset())
	}
}

func TestLandscapeWraps(t *testing.T) {
	ls := NewLandscape(100, 0.1, epoch)
	ls.Update(epoch.Add(10*time.Second), 160)
	if ls.Offset() != 60 {
		t.Errorf("Offset() = %v, expected 60", ls.Offset())
	}
	ls.Update(epoch.Add(20*time.Second), 0)
	if ls.Offset() != 60 {
		t.Errorf("Offset() = %v with zero speed, expected 60", ls.Offset())
	}
	ls.Reset(epoch)
	if ls.Offset() != 0 {
		t.Errorf("Offset() after Reset = %v, expected 0", ls.Offset())
	}
}
