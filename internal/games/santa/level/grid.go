package level

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyGrid is returned for a grid without rows or columns.
	ErrEmptyGrid = errors.New("level: empty grid")
	// ErrRaggedGrid is returned when grid rows differ in length.
	ErrRaggedGrid = errors.New("level: rows have unequal length")
	// ErrGridMismatch is returned when background and foreground sizes differ.
	ErrGridMismatch = errors.New("level: background and foreground dimensions differ")
	// ErrRowCount is returned when a grid does not have the level's row count.
	ErrRowCount = errors.New("level: grid row count differs from the level")
)

// Grid is a rectangular row-major array of tile values. Negative values
// mean "nothing here".
type Grid [][]float64

// NewGrid lays a flat row-major list out over a fixed number of rows. The
// column count is ceil(len/rows) and missing trailing cells are zero.
func NewGrid(flat []float64, rows int) (Grid, error) {
	if rows <= 0 || len(flat) == 0 {
		return nil, fmt.Errorf("%w: %d values over %d rows", ErrEmptyGrid, len(flat), rows)
	}
	cols := int(math.Ceil(float64(len(flat)) / float64(rows)))
	g := make(Grid, rows)
	for y := range g {
		g[y] = make([]float64, cols)
		for x := range g[y] {
			if i := x + y*cols; i < len(flat) {
				g[y][x] = flat[i]
			}
		}
	}
	return g, nil
}

// GridFromRows copies rows into a grid, rejecting empty or ragged input.
func GridFromRows(rows [][]float64) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g := make(Grid, len(rows))
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRaggedGrid, y, len(row), len(rows[0]))
		}
		g[y] = append([]float64(nil), row...)
	}
	return g, nil
}

// Rows returns the row count.
func (g Grid) Rows() int { return len(g) }

// Cols returns the column count.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the value at (x, y), or -1 outside the grid.
func (g Grid) At(x, y int) float64 {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return -1
	}
	return g[y][x]
}

func (g Grid) validate() error {
	if g.Rows() == 0 || g.Cols() == 0 {
		return ErrEmptyGrid
	}
	for y, row := range g {
		if len(row) != g.Cols() {
			return fmt.Errorf("%w: row %d", ErrRaggedGrid, y)
		}
	}
	return nil
}
