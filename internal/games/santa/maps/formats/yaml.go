// Package formats provides level map file parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLMap represents the YAML structure of a level map file.
type YAMLMap struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Background [][]float64       `yaml:"background"`
	Foreground [][]float64       `yaml:"foreground"`
	Chimneys   [][]float64       `yaml:"chimneys,omitempty"` // x, y, width, frame
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// Map represents a parsed map ready for use.
type Map struct {
	ID         string
	Name       string
	Background [][]float64
	Foreground [][]float64
	Chimneys   []float64 // flat 4-tuples
	Metadata   map[string]string
}

// ParseYAML parses a YAML map file. Grids must be rectangular and share
// their dimensions; an omitted foreground is treated as empty.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.ID == "" {
		return Map{}, fmt.Errorf("missing id")
	}

	cols, err := width(ym.Background)
	if err != nil {
		return Map{}, fmt.Errorf("background: %w", err)
	}
	fg := ym.Foreground
	if len(fg) == 0 {
		fg = empty(len(ym.Background), cols)
	}
	fgCols, err := width(fg)
	if err != nil {
		return Map{}, fmt.Errorf("foreground: %w", err)
	}
	if len(fg) != len(ym.Background) || fgCols != cols {
		return Map{}, fmt.Errorf("foreground is %dx%d, background is %dx%d", fgCols, len(fg), cols, len(ym.Background))
	}

	m := Map{
		ID:         ym.ID,
		Name:       ym.Name,
		Background: ym.Background,
		Foreground: fg,
		Metadata:   ym.Metadata,
	}
	for i, c := range ym.Chimneys {
		if len(c) != 4 {
			return Map{}, fmt.Errorf("chimney %d: want 4 values, got %d", i, len(c))
		}
		m.Chimneys = append(m.Chimneys, c...)
	}
	return m, nil
}

func width(rows [][]float64) (int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, fmt.Errorf("empty grid")
	}
	for i, r := range rows {
		if len(r) != len(rows[0]) {
			return 0, fmt.Errorf("row %d has %d columns, want %d", i, len(r), len(rows[0]))
		}
	}
	return len(rows[0]), nil
}

func empty(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for y := range g {
		g[y] = make([]float64, cols)
		for x := range g[y] {
			g[y][x] = -1
		}
	}
	return g
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
