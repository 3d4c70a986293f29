// Package maps loads hand-made level maps. A loaded map replaces the tile
// grids and chimney table of the asset provider.
package maps

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/santa-racer/internal/games/santa/maps/formats"
)

// Map is a complete level definition.
type Map struct {
	ID         string
	Name       string
	Background [][]float64
	Foreground [][]float64
	Chimneys   []float64
	Metadata   map[string]string
	FilePath   string
}

// Rows returns the number of tile rows.
func (m Map) Rows() int { return len(m.Background) }

// Cols returns the number of tile columns.
func (m Map) Cols() int {
	if len(m.Background) == 0 {
		return 0
	}
	return len(m.Background[0])
}

// FlatBackground returns the background grid row-major.
func (m Map) FlatBackground() []float64 { return flatten(m.Background) }

// FlatForeground returns the foreground grid row-major.
func (m Map) FlatForeground() []float64 { return flatten(m.Foreground) }

func flatten(g [][]float64) []float64 {
	out := make([]float64, 0, len(g)*len(g[0]))
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var maps []Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		m, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}
	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

// LoadFile loads a single map file.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var parsed formats.Map
	switch ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Map{
		ID:         parsed.ID,
		Name:       parsed.Name,
		Background: parsed.Background,
		Foreground: parsed.Foreground,
		Chimneys:   parsed.Chimneys,
		Metadata:   parsed.Metadata,
		FilePath:   path,
	}, nil
}
