package gift

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/santa-racer/internal/core"
)

// ErrChimneyData is returned when hit-box data is not a list of 4-tuples.
var ErrChimneyData = errors.New("gift: chimney data length not divisible by 4")

// Chimney is a scoring hit-box relative to the top-left corner of every
// terrain tile whose frame equals Frame.
type Chimney struct {
	Position core.Vec2
	Size     core.Vec2
	Frame    float64
}

// ParseChimneys decodes flat (x, y, width, frame) tuples. All hit-boxes share
// the given height.
func ParseChimneys(data []float64, height float64) ([]Chimney, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrChimneyData, len(data))
	}
	chimneys := make([]Chimney, 0, len(data)/4)
	for i := 0; i+3 < len(data); i += 4 {
		chimneys = append(chimneys, Chimney{
			Position: core.V(data[i], data[i+1]),
			Size:     core.V(data[i+2], height),
			Frame:    data[i+3],
		})
	}
	return chimneys, nil
}

// contains reports whether p lies inside the hit-box placed at tile, edges included.
func (c Chimney) contains(tile, p core.Vec2) bool {
	x0, y0 := tile.X+c.Position.X, tile.Y+c.Position.Y
	return p.X >= x0 && p.X <= x0+c.Size.X && p.Y >= y0 && p.Y <= y0+c.Size.Y
}
