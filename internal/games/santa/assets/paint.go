package assets

import (
	"image"
	"image/color"
)

// canvas paints into one frame cell of a sprite sheet.
type canvas struct {
	img    *image.NRGBA
	ox, oy int // frame origin
	w, h   int // frame size
}

func (c canvas) set(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.img.SetNRGBA(c.ox+x, c.oy+y, col)
}

func (c canvas) rect(x0, y0, x1, y1 int, col color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, col)
		}
	}
}

func (c canvas) ellipse(cx, cy, rx, ry int, col color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			if x*x*ry*ry+y*y*rx*rx <= rx*rx*ry*ry {
				c.set(cx+x, cy+y, col)
			}
		}
	}
}

// triangle paints an upward triangle with its apex at (cx, top).
func (c canvas) triangle(cx, top, halfBase, height int, col color.NRGBA) {
	for dy := 0; dy < height; dy++ {
		half := halfBase * (dy + 1) / height
		for x := cx - half; x <= cx+half; x++ {
			c.set(x, top+dy, col)
		}
	}
}

// star paints a plus-shaped sparkle whose arm length follows the frame.
func (c canvas) star(frame, frames int, col color.NRGBA) {
	cx, cy := c.w/2, c.h/2
	arm := max(c.w/2*(frames-frame)/frames, 1)
	for i := -arm; i <= arm; i++ {
		c.set(cx+i, cy, col)
		c.set(cx, cy+i, col)
	}
}

var (
	white  = color.NRGBA{255, 255, 255, 255}
	snow   = color.NRGBA{235, 240, 250, 255}
	red    = color.NRGBA{200, 30, 30, 255}
	dark   = color.NRGBA{60, 30, 20, 255}
	brown  = color.NRGBA{120, 70, 30, 255}
	gold   = color.NRGBA{240, 200, 40, 255}
	green  = color.NRGBA{30, 130, 50, 255}
	blue   = color.NRGBA{60, 90, 200, 255}
	pink   = color.NRGBA{240, 120, 170, 255}
	purple = color.NRGBA{130, 40, 140, 255}
	gray   = color.NRGBA{110, 110, 120, 255}
	cyan   = color.NRGBA{120, 220, 250, 255}
	yellow = color.NRGBA{250, 240, 120, 255}
	brick  = color.NRGBA{150, 60, 40, 255}
	navy   = color.NRGBA{20, 30, 70, 255}
)

// painter draws frame f of an image into c.
type painter func(c canvas, f, frames int)

// shape describes a procedurally drawn image.
type shape struct {
	w, h  int
	paint painter
}

func balloon(body color.NRGBA) shape {
	return shape{24, 40, func(c canvas, f, _ int) {
		sway := f % 3
		c.ellipse(12, 12+sway, 10, 12, body)
		c.rect(11, 24+sway, 13, 34, gray)
		c.rect(8, 34, 16, 40, brown)
	}}
}

func starShape(size int, col color.NRGBA) shape {
	return shape{size, size, func(c canvas, f, n int) { c.star(f, n, col) }}
}

func giftShape(box, ribbon color.NRGBA) shape {
	return shape{16, 16, func(c canvas, f, _ int) {
		c.rect(1, 4, 15, 16, box)
		c.rect(7, 4, 9, 16, ribbon)
		c.rect(1, 9, 15, 11, ribbon)
		c.ellipse(8, 2+f%2, 3, 2, ribbon)
	}}
}

func sleighBody(runner color.NRGBA, grow int) shape {
	return shape{48 + grow, 24 + grow, func(c canvas, f, _ int) {
		g := grow / 2
		c.rect(g+4, g+4, g+44, g+18, red)
		c.rect(g+2, g+18, g+46, g+21, runner)
		c.ellipse(g+14, g+3, 6, 3+f%2, brown)
	}}
}

func reindeerBody(fur color.NRGBA, grow int) shape {
	return shape{32 + grow, 24 + grow, func(c canvas, f, _ int) {
		g := grow / 2
		c.ellipse(g+14, g+12, 12, 6, fur)
		c.ellipse(g+27, g+6, 4, 4, fur)
		c.rect(g+25, g, g+27, g+3, brown)
		leg := f % 4
		c.rect(g+6+leg, g+17, g+8+leg, g+24, fur)
		c.rect(g+20-leg, g+17, g+22-leg, g+24, fur)
	}}
}

// Chimney placement of house tile frames.
const (
	houseFrames    = 40
	treeFrames     = 20
	wallFrame      = 60
	hillFirstFrame = 61
	hillFrames     = 20
	chimneyTop     = 20
	chimneyWidth   = 10
)

func chimneyX(frame int) int { return 8 + (frame%5)*8 }

// paintTile draws one level tile: houses with a chimney, trees, a solid
// wall and low hills.
func paintTile(c canvas, f, _ int) {
	switch {
	case f < houseFrames:
		wall := brick
		if f >= houseFrames/2 {
			wall = brown
		}
		cx := chimneyX(f)
		c.rect(cx, chimneyTop, cx+chimneyWidth, 40, dark)
		c.triangle(32, 28, 32, 20, navy)
		c.rect(0, 48, 64, 96, wall)
		for wx := 8; wx < 56; wx += 20 {
			c.rect(wx, 58+(f%3)*6, wx+10, 68+(f%3)*6, yellow)
		}
	case f < houseFrames+treeFrames:
		h := 50 + (f-houseFrames)*2
		c.triangle(32, 96-h, 22, h-10, green)
		c.rect(29, 86, 35, 96, brown)
	case f == wallFrame:
		c.rect(0, 0, 64, 96, brick)
	default:
		top := 64 + (f-hillFirstFrame)%16
		c.ellipse(32, 96, 40, 96-top, snow)
	}
}

var shapes = map[string]shape{
	"sleigh":               sleighBody(gold, 0),
	"electrocutedSleigh":   sleighBody(cyan, 6),
	"reindeer":             reindeerBody(brown, 0),
	"electrocutedReindeer": reindeerBody(cyan, 6),
	"shield": {112, 60, func(c canvas, f, _ int) {
		c.ellipse(56, 30, 54-f%3, 28-f%3, color.NRGBA{120, 200, 255, 90})
	}},
	"star":           starShape(8, gold),
	"smallStar":      starShape(4, gold),
	"drunkStar":      starShape(8, purple),
	"smallDrunkStar": starShape(4, purple),
	"bigStar":        starShape(16, yellow),
	"gift1":          giftShape(red, gold),
	"gift2":          giftShape(green, red),
	"gift3":          giftShape(blue, white),
	"angel": {32, 32, func(c canvas, f, _ int) {
		c.triangle(16, 8, 8, 22, white)
		c.ellipse(16, 6, 4, 4, pink)
		flap := f % 4
		c.ellipse(6, 12+flap, 5, 3, snow)
		c.ellipse(26, 12+flap, 5, 3, snow)
	}},
	"cashBalloon":   balloon(green),
	"giftBalloon":   balloon(red),
	"heartBalloon":  balloon(pink),
	"shieldBalloon": balloon(blue),
	"wineBalloon":   balloon(purple),
	"cloud": {96, 48, func(c canvas, _, _ int) {
		c.ellipse(30, 28, 26, 16, gray)
		c.ellipse(60, 24, 30, 18, gray)
		c.rect(44, 40, 48, 48, yellow)
	}},
	"finish": {16, 96, func(c canvas, _, _ int) {
		for y := 0; y < 96; y += 8 {
			col := white
			if (y/8)%2 == 0 {
				col = red
			}
			c.rect(0, y, 16, y+8, col)
		}
	}},
	"goblin": {32, 40, func(c canvas, f, _ int) {
		c.ellipse(16, 26, 10, 12, green)
		c.ellipse(16, 10, 8, 8, green)
		arm := f % 6
		c.rect(24, 16-arm, 30, 20-arm, green)
	}},
	"snowball": {8, 8, func(c canvas, _, _ int) {
		c.ellipse(4, 4, 3, 3, snow)
	}},
	"snowman": {32, 48, func(c canvas, f, _ int) {
		c.ellipse(16, 36, 12, 11, snow)
		c.ellipse(16, 16, 8, 8, snow)
		c.rect(10, 2+f%2, 22, 8+f%2, dark)
	}},
	"level": {64, 96, paintTile},
	"landscape": {1280, 480, func(c canvas, _, _ int) {
		for x := 0; x < 1280; x++ {
			// Two overlapping ridges.
			h1 := 140 + (x*7%320-160)*(x*7%320-160)/400
			h2 := 200 + ((x+400)*3%480-240)*((x+400)*3%480-240)/600
			top := 480 - max(min(h1, 300), min(h2, 260))
			c.rect(x, top, x+1, 480, navy)
		}
	}},
}

// render draws a whole sprite sheet for name.
func render(name string) (*image.NRGBA, Grid, bool) {
	s, ok := shapes[name]
	if !ok {
		return nil, Grid{}, false
	}
	g := GridFor(name)
	img := image.NewNRGBA(image.Rect(0, 0, s.w*g.Cols, s.h*g.Rows))
	frames := g.Cols * g.Rows
	for f := 0; f < frames; f++ {
		c := canvas{img: img, ox: (f % g.Cols) * s.w, oy: (f / g.Cols) * s.h, w: s.w, h: s.h}
		s.paint(c, f, frames)
	}
	return img, g, true
}
