package santa

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sleigh"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
)

// hudRows is the number of screen rows above the play area.
const hudRows = 1

// Visual characters for rendering
const (
	LandscapeChar = '░'
	TerrainChar   = '█'
	BodyChar      = '▓'
	StarChar      = '*'
	BigStarChar   = '✦'
	SnowballChar  = '●'
	ShieldChar    = '·'
	FinishChar    = '▌'
)

// glyph picks the rune for a sprite; color 0 means sample the pixel.
type glyph struct {
	r       rune
	color   core.Color
	overlay bool // only paint empty or landscape cells
}

var glyphs = map[string]glyph{
	"landscape":      {r: LandscapeChar},
	"level":          {r: TerrainChar},
	"star":           {r: StarChar},
	"smallStar":      {r: StarChar},
	"drunkStar":      {r: StarChar},
	"smallDrunkStar": {r: StarChar},
	"bigStar":        {r: BigStarChar, color: core.ColorBrightYellow},
	"snowball":       {r: SnowballChar, color: core.ColorBrightWhite},
	"shield":         {r: ShieldChar, color: core.ColorBrightCyan, overlay: true},
	"finish":         {r: FinishChar},
}

func glyphFor(s *sprite.Sprite) glyph {
	if gl, ok := glyphs[s.Name()]; ok {
		return gl
	}
	return glyph{r: BodyChar}
}

// palette approximates each terminal color in RGB.
var palette = []struct {
	c       core.Color
	r, g, b int
}{
	{core.ColorRed, 205, 0, 0},
	{core.ColorGreen, 0, 175, 0},
	{core.ColorYellow, 205, 205, 0},
	{core.ColorBlue, 0, 0, 238},
	{core.ColorMagenta, 175, 0, 175},
	{core.ColorCyan, 0, 205, 205},
	{core.ColorWhite, 229, 229, 229},
	{core.ColorBrightRed, 255, 0, 0},
	{core.ColorBrightGreen, 0, 255, 0},
	{core.ColorBrightYellow, 255, 255, 95},
	{core.ColorBrightBlue, 92, 92, 255},
	{core.ColorBrightMagenta, 255, 0, 255},
	{core.ColorBrightCyan, 95, 255, 255},
	{core.ColorBrightWhite, 255, 255, 255},
	{core.ColorOrange, 255, 135, 0},
	{core.ColorGray, 128, 128, 128},
	{core.ColorBrown, 135, 95, 0},
	{core.ColorPink, 255, 135, 175},
	{core.ColorNavy, 0, 0, 95},
}

// nearestColor maps a pixel to the closest palette entry.
func nearestColor(c color.Color) core.Color {
	r, g, b, _ := c.RGBA()
	pr, pg, pb := int(r>>8), int(g>>8), int(b>>8)
	best, bestDist := core.ColorDefault, math.MaxInt
	for _, p := range palette {
		dr, dg, db := pr-p.r, pg-p.g, pb-p.b
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = p.c, d
		}
	}
	return best
}

// viewport scales canvas pixels onto screen cells below the HUD.
type viewport struct {
	dst    *core.Screen
	rows   int
	sx, sy float64 // canvas pixels per cell
}

func newViewport(dst *core.Screen, canvas core.Vec2) viewport {
	rows := max(dst.Height()-hudRows, 1)
	return viewport{
		dst:  dst,
		rows: rows,
		sx:   canvas.X / float64(max(dst.Width(), 1)),
		sy:   canvas.Y / float64(rows),
	}
}

// draw samples the sprite at each covered cell centre. Sprites smaller
// than a cell collapse to one glyph at their centre.
func (v viewport) draw(s *sprite.Sprite, pos core.Vec2, frame float64) {
	gl := glyphFor(s)
	fr := s.FrameRect(frame)
	img := s.Image()
	fw, fh := float64(s.FrameWidth()), float64(s.FrameHeight())

	if fw < v.sx || fh < v.sy {
		lx, ly, ok := firstOpaque(s, frame)
		if !ok {
			return
		}
		c := pos.Add(s.Size().Scale(0.5))
		v.put(int(math.Floor(c.X/v.sx)), int(math.Floor(c.Y/v.sy)), img.At(fr.Min.X+lx, fr.Min.Y+ly), gl)
		return
	}

	x0 := max(int(math.Floor(pos.X/v.sx)), 0)
	x1 := min(int(math.Ceil((pos.X+fw)/v.sx)), v.dst.Width())
	y0 := max(int(math.Floor(pos.Y/v.sy)), 0)
	y1 := min(int(math.Ceil((pos.Y+fh)/v.sy)), v.rows)
	for cy := y0; cy < y1; cy++ {
		ly := int(math.Floor((float64(cy)+0.5)*v.sy - pos.Y))
		for cx := x0; cx < x1; cx++ {
			lx := int(math.Floor((float64(cx)+0.5)*v.sx - pos.X))
			if !s.OpaqueInFrame(frame, lx, ly) {
				continue
			}
			v.put(cx, cy, img.At(fr.Min.X+lx, fr.Min.Y+ly), gl)
		}
	}
}

// firstOpaque returns the frame centre if it is opaque, else the first
// opaque pixel in scan order.
func firstOpaque(s *sprite.Sprite, frame float64) (int, int, bool) {
	w, h := s.FrameWidth(), s.FrameHeight()
	if s.OpaqueInFrame(frame, w/2, h/2) {
		return w / 2, h / 2, true
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if s.OpaqueInFrame(frame, x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func (v viewport) put(cx, cy int, c color.Color, gl glyph) {
	if cx < 0 || cy < 0 || cx >= v.dst.Width() || cy >= v.rows {
		return
	}
	y := cy + hudRows
	if gl.overlay {
		if r := v.dst.Get(cx, y); r != ' ' && r != LandscapeChar {
			return
		}
	}
	col := gl.color
	if col == core.ColorDefault {
		col = nearestColor(c)
	}
	v.dst.SetColor(cx, y, gl.r, col)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if !g.ready {
		msg := "Loading..."
		if g.err != nil {
			msg = "santa: " + g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, core.ColorBrightRed)
		return
	}

	now := g.clock.Now()
	v := newViewport(dst, g.cfg.Canvas)

	// Landscape wraps: draw the strip twice.
	x := -g.landscape.Offset()
	v.draw(g.backdrop, core.V(x, 0), 0)
	v.draw(g.backdrop, core.V(x+g.landscape.Width, 0), 0)

	tiles := g.level.TileSprite()
	for t := range g.level.VisibleTerrain() {
		v.draw(tiles, g.level.ScreenPosition(g.level.TilePosition(t.X, t.Y)), t.Frame)
	}

	g.drawVisuals(v, g.npcs.Visuals())
	g.drawVisuals(v, g.gifts.Visuals())
	g.drawVisuals(v, g.sleigh.Visuals(now))

	g.drawHUD(dst, now)

	switch {
	case g.mode == ModeMenu:
		g.drawMenu(dst)
	case g.mode.Over():
		g.drawOutcome(dst)
	case g.sleigh.Mode() == sleigh.CountingDown:
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf(" %d ", g.sleigh.Countdown()), core.ColorBrightYellow)
	}
}

func (g *Game) drawVisuals(v viewport, vis []sprite.Visual) {
	for _, vi := range vis {
		if vi.Sprite == nil {
			continue
		}
		pos := vi.Position
		if !vi.Screen {
			pos = g.level.ScreenPosition(pos)
		}
		v.draw(vi.Sprite, pos, vi.Frame)
	}
}

// drawHUD renders the status line.
func (g *Game) drawHUD(dst *core.Screen, now time.Time) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	if g.mode == ModeMenu {
		dst.DrawTextColor(1, 0, "SANTA RACER", core.ColorBrightRed)
		return
	}

	left := fmt.Sprintf(" Gifts %d  Damage %d", int(g.score.GiftPoints()), int(g.score.DamagePoints()))
	if g.cfg.Score.MaxDamage > 0 {
		left += fmt.Sprintf("/%d", int(g.cfg.Score.MaxDamage))
	}
	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)

	timeText := fmt.Sprintf("%s  %s ", strings.ToUpper(string(g.difficulty)), clockText(g.score.RemainingTime()))
	timeColor := core.ColorBrightWhite
	if g.score.RemainingTime() < 30*time.Second {
		timeColor = core.ColorBrightRed
	}
	dst.DrawTextColor(dst.Width()-len([]rune(timeText)), 0, timeText, timeColor)

	var effects []string
	for _, e := range []sleigh.Effect{sleigh.EffectBonus, sleigh.EffectShield, sleigh.EffectDrunk} {
		if g.sleigh.Active(e) {
			effects = append(effects, fmt.Sprintf("%s %ds", e, int(math.Ceil(g.sleigh.Remaining(e, now).Seconds()))))
		}
	}
	if len(effects) > 0 {
		dst.DrawTextColor(len([]rune(left))+2, 0, strings.Join(effects, " "), core.ColorBrightCyan)
	}
}

// clockText formats a duration as m:ss.
func clockText(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

var helpLines = []string{
	"Deliver gifts down the chimneys and reach the finish flag.",
	"",
	"E / F5  start easy      H / F6  start hard",
	"Arrows / WASD  steer    Space  drop a gift",
	"Esc  back to menu       Q  quit",
	"",
	"Balloons: green cash, red bonus, pink heals,",
	"blue shield, purple wine turns the controls.",
	"Angels, clouds, goblins and snowmen hurt.",
}

func (g *Game) drawMenu(dst *core.Screen) {
	g.drawBox(dst, "SANTA RACER", helpLines, core.ColorBrightRed)
}

func (g *Game) drawOutcome(dst *core.Screen) {
	var title string
	tone := core.ColorBrightRed
	switch g.mode {
	case ModeWon:
		title = "MERRY CHRISTMAS! YOU MADE IT"
		tone = core.ColorBrightGreen
	case ModeLostDueToTime:
		title = "TIME IS UP"
	case ModeLostDueToDamage:
		title = "THE SLEIGH IS WRECKED"
	}
	lines := []string{
		fmt.Sprintf("Gifts %d  Damage %d", int(g.score.GiftPoints()), int(g.score.DamagePoints())),
		fmt.Sprintf("Score: %d", g.score.Final()),
		"",
		"Enter: play again  |  Esc: menu",
	}
	g.drawBox(dst, title, lines, tone)
}

// drawBox draws a framed message in the center of the screen.
func (g *Game) drawBox(dst *core.Screen, title string, lines []string, c core.Color) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, c)
	for i, l := range lines {
		dst.DrawTextColor(boxX+2, boxY+3+i, l, core.ColorWhite)
	}
}
