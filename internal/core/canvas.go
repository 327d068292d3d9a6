package core

import "math"

// Glyphs used when rasterizing surface operations into character cells.
const (
	GlyphSolid    = '█'
	GlyphShade    = '▒'
	GlyphLight    = '░'
	GlyphDot      = '●'
	GlyphRing     = 'o'
	GlyphHLine    = '─'
	GlyphVLine    = '│'
	GlyphDiagDown = '╲'
	GlyphDiagUp   = '╱'
)

// Canvas rasterizes Surface operations onto a character Screen.
// The logical surface is stretched over the whole screen, so one cell covers
// (logicalW/screenW) x (logicalH/screenH) logical pixels. A cell is painted
// when its center lies inside the shape; shapes smaller than a cell still
// paint the cell under their center so small entities never vanish.
type Canvas struct {
	screen *Screen
	w, h   float64
}

var _ Surface = (*Canvas)(nil)

// NewCanvas wraps a screen with a logical coordinate space.
func NewCanvas(screen *Screen, logicalW, logicalH int) *Canvas {
	c := &Canvas{screen: screen}
	c.SetLogicalSize(logicalW, logicalH)
	return c
}

// SetLogicalSize changes the logical extent mapped onto the screen.
func (c *Canvas) SetLogicalSize(w, h int) {
	c.w = math.Max(float64(w), 1)
	c.h = math.Max(float64(h), 1)
}

// Screen returns the underlying cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

func (c *Canvas) cellSize() (float64, float64) {
	return c.w / float64(c.screen.Width()), c.h / float64(c.screen.Height())
}

func (c *Canvas) empty() bool {
	return c.screen.Width() == 0 || c.screen.Height() == 0
}

// toCell returns the cell containing a logical point.
func (c *Canvas) toCell(x, y float64) (int, int) {
	cw, ch := c.cellSize()
	return int(math.Floor(x / cw)), int(math.Floor(y / ch))
}

// cellCenter returns the logical position of a cell's center.
func (c *Canvas) cellCenter(col, row int) Vec2 {
	cw, ch := c.cellSize()
	return Vec2{(float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch}
}

// cellSpan returns the inclusive cell range covering a logical box.
func (c *Canvas) cellSpan(x0, y0, x1, y1 float64) (c0, r0, c1, r1 int) {
	c0, r0 = c.toCell(x0, y0)
	c1, r1 = c.toCell(x1, y1)
	c0 = Clamp(c0, 0, c.screen.Width()-1)
	c1 = Clamp(c1, 0, c.screen.Width()-1)
	r0 = Clamp(r0, 0, c.screen.Height()-1)
	r1 = Clamp(r1, 0, c.screen.Height()-1)
	return c0, r0, c1, r1
}

// fill paints every cell whose center satisfies inside, falling back to the
// cell under (fx, fy) when nothing matched.
func (c *Canvas) fill(x0, y0, x1, y1, fx, fy float64, glyph rune, col Color, inside func(Vec2) bool) {
	if c.empty() {
		return
	}
	c0, r0, c1, r1 := c.cellSpan(x0, y0, x1, y1)
	painted := false
	for row := r0; row <= r1; row++ {
		for cc := c0; cc <= c1; cc++ {
			if inside(c.cellCenter(cc, row)) {
				c.screen.Set(cc, row, glyph, col)
				painted = true
			}
		}
	}
	if !painted {
		cx, cy := c.toCell(fx, fy)
		c.screen.Set(cx, cy, glyph, col)
	}
}

// Clear wipes the screen. Only a non-default background is drawn as shade.
func (c *Canvas) Clear(bg Color) {
	c.screen.Clear()
	if bg != ColorDefault && bg != ColorBlack {
		c.screen.Fill(GlyphLight, bg)
	}
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.fill(x, y, x+w, y+h, x+w/2, y+h/2, GlyphSolid, col, func(p Vec2) bool {
		return p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h
	})
}

// FillCircle fills a disc.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 {
		return
	}
	center := Vec2{cx, cy}
	glyph := rune(GlyphSolid)
	cw, _ := c.cellSize()
	if r < cw*1.5 {
		glyph = GlyphDot
	}
	c.fill(cx-r, cy-r, cx+r, cy+r, cx, cy, glyph, col, func(p Vec2) bool {
		return Dist(p, center) < r
	})
}

// StrokeCircle outlines a circle; the ring is at least one cell thick.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col Color) {
	if r <= 0 {
		return
	}
	center := Vec2{cx, cy}
	cw, ch := c.cellSize()
	half := math.Max(width/2, math.Max(cw, ch)/2)
	c.fill(cx-r-half, cy-r-half, cx+r+half, cy+r+half, cx, cy, GlyphRing, col, func(p Vec2) bool {
		return math.Abs(Dist(p, center)-r) <= half
	})
}

// Line draws a segment by stepping through cell space.
func (c *Canvas) Line(x0, y0, x1, y1, _ float64, col Color) {
	if c.empty() {
		return
	}
	cx0, cy0 := c.toCell(x0, y0)
	cx1, cy1 := c.toCell(x1, y1)
	dx, dy := cx1-cx0, cy1-cy0

	glyph := rune(GlyphHLine)
	switch {
	case dx == 0 && dy == 0:
		glyph = GlyphDot
	case absInt(dy)*2 < absInt(dx):
		glyph = GlyphHLine
	case absInt(dx)*2 < absInt(dy):
		glyph = GlyphVLine
	case (dx > 0) == (dy > 0):
		glyph = GlyphDiagDown
	default:
		glyph = GlyphDiagUp
	}

	steps := Max(absInt(dx), absInt(dy))
	if steps == 0 {
		c.screen.Set(cx0, cy0, glyph, col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(cx0) + t*float64(dx)))
		y := int(math.Round(float64(cy0) + t*float64(dy)))
		c.screen.Set(x, y, glyph, col)
	}
}

// FillPolygon fills a polygon using the even-odd rule.
func (c *Canvas) FillPolygon(pts []Vec2, col Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	c.fill(minX, minY, maxX, maxY, (minX+maxX)/2, (minY+maxY)/2, GlyphShade, col, func(p Vec2) bool {
		return PointInPolygon(p, pts)
	})
}

// Gradient fills a rectangle; cell backends only have two tones, so the
// upper half takes the top color and the lower half the bottom one.
func (c *Canvas) Gradient(x, y, w, h float64, top, bottom Color) {
	if w <= 0 || h <= 0 {
		return
	}
	mid := y + h/2
	c.fill(x, y, x+w, y+h, x+w/2, y+h/2, GlyphLight, top, func(p Vec2) bool {
		return p.X >= x && p.X < x+w && p.Y >= y && p.Y < mid
	})
	c.fill(x, mid, x+w, y+h, x+w/2, mid+h/4, GlyphLight, bottom, func(p Vec2) bool {
		return p.X >= x && p.X < x+w && p.Y >= mid && p.Y < y+h
	})
}

// Text writes a string starting at the cell containing (x, y).
func (c *Canvas) Text(x, y float64, s string, col Color) {
	if c.empty() {
		return
	}
	cx, cy := c.toCell(x, y)
	c.screen.DrawText(cx, cy, s, col)
}

// PointInPolygon reports whether p lies inside pts (even-odd rule).
func PointInPolygon(p Vec2, pts []Vec2) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
