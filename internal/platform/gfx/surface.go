// Package gfx hosts an arcade session in an ebiten window. ebiten's Update
// paces the orchestrator's frame loop, and Draw replays the latest
// recorded frame onto the window image.
package gfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/motion-arcade/internal/core"
)

// gradientBands is how many strips approximate a vertical gradient.
const gradientBands = 24

// ImageSurface draws core.Surface calls onto an ebiten image. The window
// layout equals the logical surface size, so coordinates pass through.
//
// Clear paints the background with the given opacity so the camera
// backdrop underneath shows through games with a low CamOpacity.
type ImageSurface struct {
	dst        *ebiten.Image
	clearAlpha float64
}

var _ core.Surface = (*ImageSurface)(nil)

// NewImageSurface wraps dst. camOpacity is the share of the backdrop that
// stays visible after Clear.
func NewImageSurface(dst *ebiten.Image, camOpacity float64) *ImageSurface {
	return &ImageSurface{dst: dst, clearAlpha: 1 - core.ClampF(camOpacity, 0, 1)}
}

func rgba(c core.Color) color.RGBA {
	return c.RGBA()
}

func (s *ImageSurface) Clear(bg core.Color) {
	b := s.dst.Bounds()
	c := rgba(bg)
	c.A = uint8(float64(c.A) * s.clearAlpha)
	// Premultiplied alpha.
	c.R = uint8(float64(c.R) * s.clearAlpha)
	c.G = uint8(float64(c.G) * s.clearAlpha)
	c.B = uint8(float64(c.B) * s.clearAlpha)
	vector.DrawFilledRect(s.dst, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s *ImageSurface) FillRect(x, y, w, h float64, c core.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), rgba(c), false)
}

func (s *ImageSurface) FillCircle(cx, cy, r float64, c core.Color) {
	if r <= 0 {
		return
	}
	vector.FillCircle(s.dst, float32(cx), float32(cy), float32(r), rgba(c), true)
}

func (s *ImageSurface) StrokeCircle(cx, cy, r, width float64, c core.Color) {
	if r <= 0 {
		return
	}
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), float32(width), rgba(c), true)
}

func (s *ImageSurface) Line(x0, y0, x1, y1, width float64, c core.Color) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), rgba(c), true)
}

func (s *ImageSurface) FillPolygon(pts []core.Vec2, c core.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	drawOp := &vector.DrawPathOptions{AntiAlias: true}
	drawOp.ColorScale.ScaleWithColor(rgba(c))
	vector.FillPath(s.dst, &path, nil, drawOp)
}

func (s *ImageSurface) Gradient(x, y, w, h float64, top, bottom core.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	a, b := rgba(top), rgba(bottom)
	band := h / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := (float64(i) + 0.5) / gradientBands
		c := color.RGBA{
			R: lerp8(a.R, b.R, t),
			G: lerp8(a.G, b.G, t),
			B: lerp8(a.B, b.B, t),
			A: lerp8(a.A, b.A, t),
		}
		// Overlap by one pixel so bands never leave seams.
		vector.DrawFilledRect(s.dst, float32(x), float32(y+float64(i)*band), float32(w), float32(band+1), c, false)
	}
}

// Text uses the debug font, which only draws in white; c is ignored.
func (s *ImageSurface) Text(x, y float64, str string, _ core.Color) {
	ebitenutil.DebugPrintAt(s.dst, str, int(x), int(y))
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
