package physics

import "github.com/vovakirdan/motion-arcade/internal/core"

// Camera is a pinhole projection of world space onto the surface.
// Points at Z=0 are drawn at scale 1; farther points shrink toward (CX, CY).
type Camera struct {
	Focal          float64
	CX, CY         float64 // Vanishing point on the surface
	VerticalOffset float64 // World Y of the camera above the floor
}

// Scale returns focal / (focal + z). Points at or behind the camera plane
// report ok=false.
func (c Camera) Scale(z float64) (float64, bool) {
	d := c.Focal + z
	if d <= 0 {
		return 0, false
	}
	return c.Focal / d, true
}

// Project maps a world point to surface pixels and returns the scale used.
func (c Camera) Project(p Vec3) (core.Vec2, float64, bool) {
	s, ok := c.Scale(p.Z)
	if !ok {
		return core.Vec2{}, 0, false
	}
	return core.Vec2{
		X: c.CX + p.X*s,
		Y: c.CY + (p.Y+c.VerticalOffset)*s,
	}, s, true
}
