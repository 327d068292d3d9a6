// Package physics holds the simulation primitives the games share:
// circular hit-testing, projectile integration with a bouncing floor,
// a pinhole perspective camera, combo scoring and particle bursts.
// Everything here is deterministic given its inputs and dt.
package physics

import (
	"math"

	"github.com/vovakirdan/motion-arcade/internal/core"
)

// Restitution is the share of vertical speed a ball keeps after a bounce.
const Restitution = 0.75

// Vec3 is a position or velocity in world space.
// X is lateral, Y is vertical (positive down, floor at Y=0 for the court),
// Z is depth away from the player.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v * k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

// Hit reports whether two points are closer than r.
func Hit(a, b core.Vec2, r float64) bool {
	return core.Dist(a, b) < r
}

// Reflect returns the vertical velocity after a floor contact.
func Reflect(vy, restitution float64) float64 {
	return -restitution * vy
}

// Body is a point mass moving under gravity.
type Body struct {
	Pos Vec3
	Vel Vec3
}

// Integrate advances the body by dt seconds. Gravity is added to the
// vertical velocity before the position step. A zero dt changes nothing.
func (b *Body) Integrate(gravity, dt float64) {
	if dt <= 0 {
		return
	}
	b.Vel.Y += gravity * dt
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// Bounce describes a floor contact.
type Bounce struct {
	Contact bool    // The body reached the floor this step
	Speed   float64 // Absolute rebound speed
	Loud    bool    // Rebound faster than the noise threshold
}

// BounceFloor handles contact with a floor at floorY. A body below the floor
// and still moving down is put back on it and its vertical velocity is
// reflected with the given restitution.
func (b *Body) BounceFloor(floorY, restitution, noise float64) Bounce {
	if b.Pos.Y < floorY || b.Vel.Y <= 0 {
		return Bounce{}
	}
	b.Pos.Y = floorY
	b.Vel.Y = Reflect(b.Vel.Y, restitution)
	speed := math.Abs(b.Vel.Y)
	return Bounce{Contact: true, Speed: speed, Loud: speed > noise}
}
