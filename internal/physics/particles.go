package physics

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/motion-arcade/internal/core"
)

// Particle is one spark of a burst.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Life  float64 // Seconds left
	Total float64 // Seconds at spawn
	Color core.Color
}

// Particles is a pool of short-lived sparks falling under gravity.
type Particles struct {
	Gravity float64
	items   []Particle
}

// NewParticles creates an empty pool.
func NewParticles(gravity float64) *Particles {
	return &Particles{Gravity: gravity, items: make([]Particle, 0, 64)}
}

// Burst emits n particles from at, spread evenly around the circle with
// speeds jittered by rng.
func (p *Particles) Burst(rng *rand.Rand, at core.Vec2, n int, speed, life float64, c core.Color) {
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + rng.Float64()*0.5
		v := speed * (0.5 + rng.Float64())
		p.items = append(p.items, Particle{
			Pos:   at,
			Vel:   core.Vec2{X: math.Cos(angle) * v, Y: math.Sin(angle) * v},
			Life:  life,
			Total: life,
			Color: c,
		})
	}
}

// Update moves every particle and drops the expired ones.
func (p *Particles) Update(dt float64) {
	if dt <= 0 {
		return
	}
	alive := p.items[:0]
	for _, it := range p.items {
		it.Life -= dt
		if it.Life <= 0 {
			continue
		}
		it.Vel.Y += p.Gravity * dt
		it.Pos = it.Pos.Add(it.Vel.Scale(dt))
		alive = append(alive, it)
	}
	p.items = alive
}

// Draw renders the live particles; they shrink as they age.
func (p *Particles) Draw(s core.Surface) {
	for _, it := range p.items {
		r := 1 + 3*it.Life/it.Total
		s.FillCircle(it.Pos.X, it.Pos.Y, r, it.Color)
	}
}

// Len returns the number of live particles.
func (p *Particles) Len() int {
	return len(p.items)
}

// Items returns the live particles.
func (p *Particles) Items() []Particle {
	return p.items
}

// Reset drops every particle.
func (p *Particles) Reset() {
	p.items = p.items[:0]
}
