// Package boxing implements a target-punching game: targets pop up around
// the player and must be struck with either wrist before they fade.
// Consecutive hits build a combo; a target that fades unhit breaks it.
package boxing

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/physics"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// Target is one punchable disc.
type Target struct {
	Pos    core.Vec2
	Radius float64
	Life   float64 // Seconds left
	Total  float64 // Seconds at spawn
}

// Game implements Boxing.
type Game struct {
	cfg        config.BoxingConfig
	seed       int64
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	targets    []Target
	particles  *physics.Particles
	combo      physics.Combo
	score      int
	spawnTimer float64 // Seconds until the next spawn
	hits       int
	misses     int
}

// New creates a Boxing game with the given configuration and RNG seed.
func New(cfg config.BoxingConfig, seed int64) *Game {
	g := &Game{cfg: cfg, seed: seed}
	g.Init()
	return g
}

// Init clears targets, particles and the combo.
func (g *Game) Init() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.targets = g.targets[:0]
	if g.particles == nil {
		g.particles = physics.NewParticles(g.cfg.Particles.Gravity)
	}
	g.particles.Reset()
	g.combo.Reset()
	g.score = 0
	g.spawnTimer = 0
	g.hits = 0
	g.misses = 0
}

// Combo returns the current streak.
func (g *Game) Combo() int {
	return g.combo.Count
}

// Update advances the round by dt seconds and draws the frame.
func (g *Game) Update(s core.Surface, w, h int, p *pose.Pose, dt float64) float64 {
	var hands []core.Vec2
	for _, name := range []pose.Name{pose.LeftWrist, pose.RightWrist} {
		if v, ok := pose.MapUsable(p, name, g.cfg.Hit.Threshold, w, h); ok {
			hands = append(hands, v)
		}
	}

	if dt > 0 {
		g.step(dt, w, h, hands)
	}

	g.draw(s, w, h, hands)
	return float64(g.score)
}

func (g *Game) step(dt float64, w, h int, hands []core.Vec2) {
	kept := g.targets[:0]
	for _, t := range g.targets {
		if g.struck(t, hands) {
			g.score += g.combo.Hit()
			g.hits++
			g.particles.Burst(g.rng, t.Pos, g.cfg.Particles.Count, g.cfg.Particles.Speed,
				g.cfg.Particles.Life.Seconds(), core.ColorBrightYellow)
			continue
		}
		t.Life -= dt
		if t.Life <= 0 {
			// Expiry is the only thing that breaks a combo
			g.combo.Miss()
			g.misses++
			continue
		}
		kept = append(kept, t)
	}
	g.targets = kept

	g.spawnTimer -= dt
	if g.spawnTimer <= 0 {
		g.spawnTimer = g.difficulty.Interval(g.cfg.Targets.SpawnInterval, g.cfg.Targets.MinInterval, config.Progress{Score: g.score}).Seconds()
		if len(g.targets) < g.cfg.Targets.MaxAlive {
			g.spawn(w, h)
		}
	}

	g.particles.Update(dt)
}

// struck reports whether any hand is inside the target's hit radius.
func (g *Game) struck(t Target, hands []core.Vec2) bool {
	r := t.Radius * g.cfg.Hit.RadiusScale
	for _, hand := range hands {
		if physics.Hit(hand, t.Pos, r) {
			return true
		}
	}
	return false
}

// spawn adds a target at a random spot inside the margins.
func (g *Game) spawn(w, h int) {
	m := g.cfg.Targets.Margin
	fw, fh := float64(w), float64(h)
	x := m + g.rng.Float64()*max(fw-2*m, 0)
	y := m + g.rng.Float64()*max(fh-2*m, 0)
	life := g.cfg.Targets.Life.Seconds()
	g.targets = append(g.targets, Target{
		Pos:    core.Vec2{X: x, Y: y},
		Radius: g.cfg.Targets.Radius,
		Life:   life,
		Total:  life,
	})
}

func (g *Game) draw(s core.Surface, w, h int, hands []core.Vec2) {
	fw, fh := float64(w), float64(h)
	s.Clear(core.ColorBlack)
	s.Gradient(0, 0, fw, fh, core.ColorDarkGray, core.ColorBlack)

	for _, t := range g.targets {
		frac := t.Life / t.Total
		c := core.ColorRed
		switch {
		case frac < 0.25:
			c = core.ColorYellow
		case frac < 0.5:
			c = core.ColorOrange
		}
		s.FillCircle(t.Pos.X, t.Pos.Y, t.Radius, c)
		s.StrokeCircle(t.Pos.X, t.Pos.Y, t.Radius*(1+frac), 2, core.ColorWhite)
	}

	g.particles.Draw(s)

	for _, hand := range hands {
		s.FillCircle(hand.X, hand.Y, 14, core.ColorBrightCyan)
	}

	s.Text(12, 8, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
	if g.combo.Count > 1 {
		s.Text(12, 28, fmt.Sprintf("Combo x%d", g.combo.Count), core.ColorBrightYellow)
	}
	if g.combo.Best > 1 {
		s.Text(fw-140, 8, fmt.Sprintf("Best x%d", g.combo.Best), core.ColorGray)
	}
	if len(hands) == 0 {
		s.Text(fw/2-70, fh-40, "Show your hands", core.ColorGray)
	}
}
