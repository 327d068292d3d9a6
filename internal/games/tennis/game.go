// Package tennis implements a pseudo-3D rally against a court opponent.
// The ball lives in world space and is drawn through a pinhole camera; the
// player's right wrist is the racket.
package tennis

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/physics"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// missDepth is how far behind the player the ball may travel before the
// point is lost.
const missDepth = 150

// Game implements Tennis.
type Game struct {
	cfg        config.TennisConfig
	seed       int64
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	ball       physics.Body
	score      int // Successful opponent returns
	bounces    int
	failPoints int
	failed     bool
	shake      float64
	swings     int
}

// New creates a Tennis game with the given configuration and RNG seed.
func New(cfg config.TennisConfig, seed int64) *Game {
	g := &Game{cfg: cfg, seed: seed}
	g.Init()
	return g
}

// Init restores the starting state and serves a new ball.
func (g *Game) Init() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.score = 0
	g.bounces = 0
	g.failPoints = 0
	g.failed = false
	g.shake = 0
	g.swings = 0
	g.serve()
}

// Finished reports whether the point has been lost.
func (g *Game) Finished() bool {
	return g.failed
}

// serve puts the ball at the opponent's end heading toward the player.
func (g *Game) serve() {
	g.ball = physics.Body{
		Pos: physics.Vec3{X: 0, Y: -g.cfg.Ball.ServeHeight, Z: g.cfg.AI.FarZ},
		Vel: physics.Vec3{Y: g.cfg.AI.ReturnVY, Z: -g.cfg.Ball.ServeSpeed},
	}
	g.ball.Vel.X = g.aimLateral()
}

// camera builds the projection for a surface, including bounce shake.
func (g *Game) camera(w, h int) physics.Camera {
	cam := physics.Camera{
		Focal:          g.cfg.Camera.Focal,
		CX:             float64(w) / 2,
		CY:             g.cfg.Camera.Horizon * float64(h),
		VerticalOffset: g.cfg.Camera.VerticalOffset,
	}
	if g.shake > 0 {
		cam.CX += (g.rng.Float64()*2 - 1) * g.shake
		cam.CY += (g.rng.Float64()*2 - 1) * g.shake
	}
	return cam
}

// Update advances the rally by dt seconds and draws the frame.
func (g *Game) Update(s core.Surface, w, h int, p *pose.Pose, dt float64) float64 {
	cam := g.camera(w, h)
	racket, haveRacket := pose.MapUsable(p, pose.RightWrist, g.cfg.Racket.Threshold, w, h)

	if dt > 0 && !g.failed {
		g.step(dt, cam, racket, haveRacket)
	}

	g.draw(s, w, h, cam, racket, haveRacket)
	return float64(g.score)
}

func (g *Game) step(dt float64, cam physics.Camera, racket core.Vec2, haveRacket bool) {
	g.ball.Integrate(g.cfg.Ball.Gravity, dt)

	if b := g.ball.BounceFloor(0, physics.Restitution, g.cfg.Ball.NoiseThreshold); b.Contact {
		g.bounces++
		if b.Loud {
			g.shake = g.cfg.Camera.ShakeAmount
		}
		if g.outOfBounds() {
			g.failPoint()
			return
		}
	}

	switch {
	case g.ball.Pos.Z < -missDepth:
		g.failPoint()
		return
	case g.ball.Pos.Z > g.cfg.AI.FarZ && g.ball.Vel.Z > 0:
		g.aiReturn()
	case haveRacket && g.ball.Vel.Z < 0 && g.ball.Pos.Z < g.cfg.Racket.HitDepth:
		if pos, _, ok := cam.Project(g.ball.Pos); ok && physics.Hit(racket, pos, g.cfg.Racket.Radius) {
			g.swing(pos, racket)
		}
	}

	g.shake = math.Max(0, g.shake-g.cfg.Camera.ShakeDecay*dt)
}

// outOfBounds reports whether the ball is outside the court.
func (g *Game) outOfBounds() bool {
	c := g.cfg.Court
	return math.Abs(g.ball.Pos.X) > c.HalfWidth || g.ball.Pos.Z < 0 || g.ball.Pos.Z > c.Length
}

// failPoint ends the rally. Only the first call has any effect.
func (g *Game) failPoint() {
	if g.failed {
		return
	}
	g.failed = true
	g.failPoints++
}

// swing sends the ball back toward the opponent. Off-center contact adds
// lateral speed in the direction of the miss.
func (g *Game) swing(ball, racket core.Vec2) {
	r := g.cfg.Racket
	g.ball.Vel.Y = r.SwingVY
	g.ball.Vel.Z = r.SwingVZ
	limit := 2 * g.cfg.AI.MaxLateral
	g.ball.Vel.X = core.ClampF((ball.X-racket.X)*r.Aim, -limit, limit)
	g.swings++
}

// aiReturn is the opponent's deterministic reply: a fixed lob upward, the
// incoming depth velocity reversed and scaled by the score, and a lateral
// aim inside the court.
func (g *Game) aiReturn() {
	vz := math.Abs(g.ball.Vel.Z) * g.returnScale()
	if limit := g.cfg.AI.MaxReturnSpeed; limit > 0 {
		vz = math.Min(vz, limit)
	}
	g.ball.Vel.Y = g.cfg.AI.ReturnVY
	g.ball.Vel.Z = -vz
	g.ball.Vel.X = g.aimLateral()
	g.score++
}

// returnScale is the factor applied to the incoming depth speed. It grows
// by return_gain per point and, with difficulty enabled, by the preset's
// speed multiplier on top.
func (g *Game) returnScale() float64 {
	ramp := 1 + math.Max(g.cfg.AI.ReturnGain, 0)*float64(g.score)
	return ramp * g.difficulty.Speed(1, config.Progress{Score: g.score})
}

// aimLateral picks a landing spot inside the court and returns the lateral
// speed that reaches it by the time the ball lands.
func (g *Game) aimLateral() float64 {
	target := (g.rng.Float64()*2 - 1) * 0.8 * g.cfg.Court.HalfWidth
	t := landingTime(g.ball.Pos.Y, g.ball.Vel.Y, g.cfg.Ball.Gravity)
	limit := g.cfg.AI.MaxLateral
	return core.ClampF((target-g.ball.Pos.X)/t, -limit, limit)
}

// landingTime solves y + vy*t + g*t^2/2 = 0 for the first positive t.
func landingTime(y, vy, gravity float64) float64 {
	if gravity <= 0 {
		return 1
	}
	disc := vy*vy - 2*gravity*y
	if disc < 0 {
		return 1
	}
	t := (-vy + math.Sqrt(disc)) / gravity
	if t <= 0 {
		return 1
	}
	return t
}

// drawable is one depth-sorted element of the scene.
type drawable struct {
	z    float64
	draw func()
}

func (g *Game) draw(s core.Surface, w, h int, cam physics.Camera, racket core.Vec2, haveRacket bool) {
	fw, fh := float64(w), float64(h)
	court := g.cfg.Court

	s.Clear(core.ColorBlack)
	s.Gradient(0, 0, fw, cam.CY, core.ColorDarkGray, core.ColorBlue)

	g.drawCourt(s, cam)

	items := []drawable{
		{z: court.NetZ, draw: func() { g.drawNet(s, cam) }},
		{z: g.ball.Pos.Z + 0.5, draw: func() { g.drawShadow(s, cam) }},
		{z: g.ball.Pos.Z, draw: func() { g.drawBall(s, cam) }},
	}
	// Far to near
	sort.SliceStable(items, func(i, j int) bool { return items[i].z > items[j].z })
	for _, it := range items {
		it.draw()
	}

	if haveRacket {
		s.StrokeCircle(racket.X, racket.Y, g.cfg.Racket.Radius, 3, core.ColorBrightYellow)
		s.FillCircle(racket.X, racket.Y, 6, core.ColorBrightYellow)
	} else {
		s.Text(fw/2-90, fh-40, "Raise your right hand", core.ColorGray)
	}

	s.Text(12, 8, fmt.Sprintf("Rally: %d", g.score), core.ColorBrightWhite)
	s.Text(fw-120, 8, fmt.Sprintf("Bounces: %d", g.bounces), core.ColorGray)
	if g.failed {
		s.Text(fw/2-50, fh/2, "POINT LOST", core.ColorBrightRed)
	}
}

func (g *Game) drawCourt(s core.Surface, cam physics.Camera) {
	c := g.cfg.Court
	corners := []physics.Vec3{
		{X: -c.HalfWidth, Z: 0},
		{X: c.HalfWidth, Z: 0},
		{X: c.HalfWidth, Z: c.Length},
		{X: -c.HalfWidth, Z: c.Length},
	}
	pts := make([]core.Vec2, 0, len(corners))
	for _, p := range corners {
		if v, _, ok := cam.Project(p); ok {
			pts = append(pts, v)
		}
	}
	s.FillPolygon(pts, core.ColorCourt)

	line := func(a, b physics.Vec3) {
		pa, _, okA := cam.Project(a)
		pb, _, okB := cam.Project(b)
		if okA && okB {
			s.Line(pa.X, pa.Y, pb.X, pb.Y, 2, core.ColorWhite)
		}
	}
	for i := range corners {
		line(corners[i], corners[(i+1)%len(corners)])
	}
	line(physics.Vec3{Z: 0}, physics.Vec3{Z: c.Length})
}

func (g *Game) drawNet(s core.Surface, cam physics.Camera) {
	c := g.cfg.Court
	bl, _, ok1 := cam.Project(physics.Vec3{X: -c.HalfWidth, Z: c.NetZ})
	br, _, ok2 := cam.Project(physics.Vec3{X: c.HalfWidth, Z: c.NetZ})
	tl, _, ok3 := cam.Project(physics.Vec3{X: -c.HalfWidth, Y: -c.NetHeight, Z: c.NetZ})
	tr, _, ok4 := cam.Project(physics.Vec3{X: c.HalfWidth, Y: -c.NetHeight, Z: c.NetZ})
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}
	s.FillPolygon([]core.Vec2{tl, tr, br, bl}, core.ColorGray)
	s.Line(tl.X, tl.Y, tr.X, tr.Y, 2, core.ColorBrightWhite)
}

func (g *Game) drawShadow(s core.Surface, cam physics.Camera) {
	floor := g.ball.Pos
	floor.Y = 0
	if p, scale, ok := cam.Project(floor); ok {
		s.FillCircle(p.X, p.Y, g.cfg.Ball.Radius*scale, core.ColorDarkGray)
	}
}

func (g *Game) drawBall(s core.Surface, cam physics.Camera) {
	if p, scale, ok := cam.Project(g.ball.Pos); ok {
		s.FillCircle(p.X, p.Y, g.cfg.Ball.Radius*scale, core.ColorBrightYellow)
	}
}
