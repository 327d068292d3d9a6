// Package runner implements an endless runner steered by the head: raise
// your nose above the jump line to leap over the obstacles.
package runner

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/physics"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// framesPerSecond converts elapsed time into the frame count the score tracks.
const framesPerSecond = 60

// Game implements the Runner.
type Game struct {
	cfg        config.RunnerConfig
	seed       int64
	difficulty *config.DifficultyManager
	obstacles  *ObstacleManager

	playerY   float64 // Height above ground, negative = up
	playerVel float64
	grounded  bool
	noseAbove bool    // Nose was above the jump line on the last usable frame
	frames    float64 // Elapsed frames at 60 Hz
	jumps     int
	gameOver  bool
	legPhase  float64
}

// New creates a Runner with the given configuration and RNG seed.
func New(cfg config.RunnerConfig, seed int64) *Game {
	g := &Game{cfg: cfg, seed: seed}
	g.Init()
	return g
}

// Init restores the starting state.
func (g *Game) Init() {
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.obstacles == nil {
		g.obstacles = NewObstacleManager(g.seed, &g.cfg, g.difficulty)
	} else {
		g.obstacles.difficulty = g.difficulty
		g.obstacles.Reset(g.seed)
	}
	g.playerY = 0
	g.playerVel = 0
	g.grounded = true
	g.noseAbove = false
	g.frames = 0
	g.jumps = 0
	g.gameOver = false
	g.legPhase = 0
}

// Finished reports whether the player hit an obstacle.
func (g *Game) Finished() bool {
	return g.gameOver
}

// Score returns the number of whole frames survived.
func (g *Game) Score() float64 {
	return math.Floor(g.frames)
}

// Update advances the run by dt seconds and draws the frame.
func (g *Game) Update(s core.Surface, w, h int, p *pose.Pose, dt float64) float64 {
	groundY := float64(h) - g.cfg.Player.GroundOffset
	jumpLine := g.cfg.Pose.JumpLine * float64(h)

	nose, haveNose := pose.MapUsable(p, pose.Nose, g.cfg.Pose.Threshold, w, h)

	if dt > 0 && !g.gameOver {
		g.step(dt, float64(w), groundY, jumpLine, nose, haveNose)
	}

	g.draw(s, w, h, groundY, jumpLine, nose, haveNose)
	return g.Score()
}

func (g *Game) step(dt, surfaceW, groundY, jumpLine float64, nose core.Vec2, haveNose bool) {
	// Jump fires once per crossing of the line from below
	if haveNose {
		above := nose.Y < jumpLine
		if above && !g.noseAbove && g.grounded {
			g.playerVel = g.cfg.Physics.JumpImpulse
			g.grounded = false
			g.jumps++
		}
		g.noseAbove = above
	}

	if !g.grounded {
		g.playerVel += g.cfg.Physics.Gravity * dt
		g.playerVel = math.Min(g.playerVel, g.cfg.Physics.MaxFallSpeed)
		g.playerY += g.playerVel * dt
		if g.playerY >= 0 {
			g.playerY = 0
			g.playerVel = 0
			g.grounded = true
		}
	}

	g.obstacles.Update(dt, surfaceW, g.progress())

	g.frames += dt * framesPerSecond
	g.legPhase += dt * 8

	if g.obstacles.Collides(g.playerBox(groundY), groundY) {
		g.gameOver = true
	}
}

func (g *Game) progress() config.Progress {
	return config.Progress{
		Score:   int(g.Score()),
		Elapsed: time.Duration(g.frames / framesPerSecond * float64(time.Second)),
	}
}

// playerBox returns the player's collision box in surface pixels.
func (g *Game) playerBox(groundY float64) physics.Box {
	pl := g.cfg.Player
	return physics.Box{X: pl.X, Y: groundY - pl.Height + g.playerY, W: pl.Width, H: pl.Height}
}

func (g *Game) draw(s core.Surface, w, h int, groundY, jumpLine float64, nose core.Vec2, haveNose bool) {
	fw, fh := float64(w), float64(h)
	s.Clear(core.ColorBlack)
	s.Gradient(0, 0, fw, groundY, core.ColorBlue, core.ColorCyan)
	s.FillRect(0, groundY, fw, fh-groundY, core.ColorDarkGray)
	s.Line(0, groundY, fw, groundY, 2, core.ColorWhite)

	// Jump line, dashed
	for x := 0.0; x < fw; x += 24 {
		s.Line(x, jumpLine, x+12, jumpLine, 1, core.ColorYellow)
	}

	for _, o := range g.obstacles.Obstacles() {
		b := o.Box(groundY)
		s.FillRect(b.X, b.Y, b.W, b.H, core.ColorGreen)
	}

	g.drawPlayer(s, groundY)

	if haveNose {
		c := core.ColorBrightMagenta
		if nose.Y < jumpLine {
			c = core.ColorBrightYellow
		}
		s.FillCircle(nose.X, nose.Y, 6, c)
	}

	s.Text(12, 8, fmt.Sprintf("Score: %.0f", g.Score()), core.ColorBrightWhite)
	if g.difficulty.IsEnabled() {
		s.Text(fw-140, 8, fmt.Sprintf("Spd: %.0f", g.obstacles.Speed(g.progress())), core.ColorGray)
	}
	if !haveNose {
		s.Text(fw/2-80, fh/2, "Step into view", core.ColorGray)
	}
	if g.gameOver {
		s.Text(fw/2-40, fh/2-20, "GAME OVER", core.ColorBrightRed)
	}
}

func (g *Game) drawPlayer(s core.Surface, groundY float64) {
	b := g.playerBox(groundY)
	s.FillRect(b.X, b.Y+b.H*0.3, b.W, b.H*0.5, core.ColorOrange)
	s.FillCircle(b.X+b.W*0.65, b.Y+b.H*0.15, b.H*0.15, core.ColorOrange)

	// Legs swing while grounded, tuck in the air
	legY := b.Y + b.H*0.8
	swing := 0.0
	if g.grounded {
		swing = math.Sin(g.legPhase) * b.W * 0.3
	}
	s.Line(b.X+b.W*0.3, legY, b.X+b.W*0.3+swing, b.Y+b.H, 3, core.ColorOrange)
	s.Line(b.X+b.W*0.7, legY, b.X+b.W*0.7-swing, b.Y+b.H, 3, core.ColorOrange)
}
