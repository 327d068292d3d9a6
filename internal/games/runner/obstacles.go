package runner

import (
	"math/rand"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/physics"
)

// Obstacle is a ground block the player must jump over.
type Obstacle struct {
	X      float64 // Left edge
	Width  float64
	Height float64
}

// Box returns the collision box for this obstacle.
func (o Obstacle) Box(groundY float64) physics.Box {
	return physics.Box{X: o.X, Y: groundY - o.Height, W: o.Width, H: o.Height}
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	items      []Obstacle
	rng        *rand.Rand
	nextSpawnX float64 // Where the next obstacle appears, relative to the right edge
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
}

// NewObstacleManager creates a new obstacle manager with the given RNG seed.
func NewObstacleManager(seed int64, cfg *config.RunnerConfig, diff *config.DifficultyManager) *ObstacleManager {
	om := &ObstacleManager{
		items:      make([]Obstacle, 0, 8),
		cfg:        cfg,
		difficulty: diff,
	}
	om.Reset(seed)
	return om
}

// Reset clears all obstacles and reseeds the RNG.
func (om *ObstacleManager) Reset(seed int64) {
	om.items = om.items[:0]
	om.rng = rand.New(rand.NewSource(seed))
	om.nextSpawnX = om.cfg.Obstacles.MinSpacing // First obstacle spawns off-screen
}

// Speed returns the current scroll speed in pixels per second.
func (om *ObstacleManager) Speed(p config.Progress) float64 {
	return om.difficulty.Speed(om.cfg.Physics.BaseSpeed, p)
}

// Update scrolls obstacles left by dt seconds and spawns new ones at the
// right edge of a surface surfaceW pixels wide.
func (om *ObstacleManager) Update(dt, surfaceW float64, p config.Progress) {
	dx := om.Speed(p) * dt

	kept := om.items[:0]
	for _, o := range om.items {
		o.X -= dx
		if o.X+o.Width > 0 {
			kept = append(kept, o)
		}
	}
	om.items = kept

	om.nextSpawnX -= dx
	if om.nextSpawnX <= 0 {
		om.spawn(surfaceW, p)
	}
}

// spawn places a new obstacle just past the right edge.
func (om *ObstacleManager) spawn(surfaceW float64, p config.Progress) {
	ob := om.cfg.Obstacles
	o := Obstacle{
		X:      surfaceW + om.nextSpawnX,
		Width:  ob.MinWidth + om.rng.Float64()*(ob.MaxWidth-ob.MinWidth),
		Height: ob.MinHeight + om.rng.Float64()*(ob.MaxHeight-ob.MinHeight),
	}
	om.items = append(om.items, o)

	// Spacing shrinks with difficulty but never below the playable minimum
	spacing := om.difficulty.Spacing(ob.MaxSpacing, ob.MinSpacing, p)
	gap := ob.MinSpacing + om.rng.Float64()*(spacing-ob.MinSpacing)
	om.nextSpawnX += o.Width + gap
}

// Obstacles returns the current list of obstacles.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.items
}

// Collides tests whether the given box overlaps any obstacle.
func (om *ObstacleManager) Collides(player physics.Box, groundY float64) bool {
	for _, o := range om.items {
		if player.Overlaps(o.Box(groundY)) {
			return true
		}
	}
	return false
}
