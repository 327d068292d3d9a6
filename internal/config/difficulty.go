package config

import (
	"math"
	"time"
)

// Progress is how far a run has come. Games measure time in seconds of
// simulation, not frames, so a "time" progression is frame-rate independent.
type Progress struct {
	Score   int
	Elapsed time.Duration
}

// DifficultyManager derives dynamic game parameters from a run's progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level, from the initial level up
// to 1.0 once the progression reaches max_at.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = p.Elapsed.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	return d.initialLevel + clampF(progress, 0.0, 1.0)*(1.0-d.initialLevel)
}

// Speed scales baseSpeed up to baseSpeed * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, p Progress) float64 {
	return baseSpeed * (1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// Spacing shrinks baseSpacing by up to spacing_reduction, never below minSpacing.
func (d *DifficultyManager) Spacing(baseSpacing, minSpacing float64, p Progress) float64 {
	return math.Max(baseSpacing-d.Level(p)*d.cfg.Scaling.SpacingReduction, minSpacing)
}

// Interval returns a spawn interval that shortens as speed grows,
// never below minInterval.
func (d *DifficultyManager) Interval(base, minInterval time.Duration, p Progress) time.Duration {
	factor := d.Speed(1, p)
	if factor <= 0 {
		return base
	}
	return max(time.Duration(float64(base)/factor), minInterval)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
