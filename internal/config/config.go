// Package config provides YAML-based runtime and game configuration loading,
// environment overrides and difficulty management for the arcade.
package config

import "time"

// ArcadeConfig holds runtime settings shared by every game.
type ArcadeConfig struct {
	Surface       SurfaceConfig `yaml:"surface"`
	TickRate      int           `yaml:"tick_rate"`       // Frames per second
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"` // Upper bound on dt passed to games
	Pose          PoseConfig    `yaml:"pose"`
	Boot          BootConfig    `yaml:"boot"`
}

// SurfaceConfig is the logical drawing size games render into.
type SurfaceConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PoseConfig selects and bounds the pose source.
type PoseConfig struct {
	Source  string        `yaml:"source"`  // keyboard, ws://..., replay:<file>
	Timeout time.Duration `yaml:"timeout"` // Per-estimate limit, 0 = unbounded
}

// BootConfig bounds the automatic boot retry in launch.
type BootConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`     // First retry delay
	MaxBackoff  time.Duration `yaml:"max_backoff"` // Delay cap
}

// RunnerConfig contains all configuration for the Runner game.
// Distances are logical pixels, speeds pixels per second.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Player     RunnerPlayer     `yaml:"player"`
	Pose       RunnerPose       `yaml:"pose"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines physics parameters for the Runner.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// RunnerObstacles defines obstacle parameters for the Runner.
type RunnerObstacles struct {
	MinWidth   float64 `yaml:"min_width"`
	MaxWidth   float64 `yaml:"max_width"`
	MinHeight  float64 `yaml:"min_height"`
	MaxHeight  float64 `yaml:"max_height"`
	MinSpacing float64 `yaml:"min_spacing"`
	MaxSpacing float64 `yaml:"max_spacing"`
}

// RunnerPlayer defines player parameters for the Runner.
type RunnerPlayer struct {
	X            float64 `yaml:"x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"`
}

// RunnerPose defines how the body drives the Runner.
type RunnerPose struct {
	JumpLine  float64 `yaml:"jump_line"` // Fraction of surface height the nose must rise above
	Threshold float64 `yaml:"threshold"` // Minimum nose confidence
}

// TennisConfig contains all configuration for the Tennis game.
// World units: x lateral, y vertical (down positive, floor 0), z depth.
type TennisConfig struct {
	Court      TennisCourt      `yaml:"court"`
	Camera     TennisCamera     `yaml:"camera"`
	Ball       TennisBall       `yaml:"ball"`
	Racket     TennisRacket     `yaml:"racket"`
	AI         TennisAI         `yaml:"ai"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TennisCourt defines court geometry.
type TennisCourt struct {
	HalfWidth float64 `yaml:"half_width"`
	Length    float64 `yaml:"length"`
	NetZ      float64 `yaml:"net_z"`
	NetHeight float64 `yaml:"net_height"`
}

// TennisCamera defines the perspective camera.
type TennisCamera struct {
	Focal          float64 `yaml:"focal"`
	VerticalOffset float64 `yaml:"vertical_offset"`
	Horizon        float64 `yaml:"horizon"` // Vanishing point as a fraction of surface height
	ShakeDecay     float64 `yaml:"shake_decay"`
	ShakeAmount    float64 `yaml:"shake_amount"`
}

// TennisBall defines ball physics.
type TennisBall struct {
	Radius         float64 `yaml:"radius"`
	Gravity        float64 `yaml:"gravity"`
	ServeHeight    float64 `yaml:"serve_height"`
	ServeSpeed     float64 `yaml:"serve_speed"`
	NoiseThreshold float64 `yaml:"noise_threshold"`
}

// TennisRacket defines how the player's hand hits the ball.
type TennisRacket struct {
	Radius    float64 `yaml:"radius"`
	HitDepth  float64 `yaml:"hit_depth"` // Ball depth below which it can be struck
	Threshold float64 `yaml:"threshold"` // Minimum wrist confidence
	SwingVY   float64 `yaml:"swing_vy"`
	SwingVZ   float64 `yaml:"swing_vz"`
	Aim       float64 `yaml:"aim"` // Lateral speed per pixel of off-center contact
}

// TennisAI defines the simulated opponent.
type TennisAI struct {
	FarZ           float64 `yaml:"far_z"`            // Depth at which the opponent returns the ball
	ReturnVY       float64 `yaml:"return_vy"`        // Fixed upward velocity of a return
	ReturnGain     float64 `yaml:"return_gain"`      // Extra depth speed per point, as a fraction of the incoming speed
	MaxReturnSpeed float64 `yaml:"max_return_speed"` // Cap on the depth speed of a return
	MaxLateral     float64 `yaml:"max_lateral"`      // Bound on lateral return speed
}

// BoxingConfig contains all configuration for the Boxing game.
type BoxingConfig struct {
	Targets    BoxingTargets    `yaml:"targets"`
	Hit        BoxingHit        `yaml:"hit"`
	Particles  BoxingParticles  `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoxingTargets defines target spawning.
type BoxingTargets struct {
	Radius        float64       `yaml:"radius"`
	Life          time.Duration `yaml:"life"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	MinInterval   time.Duration `yaml:"min_interval"`
	MaxAlive      int           `yaml:"max_alive"`
	Margin        float64       `yaml:"margin"`
}

// BoxingHit defines hit detection.
type BoxingHit struct {
	RadiusScale float64 `yaml:"radius_scale"`
	Threshold   float64 `yaml:"threshold"`
}

// BoxingParticles defines the hit burst.
type BoxingParticles struct {
	Count   int           `yaml:"count"`
	Speed   float64       `yaml:"speed"`
	Life    time.Duration `yaml:"life"`
	Gravity float64       `yaml:"gravity"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies a difficulty section based on a preset.
// An empty preset keeps the file's settings.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Games bundles every per-game configuration.
type Games struct {
	Runner RunnerConfig
	Tennis TennisConfig
	Boxing BoxingConfig
}

// ApplyPreset applies a difficulty preset to every game.
func (g *Games) ApplyPreset(preset DifficultyPreset) {
	ApplyPreset(&g.Runner.Difficulty, preset)
	ApplyPreset(&g.Tennis.Difficulty, preset)
	ApplyPreset(&g.Boxing.Difficulty, preset)
}
