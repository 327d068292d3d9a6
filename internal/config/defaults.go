package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/tennis.yaml
var defaultTennisYAML []byte

//go:embed defaults/boxing.yaml
var defaultBoxingYAML []byte

// DefaultArcadeConfig returns the default runtime configuration.
func DefaultArcadeConfig() ArcadeConfig {
	return ArcadeConfig{
		Surface:       SurfaceConfig{Width: 640, Height: 480},
		TickRate:      30,
		MaxFrameDelta: 100 * time.Millisecond,
		Pose: PoseConfig{
			Source:  "keyboard",
			Timeout: 0,
		},
		Boot: BootConfig{
			MaxAttempts: 3,
			Backoff:     250 * time.Millisecond,
			MaxBackoff:  2 * time.Second,
		},
	}
}

// DefaultRunnerConfig returns the default Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      2400,
			JumpImpulse:  -900,
			MaxFallSpeed: 1200,
			BaseSpeed:    240,
		},
		Obstacles: RunnerObstacles{
			MinWidth:   20,
			MaxWidth:   40,
			MinHeight:  30,
			MaxHeight:  60,
			MinSpacing: 260,
			MaxSpacing: 420,
		},
		Player: RunnerPlayer{
			X:            80,
			Width:        30,
			Height:       50,
			GroundOffset: 60,
		},
		Pose: RunnerPose{
			JumpLine:  0.25,
			Threshold: 0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.5,
				SpacingReduction: 120,
			},
		},
	}
}

// DefaultTennisConfig returns the default Tennis configuration.
func DefaultTennisConfig() TennisConfig {
	return TennisConfig{
		Court: TennisCourt{
			HalfWidth: 250,
			Length:    1200,
			NetZ:      600,
			NetHeight: 60,
		},
		Camera: TennisCamera{
			Focal:          400,
			VerticalOffset: 150,
			Horizon:        0.35,
			ShakeDecay:     40,
			ShakeAmount:    6,
		},
		Ball: TennisBall{
			Radius:         12,
			Gravity:        900,
			ServeHeight:    120,
			ServeSpeed:     600,
			NoiseThreshold: 60,
		},
		Racket: TennisRacket{
			Radius:    80,
			HitDepth:  200,
			Threshold: 0.3,
			SwingVY:   -400,
			SwingVZ:   800,
			Aim:       1.5,
		},
		AI: TennisAI{
			FarZ:           1100,
			ReturnVY:       -450,
			ReturnGain:     0.04,
			MaxReturnSpeed: 2400,
			MaxLateral:     200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
			},
		},
	}
}

// DefaultBoxingConfig returns the default Boxing configuration.
func DefaultBoxingConfig() BoxingConfig {
	return BoxingConfig{
		Targets: BoxingTargets{
			Radius:        30,
			Life:          2 * time.Second,
			SpawnInterval: 1200 * time.Millisecond,
			MinInterval:   500 * time.Millisecond,
			MaxAlive:      3,
			Margin:        60,
		},
		Hit: BoxingHit{
			RadiusScale: 1.5,
			Threshold:   0.3,
		},
		Particles: BoxingParticles{
			Count:   14,
			Speed:   220,
			Life:    600 * time.Millisecond,
			Gravity: 600,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultGames returns the default configuration of every game.
func DefaultGames() Games {
	return Games{
		Runner: DefaultRunnerConfig(),
		Tennis: DefaultTennisConfig(),
		Boxing: DefaultBoxingConfig(),
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "arcade":
		return defaultArcadeYAML
	case "runner":
		return defaultRunnerYAML
	case "tennis":
		return defaultTennisYAML
	case "boxing":
		return defaultBoxingYAML
	default:
		return nil
	}
}
