package config

import (
	"testing"
	"time"
)

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{1000, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(Progress{Score: tt.score}); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})
	if dm.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := dm.Speed(100, Progress{Score: 1000}); got != 150 {
		t.Errorf("Speed = %v, want 150 at fixed level 0.5", got)
	}
}

func TestDifficultySpacingFloor(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpacingReduction: 500},
	})
	if got := dm.Spacing(400, 260, Progress{Score: 10}); got != 260 {
		t.Errorf("Spacing = %v, want floor 260", got)
	}
	if got := dm.Spacing(400, 260, Progress{}); got != 400 {
		t.Errorf("Spacing at level 0 = %v, want 400", got)
	}
}

func TestDifficultyInterval(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1},
	})

	if got := dm.Interval(time.Second, 100*time.Millisecond, Progress{}); got != time.Second {
		t.Errorf("Interval at level 0 = %v", got)
	}
	if got := dm.Interval(time.Second, 100*time.Millisecond, Progress{Score: 100}); got != 500*time.Millisecond {
		t.Errorf("Interval at max level = %v, want 500ms", got)
	}
	if got := dm.Interval(time.Second, 800*time.Millisecond, Progress{Score: 100}); got != 800*time.Millisecond {
		t.Errorf("Interval should respect the floor, got %v", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
	})

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{30 * time.Second, 0.5},
		{2 * time.Minute, 1},
	}
	for _, tt := range tests {
		// Score is ignored by a time progression
		if got := dm.Level(Progress{Score: 5000, Elapsed: tt.elapsed}); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Level(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}
