package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

const (
	testW  = 640
	testH  = 480
	testDt = 1.0 / 30
)

func nosePose(y float64) *pose.Pose {
	return &pose.Pose{Keypoints: []pose.Keypoint{
		{Name: pose.Nose, X: 0.5, Y: y, Confidence: 0.9},
	}}
}

func TestUpdateWithoutPose(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 1)
	rec := core.NewRecorder()

	for i := 0; i < 90; i++ {
		score := g.Update(rec, testW, testH, nil, testDt)
		if !core.Finite(score) || score < 0 {
			t.Fatalf("tick %d: score = %v", i, score)
		}
	}
	if rec.Count(core.OpClear) != 90 {
		t.Errorf("every tick must clear the surface, got %d clears", rec.Count(core.OpClear))
	}
}

func TestZeroDtKeepsScore(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 1)
	rec := core.NewRecorder()

	var last float64
	for i := 0; i < 20; i++ {
		last = g.Update(rec, testW, testH, nil, testDt)
	}
	if got := g.Update(rec, testW, testH, nil, 0); got != last {
		t.Errorf("dt=0 changed score: %v -> %v", last, got)
	}
}

func TestScoreCountsFrames(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 1)
	rec := core.NewRecorder()

	prev := 0.0
	for i := 0; i < 30; i++ {
		score := g.Update(rec, testW, testH, nil, testDt)
		if score < prev {
			t.Fatalf("score decreased: %v -> %v", prev, score)
		}
		prev = score
	}
	// One second at 60 frames per second, allowing for float rounding
	if prev < 59 || prev > 60 {
		t.Errorf("score after 1s = %v, want ~60", prev)
	}
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 1)
	rec := core.NewRecorder()

	below := nosePose(0.5)
	above := nosePose(0.1)

	g.Update(rec, testW, testH, below, testDt)
	g.Update(rec, testW, testH, above, testDt)
	if g.jumps != 1 || g.grounded {
		t.Fatalf("crossing the line should jump: jumps=%d grounded=%v", g.jumps, g.grounded)
	}

	// Holding the nose up must not re-trigger after landing.
	for i := 0; i < 60; i++ {
		g.Update(rec, testW, testH, above, testDt)
	}
	if !g.grounded {
		t.Fatal("player should have landed")
	}
	if g.jumps != 1 {
		t.Errorf("holding above the line re-triggered: jumps=%d", g.jumps)
	}

	g.Update(rec, testW, testH, below, testDt)
	g.Update(rec, testW, testH, above, testDt)
	if g.jumps != 2 {
		t.Errorf("second crossing should jump again: jumps=%d", g.jumps)
	}
}

func TestLowConfidenceNoseIgnored(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 1)
	rec := core.NewRecorder()

	g.Update(rec, testW, testH, nosePose(0.5), testDt)
	weak := &pose.Pose{Keypoints: []pose.Keypoint{{Name: pose.Nose, X: 0.5, Y: 0.05, Confidence: 0.2}}}
	g.Update(rec, testW, testH, weak, testDt)
	if g.jumps != 0 {
		t.Error("a nose below the confidence threshold must not trigger a jump")
	}
}

func TestCollisionEndsRun(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 7)
	rec := core.NewRecorder()

	for i := 0; i < 30*20 && !g.Finished(); i++ {
		g.Update(rec, testW, testH, nil, testDt)
	}
	if !g.Finished() {
		t.Fatal("standing still should eventually hit an obstacle")
	}

	final := g.Score()
	for i := 0; i < 10; i++ {
		if got := g.Update(rec, testW, testH, nil, testDt); got != final {
			t.Fatalf("score changed after game over: %v -> %v", final, got)
		}
	}
}

func TestInitResets(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 3)
	rec := core.NewRecorder()
	for i := 0; i < 120; i++ {
		g.Update(rec, testW, testH, nosePose(0.1+0.4*float64(i%2)), testDt)
	}

	g.Init()
	g.Init()
	if g.Score() != 0 || g.jumps != 0 || g.gameOver || !g.grounded {
		t.Errorf("Init did not reset: score=%v jumps=%d over=%v grounded=%v", g.Score(), g.jumps, g.gameOver, g.grounded)
	}
	if len(g.obstacles.Obstacles()) != 0 {
		t.Errorf("Init should clear obstacles, have %d", len(g.obstacles.Obstacles()))
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (float64, int) {
		g := New(config.DefaultRunnerConfig(), 12345)
		rec := core.NewRecorder()
		for i := 0; i < 600 && !g.Finished(); i++ {
			y := 0.5
			if i%20 == 0 {
				y = 0.1
			}
			g.Update(rec, testW, testH, nosePose(y), testDt)
		}
		return g.Score(), len(g.obstacles.Obstacles())
	}

	s1, n1 := run()
	s2, n2 := run()
	if s1 != s2 || n1 != n2 {
		t.Errorf("runs differ: (%v,%d) vs (%v,%d)", s1, n1, s2, n2)
	}
	if math.IsNaN(s1) {
		t.Error("score is NaN")
	}
}
