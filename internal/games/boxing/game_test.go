package boxing

import (
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

// quiet returns a game that never spawns on its own.
func quiet() *Game {
	g := New(config.DefaultBoxingConfig(), 1)
	g.spawnTimer = 1e9
	return g
}

func handAt(x, y float64) *pose.Pose {
	return &pose.Pose{Keypoints: []pose.Keypoint{
		{Name: pose.RightWrist, X: x / testW, Y: y / testH, Confidence: 0.9},
	}}
}

func (g *Game) place(x, y float64) {
	life := g.cfg.Targets.Life.Seconds()
	g.targets = append(g.targets, Target{
		Pos:    core.Vec2{X: x, Y: y},
		Radius: g.cfg.Targets.Radius,
		Life:   life,
		Total:  life,
	})
}

func TestUpdateWithoutPose(t *testing.T) {
	g := New(config.DefaultBoxingConfig(), 1)
	rec := core.NewRecorder()

	for i := 0; i < 300; i++ {
		score := g.Update(rec, testW, testH, nil, testDt)
		if !core.Finite(score) || score < 0 {
			t.Fatalf("tick %d: score = %v", i, score)
		}
	}
	if g.misses == 0 {
		t.Error("unhit targets should expire over ten seconds")
	}
	if len(g.targets) > g.cfg.Targets.MaxAlive {
		t.Errorf("%d targets alive, limit %d", len(g.targets), g.cfg.Targets.MaxAlive)
	}
}

func TestConsecutiveHitsScore(t *testing.T) {
	for k := 1; k <= 6; k++ {
		g := quiet()
		rec := core.NewRecorder()
		var score float64
		for i := 0; i < k; i++ {
			g.place(320, 240)
			score = g.Update(rec, testW, testH, handAt(320, 240), testDt)
		}
		want := float64(100 * k * (k + 1) / 2)
		if score != want {
			t.Errorf("k=%d: score = %v, want %v", k, score, want)
		}
	}
}

func TestExpiryResetsCombo(t *testing.T) {
	g := quiet()
	rec := core.NewRecorder()

	g.place(100, 100)
	g.Update(rec, testW, testH, handAt(100, 100), testDt)
	g.place(100, 100)
	g.Update(rec, testW, testH, handAt(100, 100), testDt)
	if g.Combo() != 2 {
		t.Fatalf("combo = %d, want 2", g.Combo())
	}

	// Let a target fade with the hand elsewhere.
	g.place(500, 400)
	for i := 0; i < 90; i++ {
		g.Update(rec, testW, testH, handAt(50, 50), testDt)
	}
	if g.Combo() != 0 {
		t.Fatalf("expired target should reset the combo, got %d", g.Combo())
	}

	before := g.score
	g.place(200, 200)
	g.Update(rec, testW, testH, handAt(200, 200), testDt)
	if got := g.score - before; got != 100 {
		t.Errorf("first hit after a miss scored %d, want 100", got)
	}
}

func TestNoComboTimeoutWithoutExpiry(t *testing.T) {
	g := quiet()
	rec := core.NewRecorder()

	g.place(100, 100)
	g.Update(rec, testW, testH, handAt(100, 100), testDt)

	// A long idle stretch with no targets must keep the streak.
	for i := 0; i < 300; i++ {
		g.Update(rec, testW, testH, nil, testDt)
	}
	if g.Combo() != 1 {
		t.Errorf("combo = %d, want 1: only target expiry resets it", g.Combo())
	}
}

func TestHitRadiusScale(t *testing.T) {
	g := quiet()
	rec := core.NewRecorder()
	r := g.cfg.Targets.Radius

	// Inside 1.5x radius but outside the drawn disc.
	g.place(300, 300)
	g.Update(rec, testW, testH, handAt(300+r*1.4, 300), testDt)
	if g.hits != 1 {
		t.Errorf("hand at 1.4r should hit, hits = %d", g.hits)
	}

	g.place(300, 300)
	g.Update(rec, testW, testH, handAt(300+r*1.6, 300), testDt)
	if g.hits != 1 {
		t.Errorf("hand at 1.6r should miss, hits = %d", g.hits)
	}
}

func TestHitSpawnsParticles(t *testing.T) {
	g := quiet()
	rec := core.NewRecorder()
	g.place(320, 240)
	g.Update(rec, testW, testH, handAt(320, 240), testDt)

	if g.particles.Len() == 0 {
		t.Fatal("a hit should burst particles")
	}
	for i := 0; i < 60; i++ {
		g.Update(rec, testW, testH, nil, testDt)
	}
	if g.particles.Len() != 0 {
		t.Errorf("particles should fade, %d left", g.particles.Len())
	}
}

func TestLeftHandCounts(t *testing.T) {
	g := quiet()
	rec := core.NewRecorder()
	g.place(120, 200)
	p := &pose.Pose{Keypoints: []pose.Keypoint{
		{Name: pose.LeftWrist, X: 120.0 / testW, Y: 200.0 / testH, Confidence: 0.8},
		{Name: pose.RightWrist, X: 0.9, Y: 0.9, Confidence: 0.8},
	}}
	g.Update(rec, testW, testH, p, testDt)
	if g.hits != 1 {
		t.Error("either wrist may strike a target")
	}
}

func TestZeroDtKeepsScore(t *testing.T) {
	g := quiet()
	rec := core.NewRecorder()
	g.place(320, 240)
	prev := g.Update(rec, testW, testH, handAt(320, 240), testDt)

	g.place(320, 240)
	if got := g.Update(rec, testW, testH, handAt(320, 240), 0); got != prev {
		t.Errorf("dt=0 changed score: %v -> %v", prev, got)
	}
}

func TestInitResets(t *testing.T) {
	g := New(config.DefaultBoxingConfig(), 5)
	rec := core.NewRecorder()
	for i := 0; i < 200; i++ {
		g.Update(rec, testW, testH, handAt(320, 240), testDt)
	}

	g.Init()
	g.Init()
	if g.score != 0 || g.Combo() != 0 || len(g.targets) != 0 || g.particles.Len() != 0 {
		t.Errorf("Init did not reset: score=%d combo=%d targets=%d particles=%d",
			g.score, g.Combo(), len(g.targets), g.particles.Len())
	}
}
