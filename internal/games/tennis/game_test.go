package tennis

import (
	"math"
	"testing"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/physics"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

const (
	testW  = 640
	testH  = 480
	testDt = 1.0 / 60
)

func TestUpdateWithoutPose(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	for i := 0; i < 300; i++ {
		score := g.Update(rec, testW, testH, nil, testDt)
		if !core.Finite(score) || score < 0 {
			t.Fatalf("tick %d: score = %v", i, score)
		}
	}
	if rec.Count(core.OpClear) != 300 {
		t.Errorf("every tick must clear, got %d", rec.Count(core.OpClear))
	}
}

func TestUnreturnedServeLosesPoint(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	for i := 0; i < 60*10 && !g.Finished(); i++ {
		g.Update(rec, testW, testH, nil, testDt)
	}
	if !g.Finished() {
		t.Fatal("a ball nobody hits should end the point")
	}
	if g.failPoints != 1 {
		t.Errorf("failPoints = %d, want 1", g.failPoints)
	}
	if g.bounces == 0 {
		t.Error("serve should bounce on the player's side first")
	}
}

func TestZeroDtKeepsScore(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()
	g.score = 4
	before := g.ball

	if got := g.Update(rec, testW, testH, nil, 0); got != 4 {
		t.Errorf("dt=0 score = %v, want 4", got)
	}
	if g.ball != before {
		t.Error("dt=0 moved the ball")
	}
}

func TestGroundBounceReflection(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	for _, v := range []float64{50, 300, 1200} {
		g.Init()
		g.ball = physics.Body{
			Pos: physics.Vec3{Y: -0.5, Z: 400},
			Vel: physics.Vec3{Y: v},
		}
		g.Update(rec, testW, testH, nil, testDt)

		incoming := v + g.cfg.Ball.Gravity*testDt
		want := -0.75 * incoming
		if math.Abs(g.ball.Vel.Y-want) > 1e-6 {
			t.Errorf("v=%v: outgoing vy = %v, want %v", v, g.ball.Vel.Y, want)
		}
		if g.Finished() {
			t.Errorf("v=%v: an in-court bounce must not end the point", v)
		}
	}
}

func TestOutOfBoundsBounceFailsOnce(t *testing.T) {
	tests := []struct {
		name string
		pos  physics.Vec3
	}{
		{"lateral", physics.Vec3{X: 400, Y: -0.5, Z: 400}},
		{"long", physics.Vec3{X: 0, Y: -0.5, Z: 1300}},
		{"behind player", physics.Vec3{X: 0, Y: -0.5, Z: -20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(config.DefaultTennisConfig(), 1)
			rec := core.NewRecorder()
			g.ball = physics.Body{Pos: tt.pos, Vel: physics.Vec3{Y: 200}}

			for i := 0; i < 120; i++ {
				g.Update(rec, testW, testH, nil, testDt)
			}
			if g.failPoints != 1 {
				t.Errorf("failPoints = %d, want exactly 1", g.failPoints)
			}
			if !g.Finished() {
				t.Error("game should be finished")
			}
		})
	}
}

func TestAIReturn(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1099}, Vel: physics.Vec3{Z: 600}}
	score := g.Update(rec, testW, testH, nil, testDt)

	if score != 1 {
		t.Fatalf("score after a return = %v, want 1", score)
	}
	if g.ball.Vel.Y != g.cfg.AI.ReturnVY {
		t.Errorf("return vy = %v, want %v", g.ball.Vel.Y, g.cfg.AI.ReturnVY)
	}
	if g.ball.Vel.Z >= 0 {
		t.Errorf("return must head toward the player, vz = %v", g.ball.Vel.Z)
	}
	if math.Abs(g.ball.Vel.X) > g.cfg.AI.MaxLateral {
		t.Errorf("lateral speed %v exceeds bound %v", g.ball.Vel.X, g.cfg.AI.MaxLateral)
	}
}

func TestAIReturnSpeedsUpWithScore(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)

	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1150}, Vel: physics.Vec3{Z: 600}}
	g.aiReturn()
	slow := math.Abs(g.ball.Vel.Z)

	g.score = 15
	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1150}, Vel: physics.Vec3{Z: 600}}
	g.aiReturn()
	fast := math.Abs(g.ball.Vel.Z)

	if fast <= slow {
		t.Errorf("depth speed should grow with score: %v then %v", slow, fast)
	}
}

func TestAIReturnReversesIncomingDepth(t *testing.T) {
	fixed := config.DefaultTennisConfig()
	config.ApplyPreset(&fixed.Difficulty, config.DifficultyFixed)

	tests := []struct {
		name  string
		cfg   config.TennisConfig
		score int
	}{
		{"default at zero", config.DefaultTennisConfig(), 0},
		{"default mid rally", config.DefaultTennisConfig(), 4},
		{"fixed preset at zero", fixed, 0},
		{"fixed preset mid rally", fixed, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ratio float64
			for _, in := range []float64{300, 800, 1600} {
				g := New(tt.cfg, 1)
				g.score = tt.score
				g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1150}, Vel: physics.Vec3{Z: in}}
				g.aiReturn()

				if g.ball.Vel.Z >= 0 {
					t.Fatalf("in=%v: return must head toward the player, vz = %v", in, g.ball.Vel.Z)
				}
				r := -g.ball.Vel.Z / in
				if ratio == 0 {
					ratio = r
				} else if math.Abs(r-ratio) > 1e-9 {
					t.Errorf("in=%v: ratio %v, want %v for every incoming speed", in, r, ratio)
				}
			}
			if tt.score > 0 && ratio <= 1 {
				t.Errorf("score %d should scale the return up, ratio = %v", tt.score, ratio)
			}
		})
	}
}

func TestAIReturnScoreRampWithFixedPreset(t *testing.T) {
	cfg := config.DefaultTennisConfig()
	config.ApplyPreset(&cfg.Difficulty, config.DifficultyFixed)
	g := New(cfg, 1)

	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1150}, Vel: physics.Vec3{Z: 500}}
	g.aiReturn()
	first := math.Abs(g.ball.Vel.Z)

	g.score = 10
	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1150}, Vel: physics.Vec3{Z: 500}}
	g.aiReturn()
	later := math.Abs(g.ball.Vel.Z)

	if later <= first {
		t.Errorf("fixed preset should still ramp with score: %v then %v", first, later)
	}
}

func TestAIReturnCapped(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	g.score = 50
	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 1150}, Vel: physics.Vec3{Z: 5000}}
	g.aiReturn()

	if got, limit := math.Abs(g.ball.Vel.Z), g.cfg.AI.MaxReturnSpeed; got > limit {
		t.Errorf("return depth speed %v exceeds cap %v", got, limit)
	}
}

func TestAIReturnLandsInCourt(t *testing.T) {
	cfg := config.DefaultTennisConfig()
	for seed := int64(1); seed <= 50; seed++ {
		g := New(cfg, seed)
		g.ball = physics.Body{Pos: physics.Vec3{X: 0, Y: -80, Z: 1150}}
		g.aiReturn()

		tl := landingTime(g.ball.Pos.Y, g.ball.Vel.Y, cfg.Ball.Gravity)
		x := g.ball.Pos.X + g.ball.Vel.X*tl
		if math.Abs(x) > cfg.Court.HalfWidth {
			t.Errorf("seed %d: return lands at x=%v, outside the court", seed, x)
		}
	}
}

func TestRacketHit(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 100}, Vel: physics.Vec3{Z: -300}}
	cam := g.camera(testW, testH)
	// Where the ball will be after one step.
	next := g.ball
	next.Integrate(g.cfg.Ball.Gravity, testDt)
	at, _, _ := cam.Project(next.Pos)

	p := &pose.Pose{Keypoints: []pose.Keypoint{{
		Name: pose.RightWrist, X: at.X / testW, Y: at.Y / testH, Confidence: 0.9,
	}}}
	g.Update(rec, testW, testH, p, testDt)

	if g.swings != 1 {
		t.Fatalf("racket over the ball should hit it, swings = %d", g.swings)
	}
	if g.ball.Vel.Z <= 0 {
		t.Errorf("hit ball should travel away, vz = %v", g.ball.Vel.Z)
	}
}

func TestRacketIgnoredBelowThreshold(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	g.ball = physics.Body{Pos: physics.Vec3{Y: -100, Z: 100}, Vel: physics.Vec3{Z: -300}}
	cam := g.camera(testW, testH)
	at, _, _ := cam.Project(g.ball.Pos)

	p := &pose.Pose{Keypoints: []pose.Keypoint{{
		Name: pose.RightWrist, X: at.X / testW, Y: at.Y / testH, Confidence: 0.3,
	}}}
	g.Update(rec, testW, testH, p, testDt)
	if g.swings != 0 {
		t.Error("wrist at the confidence threshold must not count")
	}
}

func TestInitResets(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 9)
	rec := core.NewRecorder()
	for i := 0; i < 600; i++ {
		g.Update(rec, testW, testH, nil, testDt)
	}

	g.Init()
	first := g.ball
	g.Init()
	if g.ball != first {
		t.Error("Init must be idempotent")
	}
	if g.score != 0 || g.bounces != 0 || g.failed || g.failPoints != 0 {
		t.Errorf("Init did not reset: %+v", g)
	}
}

func TestDrawIsDepthSorted(t *testing.T) {
	g := New(config.DefaultTennisConfig(), 1)
	rec := core.NewRecorder()

	// Ball beyond the net is drawn before the net polygon.
	g.ball.Pos = physics.Vec3{Y: -50, Z: 900}
	g.Update(rec, testW, testH, nil, 0)

	ballIdx, netIdx := -1, -1
	polys := 0
	for i, op := range rec.Ops() {
		switch {
		case op.Kind == core.OpFillPolygon:
			polys++
			if polys == 2 {
				netIdx = i
			}
		case op.Kind == core.OpFillCircle && op.Color == core.ColorBrightYellow && ballIdx < 0:
			ballIdx = i
		}
	}
	if ballIdx < 0 || netIdx < 0 {
		t.Fatalf("missing ops: ball=%d net=%d", ballIdx, netIdx)
	}
	if ballIdx > netIdx {
		t.Errorf("far ball drawn after the net (ball %d, net %d)", ballIdx, netIdx)
	}
}
