package pose

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/motion-arcade/internal/core"
)

// Keyboard pose tuning, in normalized frame units.
const (
	KeyboardStep     = 0.04
	KeyboardJumpLift = 0.25
	KeyboardJumpHold = 350 * time.Millisecond
)

// KeyboardBackend synthesizes a pose from key presses so the arcade can be
// played without a camera (terminal, SSH). Arrow actions move the active
// wrist, Jump lifts the head for a moment. It is safe for the UI goroutine
// to call Press while the runtime calls Estimate.
type KeyboardBackend struct {
	mu        sync.Mutex
	booted    bool
	nose      core.Vec2
	wrists    [2]core.Vec2 // left, right
	active    int
	jumpUntil time.Time
	now       func() time.Time
}

// NewKeyboardBackend returns a keyboard backend in the rest position.
func NewKeyboardBackend() *KeyboardBackend {
	k := &KeyboardBackend{now: time.Now}
	k.resetLocked()
	return k
}

func (k *KeyboardBackend) resetLocked() {
	k.nose = core.Vec2{X: 0.5, Y: 0.3}
	k.wrists = [2]core.Vec2{{X: 0.35, Y: 0.6}, {X: 0.65, Y: 0.6}}
	k.active = 1
	k.jumpUntil = time.Time{}
}

// Boot never fails: there is no device to acquire.
func (k *KeyboardBackend) Boot(context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.booted = true
	return nil
}

// Ready reports whether Boot has been called.
func (k *KeyboardBackend) Ready() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.booted
}

// Press applies one input action to the simulated body.
func (k *KeyboardBackend) Press(a core.Action) {
	k.mu.Lock()
	defer k.mu.Unlock()

	w := &k.wrists[k.active]
	switch a {
	case core.ActionUp:
		w.Y -= KeyboardStep
	case core.ActionDown:
		w.Y += KeyboardStep
	case core.ActionLeft:
		w.X -= KeyboardStep
	case core.ActionRight:
		w.X += KeyboardStep
	case core.ActionSwitchHand:
		k.active = 1 - k.active
	case core.ActionJump:
		k.jumpUntil = k.now().Add(KeyboardJumpHold)
	}
	w.X = core.ClampF(w.X, 0, 1)
	w.Y = core.ClampF(w.Y, 0, 1)
}

// Estimate returns the current synthetic pose with full confidence.
func (k *KeyboardBackend) Estimate(ctx context.Context) ([]Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.booted {
		return nil, ErrNotBooted
	}

	nose := k.nose
	if k.now().Before(k.jumpUntil) {
		nose.Y -= KeyboardJumpLift
	}
	return []Pose{{Keypoints: []Keypoint{
		{Name: Nose, X: nose.X, Y: nose.Y, Confidence: 1},
		{Name: LeftWrist, X: k.wrists[0].X, Y: k.wrists[0].Y, Confidence: 1},
		{Name: RightWrist, X: k.wrists[1].X, Y: k.wrists[1].Y, Confidence: 1},
	}}}, nil
}

// Close resets the body to its rest position.
func (k *KeyboardBackend) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.booted = false
	k.resetLocked()
	return nil
}

// ActiveHand returns the wrist the arrow keys currently steer.
func (k *KeyboardBackend) ActiveHand() Name {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.active == 0 {
		return LeftWrist
	}
	return RightWrist
}
