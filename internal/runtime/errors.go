package runtime

import (
	"errors"
	"fmt"
)

// ErrUnknownGame is returned by Launch for an id that is not registered.
var ErrUnknownGame = errors.New("runtime: unknown game")

// BootFailure reports that the pose backend could not be acquired after
// the configured number of attempts.
type BootFailure struct {
	Attempts int
	Err      error
}

func (e *BootFailure) Error() string {
	return fmt.Sprintf("runtime: boot failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *BootFailure) Unwrap() error { return e.Err }

// Stage names the part of a tick that failed.
type Stage string

const (
	StagePose   Stage = "pose"
	StageUpdate Stage = "update"
)

// LoopFailure reports a tick that could not complete. The loop is stopped
// and the menu shown when one occurs.
type LoopFailure struct {
	Stage  Stage
	GameID string
	Err    error
}

func (e *LoopFailure) Error() string {
	return fmt.Sprintf("runtime: %s failed in %q: %v", e.Stage, e.GameID, e.Err)
}

func (e *LoopFailure) Unwrap() error { return e.Err }

// panicError wraps a value recovered from a panicking game.
type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
