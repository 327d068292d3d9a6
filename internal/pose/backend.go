package pose

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotBooted is returned by Estimate before a successful Boot.
var ErrNotBooted = errors.New("pose: backend not booted")

// Backend is the pose-estimation service as the runtime sees it.
// Boot acquires the video source and the model (possibly slow, possibly
// failing); Estimate runs inference on the current frame and may return an
// empty slice when nobody is in view. Estimate is never called concurrently.
type Backend interface {
	Boot(ctx context.Context) error
	Ready() bool
	Estimate(ctx context.Context) ([]Pose, error)
	Close() error
}

// Open builds a backend from a pose source:
//
//	keyboard           synthetic pose steered from the keyboard
//	ws://host/path     inference sidecar over websocket (wss:// too)
//	replay:<file>      YAML recording played back in a loop
func Open(source string) (Backend, error) {
	switch {
	case source == "" || source == "keyboard":
		return NewKeyboardBackend(), nil
	case strings.HasPrefix(source, "ws://"), strings.HasPrefix(source, "wss://"):
		return NewWSBackend(source), nil
	case strings.HasPrefix(source, "replay:"):
		path := strings.TrimPrefix(source, "replay:")
		if path == "" {
			return nil, fmt.Errorf("pose: replay source needs a file path")
		}
		return NewReplayBackend(path), nil
	default:
		return nil, fmt.Errorf("pose: unknown source %q (want keyboard, ws://..., or replay:<file>)", source)
	}
}
