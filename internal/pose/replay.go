package pose

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Recording is the on-disk format of a replay file.
//
//	frames:
//	  - poses:
//	      - keypoints:
//	          - {name: nose, x: 0.5, y: 0.3, score: 0.9}
//	  - poses: []        # nobody in view
type Recording struct {
	Frames []RecordedFrame `yaml:"frames"`
}

// RecordedFrame is one estimate result.
type RecordedFrame struct {
	Poses []Pose `yaml:"poses"`
}

// ReplayBackend plays a recording back one frame per Estimate, looping.
type ReplayBackend struct {
	path string

	mu     sync.Mutex
	frames []RecordedFrame
	next   int
	booted bool
}

// NewReplayBackend creates a backend that loads path on Boot.
func NewReplayBackend(path string) *ReplayBackend {
	return &ReplayBackend{path: path}
}

// NewReplayFromFrames creates an already-loaded backend.
func NewReplayFromFrames(frames []RecordedFrame) *ReplayBackend {
	return &ReplayBackend{frames: frames}
}

// LoadRecording reads and parses a replay file.
func LoadRecording(path string) (Recording, error) {
	var rec Recording
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("pose: failed to read recording %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("pose: failed to parse recording %s: %w", path, err)
	}
	if len(rec.Frames) == 0 {
		return rec, fmt.Errorf("pose: recording %s has no frames", path)
	}
	for i, f := range rec.Frames {
		for _, p := range f.Poses {
			for _, kp := range p.Keypoints {
				if !kp.Name.Known() {
					return rec, fmt.Errorf("pose: recording %s frame %d: unknown keypoint %q", path, i, kp.Name)
				}
			}
		}
	}
	return rec, nil
}

// Boot loads the recording from disk when one was not supplied directly.
func (r *ReplayBackend) Boot(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.booted {
		return nil
	}
	if r.frames == nil {
		rec, err := LoadRecording(r.path)
		if err != nil {
			return err
		}
		r.frames = rec.Frames
	}
	if len(r.frames) == 0 {
		return fmt.Errorf("pose: replay has no frames")
	}
	r.booted = true
	return nil
}

// Ready reports whether the recording is loaded.
func (r *ReplayBackend) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Estimate returns the next recorded frame.
func (r *ReplayBackend) Estimate(ctx context.Context) ([]Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.booted {
		return nil, ErrNotBooted
	}
	frame := r.frames[r.next%len(r.frames)]
	r.next++
	return frame.Poses, nil
}

// Close rewinds the recording.
func (r *ReplayBackend) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next = 0
	r.booted = false
	return nil
}
