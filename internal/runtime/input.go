package runtime

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// PoseInput adapts a pose backend to the frame loop: one Await per tick,
// nil when nobody is in view, and every failure returned as an error
// instead of a panic. It never retries.
type PoseInput struct {
	backend pose.Backend
	timeout time.Duration
	logger  *log.Logger
	limiter *rate.Limiter // Throttles repeated log lines
	empty   int           // Consecutive ticks without a detection
}

// NewPoseInput wraps backend. A zero timeout waits for inference forever.
func NewPoseInput(backend pose.Backend, timeout time.Duration, logger *log.Logger) *PoseInput {
	return &PoseInput{
		backend: backend,
		timeout: timeout,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

// Await runs one estimate and returns the first detected pose.
func (in *PoseInput) Await(ctx context.Context) (p *pose.Pose, err error) {
	if in.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = nil, panicError{value: r}
		}
	}()

	poses, err := in.backend.Estimate(ctx)
	if err != nil {
		if in.limiter.Allow() {
			in.logger.Warn("pose estimate failed", "err", err)
		}
		return nil, err
	}

	p = pose.First(poses)
	if p == nil {
		in.empty++
		if in.limiter.Allow() {
			in.logger.Debug("nobody in view", "frames", in.empty)
		}
	} else {
		in.empty = 0
	}
	return p, nil
}
