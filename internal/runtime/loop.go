package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/pose"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

// loop runs one launch generation. Each iteration waits for the frame
// clock, awaits one pose estimate (the only suspension) and then runs the
// synchronous part of the tick under the lock. A single goroutine per
// generation means ticks never overlap.
func (o *Orchestrator) loop(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	for {
		now, err := o.clock.Next(ctx)
		if err != nil {
			return
		}

		p, perr := o.input.Await(ctx)
		if ctx.Err() != nil {
			// Stopped while waiting for inference
			return
		}

		report := o.tick(gen, now, p, perr)
		if report.finished {
			o.recordScore(report.gameID, report.score)
		}
		if o.afterTick != nil {
			o.afterTick(report)
		}
		if report.dropped || report.err != nil || report.finished {
			return
		}
	}
}

// tick is the synchronous section: dt, update, score, present, finish check.
func (o *Orchestrator) tick(gen uint64, now time.Time, p *pose.Pose, perr error) tickReport {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen || !o.state.LoopRunning {
		return tickReport{gen: gen, dropped: true}
	}
	id := o.state.ActiveGameID
	report := tickReport{gen: gen, gameID: id}

	if perr != nil {
		lf := &LoopFailure{Stage: StagePose, GameID: id, Err: perr}
		o.failLocked(lf)
		report.err = lf
		return report
	}

	dt := o.frameDelta(now)
	o.rec.Reset()
	score, err := safeUpdate(o.module, o.rec, o.state.SurfaceW, o.state.SurfaceH, p, dt)
	if err == nil && (!core.Finite(score) || score < 0) {
		err = fmt.Errorf("invalid score %v", score)
	}
	if err != nil {
		lf := &LoopFailure{Stage: StageUpdate, GameID: id, Err: err}
		o.failLocked(lf)
		report.err = lf
		return report
	}

	o.score = score
	report.score = score
	o.display.SetScore(score)
	o.display.Present(o.rec.Snapshot())

	if f, ok := o.module.(registry.Finisher); ok && f.Finished() {
		o.gameOverLocked(score)
		report.finished = true
	}
	return report
}

// frameDelta returns the seconds since the previous tick, clamped to the
// configured maximum. The first tick of a launch has dt 0.
func (o *Orchestrator) frameDelta(now time.Time) float64 {
	prev := o.lastFrame
	o.lastFrame = now
	if prev.IsZero() || !now.After(prev) {
		return 0
	}
	d := now.Sub(prev)
	if limit := o.cfg.MaxFrameDelta; limit > 0 && d > limit {
		d = limit
	}
	return d.Seconds()
}

// safeUpdate runs one module update, converting a panic into an error.
func safeUpdate(m registry.Module, s core.Surface, w, h int, p *pose.Pose, dt float64) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			score, err = 0, panicError{value: r}
		}
	}()
	return m.Update(s, w, h, p, dt), nil
}

// IsPanic reports whether err came from a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}
