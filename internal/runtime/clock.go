package runtime

import (
	"context"
	"time"
)

// FrameClock paces the frame loop. Next blocks until the next frame is due
// and returns its timestamp, or returns ctx.Err() once ctx is done.
type FrameClock interface {
	Next(ctx context.Context) (time.Time, error)
}

// TickerClock fires at a fixed rate. Frames that are not consumed in time
// are dropped, never queued.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock creates a clock firing fps times per second.
func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 30
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Next waits for the next tick.
func (c *TickerClock) Next(ctx context.Context) (time.Time, error) {
	select {
	case t := <-c.ticker.C:
		return t, nil
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}

// Stop releases the ticker.
func (c *TickerClock) Stop() {
	c.ticker.Stop()
}

// ChanClock turns an externally driven frame callback into a FrameClock.
// Hosts with their own frame loop (the graphical window, tests) call Tick
// once per frame.
type ChanClock struct {
	ch chan time.Time
}

// NewChanClock creates an unbuffered clock.
func NewChanClock() *ChanClock {
	return &ChanClock{ch: make(chan time.Time)}
}

// Next waits for Tick.
func (c *ChanClock) Next(ctx context.Context) (time.Time, error) {
	select {
	case t := <-c.ch:
		return t, nil
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}

// Tick hands t to a loop waiting in Next. It reports false without
// blocking when no loop is waiting.
func (c *ChanClock) Tick(t time.Time) bool {
	select {
	case c.ch <- t:
		return true
	default:
		return false
	}
}

// TickWait hands t to the loop, blocking until one receives it or ctx is done.
func (c *ChanClock) TickWait(ctx context.Context, t time.Time) error {
	select {
	case c.ch <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
