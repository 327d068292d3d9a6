package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/pose"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

// fakeBackend is a scripted pose source.
type fakeBackend struct {
	mu        sync.Mutex
	ready     bool
	bootFails int // Boot fails this many more times
	boots     int
	closed    bool
	estimate  func(ctx context.Context) ([]pose.Pose, error)
}

func (b *fakeBackend) Boot(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boots++
	if b.bootFails > 0 {
		b.bootFails--
		return errors.New("camera permission denied")
	}
	b.ready = true
	return nil
}

func (b *fakeBackend) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

func (b *fakeBackend) Estimate(ctx context.Context) ([]pose.Pose, error) {
	b.mu.Lock()
	fn := b.estimate
	b.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.ready = false
	return nil
}

func (b *fakeBackend) bootCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.boots
}

// fakeDisplay records every presentation call.
type fakeDisplay struct {
	mu       sync.Mutex
	menus    [][]string
	games    []string
	frames   int
	scores   []float64
	messages []string
}

func (d *fakeDisplay) ShowMenu(entries []registry.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	d.menus = append(d.menus, ids)
}

func (d *fakeDisplay) ShowGame(id string, _ registry.Descriptor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.games = append(d.games, id)
}

func (d *fakeDisplay) Present([]core.Op) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames++
}

func (d *fakeDisplay) SetScore(score float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scores = append(d.scores, score)
}

func (d *fakeDisplay) Message(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, text)
}

func (d *fakeDisplay) lastMenu() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.menus) == 0 {
		return nil
	}
	return d.menus[len(d.menus)-1]
}

func (d *fakeDisplay) menuCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.menus)
}

func (d *fakeDisplay) lastMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.messages) == 0 {
		return ""
	}
	return d.messages[len(d.messages)-1]
}

// stubModule counts calls and can be told to misbehave.
type stubModule struct {
	mu          sync.Mutex
	inits       int
	updates     int
	dts         []float64
	poses       []*pose.Pose
	finishAfter int // Finished once updates reaches this, 0 = never
	panicOn     int // Panic on this update, 0 = never
	score       float64
	active      *int32 // Shared overlap detector
	overlap     *int32
}

func (m *stubModule) Init() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inits++
	m.updates = 0
	m.score = 0
	m.dts = nil
	m.poses = nil
}

func (m *stubModule) Update(s core.Surface, w, h int, p *pose.Pose, dt float64) float64 {
	if m.active != nil {
		if atomic.AddInt32(m.active, 1) > 1 {
			atomic.StoreInt32(m.overlap, 1)
		}
		defer atomic.AddInt32(m.active, -1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.dts = append(m.dts, dt)
	m.poses = append(m.poses, p)
	if m.panicOn != 0 && m.updates == m.panicOn {
		panic("boom")
	}
	s.Clear(core.ColorBlack)
	s.FillCircle(float64(w)/2, float64(h)/2, 10, core.ColorRed)
	m.score += 10 * dt
	return m.score
}

func (m *stubModule) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finishAfter != 0 && m.updates >= m.finishAfter
}

func (m *stubModule) counts() (inits, updates int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inits, m.updates
}

// fakeScores collects recorded scores.
type fakeScores struct {
	mu     sync.Mutex
	scores map[string][]float64
}

func (s *fakeScores) RecordScore(id string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scores == nil {
		s.scores = make(map[string][]float64)
	}
	s.scores[id] = append(s.scores[id], score)
	return nil
}

func (s *fakeScores) get(id string) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores[id]
}

// harness wires an orchestrator to a manual clock.
type harness struct {
	t       *testing.T
	o       *Orchestrator
	backend *fakeBackend
	display *fakeDisplay
	clock   *ChanClock
	reports chan tickReport
	now     time.Time
}

func newHarness(t *testing.T, mutate func(*config.ArcadeConfig)) *harness {
	t.Helper()
	cfg := config.DefaultArcadeConfig()
	cfg.Boot.Backoff = time.Millisecond
	cfg.Boot.MaxBackoff = 2 * time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{
		t:       t,
		backend: &fakeBackend{},
		display: &fakeDisplay{},
		clock:   NewChanClock(),
		reports: make(chan tickReport, 64),
		now:     time.Unix(1_700_000_000, 0),
	}
	h.o = New(registry.New(), h.backend, h.display, WithClock(h.clock), WithConfig(cfg))
	h.o.afterTick = func(r tickReport) { h.reports <- r }
	t.Cleanup(func() { h.o.Close() })
	return h
}

// step advances the clock by d, delivers one frame and waits for the tick
// to finish.
func (h *harness) step(d time.Duration) tickReport {
	h.t.Helper()
	h.now = h.now.Add(d)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.clock.TickWait(ctx, h.now); err != nil {
		h.t.Fatalf("no loop accepted the frame: %v", err)
	}
	select {
	case r := <-h.reports:
		return r
	case <-ctx.Done():
		h.t.Fatal("tick did not finish")
		return tickReport{}
	}
}

// noLoop asserts that nothing is waiting for frames.
func (h *harness) noLoop() {
	h.t.Helper()
	time.Sleep(20 * time.Millisecond)
	if h.clock.Tick(h.now) {
		h.t.Error("a frame loop is still waiting for frames")
	}
}

func (h *harness) register(id string, m registry.Module) {
	h.t.Helper()
	if _, err := h.o.Register(id, registry.NewDescriptor(id, ""), registry.Instance(m)); err != nil {
		h.t.Fatal(err)
	}
}
