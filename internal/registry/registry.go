// Package registry maps game ids to their descriptors and module factories.
// Menu order is registration order; registering an id again replaces the
// previous entry in place.
package registry

import (
	"fmt"
	"math"
	"sync"

	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// Module is the contract every motion game implements.
// Games contain pure simulation and drawing logic; the runtime handles pose
// acquisition, timing and presentation.
type Module interface {
	// Init resets all entity state to the starting configuration.
	// Calling it twice is the same as calling it once.
	Init()

	// Update advances the simulation by dt seconds and draws one full frame
	// onto s, whose logical size is w x h. p is nil when nobody was detected.
	// It returns the current score, always finite and non-negative.
	Update(s core.Surface, w, h int, p *pose.Pose, dt float64) float64
}

// Finisher is implemented by modules that can end a run on their own
// (the runner hitting an obstacle, a lost tennis point).
type Finisher interface {
	Finished() bool
}

// Factory creates a fresh module instance.
type Factory func() Module

// Instance returns a factory that always yields m. Useful when a caller
// already holds a module value; Init still resets it on every launch.
func Instance(m Module) Factory {
	return func() Module { return m }
}

// DefaultCamOpacity is the camera backdrop opacity used when a descriptor
// does not set one.
const DefaultCamOpacity = 0.2

// Descriptor is the menu-facing metadata of a game.
type Descriptor struct {
	Name       string
	Icon       string
	CamOpacity float64 // Opacity of the camera feed behind the game, 0..1
}

// NewDescriptor creates a descriptor with the default camera opacity.
func NewDescriptor(name, icon string) Descriptor {
	return Descriptor{Name: name, Icon: icon, CamOpacity: DefaultCamOpacity}
}

// Entry is one registered game.
type Entry struct {
	ID         string
	Descriptor Descriptor
	Factory    Factory
}

// RegistrationFailure describes a registration that was ignored.
type RegistrationFailure struct {
	ID     string
	Reason string
}

func (e *RegistrationFailure) Error() string {
	return fmt.Sprintf("registry: cannot register %q: %s", e.ID, e.Reason)
}

// Registry holds registered games. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register inserts or replaces a game. A replaced entry keeps its menu
// position. An empty id or nil factory is rejected without touching the
// registry and reported as a *RegistrationFailure.
func (r *Registry) Register(id string, desc Descriptor, f Factory) (replaced bool, err error) {
	if id == "" {
		return false, &RegistrationFailure{ID: id, Reason: "empty id"}
	}
	if f == nil {
		return false, &RegistrationFailure{ID: id, Reason: "nil module factory"}
	}
	if math.IsNaN(desc.CamOpacity) {
		desc.CamOpacity = DefaultCamOpacity
	}
	desc.CamOpacity = core.ClampF(desc.CamOpacity, 0, 1)
	if desc.Name == "" {
		desc.Name = id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := Entry{ID: id, Descriptor: desc, Factory: f}
	if i, ok := r.index[id]; ok {
		r.entries[i] = e
		return true, nil
	}
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, e)
	return false, nil
}

// List returns the registered games in registration order.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Get looks up a game by id.
func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Exists checks if a game with the given id is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Len returns the number of registered games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
