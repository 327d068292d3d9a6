// Package games is the compile-time table of built-in motion games.
package games

import (
	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/games/boxing"
	"github.com/vovakirdan/motion-arcade/internal/games/placeholder"
	"github.com/vovakirdan/motion-arcade/internal/games/runner"
	"github.com/vovakirdan/motion-arcade/internal/games/tennis"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

// Builtin is one entry of the factory table.
type Builtin struct {
	ID         string
	Descriptor registry.Descriptor
	Factory    registry.Factory
}

// Builtins returns the built-in games in menu order. Every factory call
// yields a fresh module seeded with seed.
func Builtins(cfg config.Games, seed int64) []Builtin {
	return []Builtin{
		{
			ID:         "runner",
			Descriptor: registry.NewDescriptor("Runner", "🏃"),
			Factory:    func() registry.Module { return runner.New(cfg.Runner, seed) },
		},
		{
			ID:         "tennis",
			Descriptor: registry.Descriptor{Name: "Tennis", Icon: "🎾", CamOpacity: 0.15},
			Factory:    func() registry.Module { return tennis.New(cfg.Tennis, seed) },
		},
		{
			ID:         "boxing",
			Descriptor: registry.Descriptor{Name: "Boxing", Icon: "🥊", CamOpacity: 0.3},
			Factory:    func() registry.Module { return boxing.New(cfg.Boxing, seed) },
		},
		{
			ID:         "yoga",
			Descriptor: registry.NewDescriptor("Yoga", "🧘"),
			Factory:    func() registry.Module { return placeholder.New("Yoga") },
		},
	}
}

// Registrar accepts game registrations. *runtime.Orchestrator and
// *registry.Registry both satisfy it.
type Registrar interface {
	Register(id string, desc registry.Descriptor, f registry.Factory) (bool, error)
}

// RegisterAll registers every built-in game.
func RegisterAll(r Registrar, cfg config.Games, seed int64) error {
	for _, b := range Builtins(cfg, seed) {
		if _, err := r.Register(b.ID, b.Descriptor, b.Factory); err != nil {
			return err
		}
	}
	return nil
}
