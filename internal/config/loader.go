package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load fills cfg (already holding hard-coded defaults) from the first
// config file found.
// Search order: customDir/<name>.yaml -> ~/.arcade/configs/<name>.yaml ->
// ./configs/<name>.yaml -> embedded default.
// A file in customDir that exists but does not parse is an error; files in
// the other locations are skipped when broken.
func load[T any](name, customDir string, cfg *T) error {
	filename := name + ".yaml"

	if customDir != "" {
		path := filepath.Join(customDir, filename)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("failed to parse config %s: %w", path, err)
			}
			return nil
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fromFile T = *cfg
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			*cfg = fromFile
			return nil
		}
	}

	// Use embedded default YAML; on failure cfg keeps the hard-coded values
	var embedded T = *cfg
	if err := yaml.Unmarshal(GetDefaultYAML(name), &embedded); err == nil {
		*cfg = embedded
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadArcade loads the runtime configuration and validates it.
func LoadArcade(customDir string) (ArcadeConfig, error) {
	cfg := DefaultArcadeConfig()
	if err := load("arcade", customDir, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadRunner loads Runner configuration.
func LoadRunner(customDir string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	err := load("runner", customDir, &cfg)
	return cfg, err
}

// LoadTennis loads Tennis configuration.
func LoadTennis(customDir string) (TennisConfig, error) {
	cfg := DefaultTennisConfig()
	err := load("tennis", customDir, &cfg)
	return cfg, err
}

// LoadBoxing loads Boxing configuration.
func LoadBoxing(customDir string) (BoxingConfig, error) {
	cfg := DefaultBoxingConfig()
	err := load("boxing", customDir, &cfg)
	return cfg, err
}

// LoadGames loads every game configuration and applies a difficulty preset.
func LoadGames(customDir string, preset DifficultyPreset) (Games, error) {
	var (
		g   Games
		err error
	)
	if g.Runner, err = LoadRunner(customDir); err != nil {
		return g, err
	}
	if g.Tennis, err = LoadTennis(customDir); err != nil {
		return g, err
	}
	if g.Boxing, err = LoadBoxing(customDir); err != nil {
		return g, err
	}
	g.ApplyPreset(preset)
	return g, nil
}

// Validate rejects settings the runtime cannot work with.
func (c ArcadeConfig) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("config: surface size must be positive, got %dx%d", c.Surface.Width, c.Surface.Height)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Boot.MaxAttempts < 1 {
		return fmt.Errorf("config: boot.max_attempts must be at least 1, got %d", c.Boot.MaxAttempts)
	}
	if c.Pose.Timeout < 0 || c.MaxFrameDelta < 0 || c.Boot.Backoff < 0 {
		return fmt.Errorf("config: durations must not be negative")
	}
	return nil
}
