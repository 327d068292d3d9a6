package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override arcade.yaml.
const (
	EnvPoseSource   = "ARCADE_POSE_SOURCE"
	EnvPoseTimeout  = "ARCADE_POSE_TIMEOUT"
	EnvBootAttempts = "ARCADE_BOOT_ATTEMPTS"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides runtime settings from the environment.
func ApplyEnv(cfg *ArcadeConfig) error {
	if v := os.Getenv(EnvPoseSource); v != "" {
		cfg.Pose.Source = v
	}
	if v := os.Getenv(EnvPoseTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPoseTimeout, err)
		}
		cfg.Pose.Timeout = d
	}
	if v := os.Getenv(EnvBootAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvBootAttempts, err)
		}
		cfg.Boot.MaxAttempts = n
	}
	return cfg.Validate()
}
