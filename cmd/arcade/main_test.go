package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/motion-arcade/internal/config"
)

// withFlags resets the global flags for one test and isolates it from the
// user's config directory and environment.
func withFlags(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvPoseSource, "")
	t.Setenv(config.EnvPoseTimeout, "")
	t.Setenv(config.EnvBootAttempts, "")

	fps, poseSrc, cfgDir, difficulty, level := flagFPS, flagPose, flagConfig, flagDifficulty, flagLogLevel
	t.Cleanup(func() {
		flagFPS, flagPose, flagConfig, flagDifficulty, flagLogLevel = fps, poseSrc, cfgDir, difficulty, level
	})
	flagFPS, flagPose, flagConfig, flagDifficulty, flagLogLevel = 0, "", "", "", "info"
}

func TestLoadConfigPrecedence(t *testing.T) {
	withFlags(t)

	dir := t.TempDir()
	yaml := "surface:\n  width: 800\n  height: 600\ntick_rate: 20\npose:\n  source: replay:file.yaml\n  timeout: 1s\n"
	if err := os.WriteFile(filepath.Join(dir, "arcade.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	flagConfig = dir

	cfg, _, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Surface.Width != 800 || cfg.TickRate != 20 || cfg.Pose.Source != "replay:file.yaml" {
		t.Errorf("file settings not applied: %+v", cfg)
	}

	// Environment beats the file
	t.Setenv(config.EnvPoseTimeout, "3s")
	cfg, _, err = loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pose.Timeout != 3*time.Second {
		t.Errorf("env timeout = %v, want 3s", cfg.Pose.Timeout)
	}

	// Flags beat both
	t.Setenv(config.EnvPoseSource, "ws://env")
	flagFPS, flagPose = 45, "keyboard"
	cfg, _, err = loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != 45 || cfg.Pose.Source != "keyboard" {
		t.Errorf("flags not applied: tick=%d source=%q", cfg.TickRate, cfg.Pose.Source)
	}
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	withFlags(t)
	t.Setenv(config.EnvBootAttempts, "many")
	if _, _, err := loadConfig(); err == nil {
		t.Error("malformed ARCADE_BOOT_ATTEMPTS should fail")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	withFlags(t)

	flagLogLevel = "loud"
	if _, _, err := newLogger(false); err == nil {
		t.Error("unknown level should fail")
	}

	flagLogLevel = "debug"
	logger, closeLog, err := newLogger(true)
	if err != nil {
		t.Fatalf("newLogger(true) failed: %v", err)
	}
	defer closeLog()
	logger.Debug("hello")

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".arcade", "arcade.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestBuiltinEntries(t *testing.T) {
	entries := builtinEntries()
	want := []string{"runner", "tennis", "boxing", "yoga"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].ID, id)
		}
		if !isBuiltin(id) {
			t.Errorf("isBuiltin(%q) = false", id)
		}
	}
	if isBuiltin("pong") {
		t.Error("pong is not built in")
	}
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, want := range tests {
		if got := port(addr); got != want {
			t.Errorf("port(%q) = %q, want %q", addr, got, want)
		}
	}
}
