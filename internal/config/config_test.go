package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded config %+v differs from DefaultConfig %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "pacing:\n  half_turn_delay_ms: 50\nsolver:\n  attempts: 4\n  seed: 9\n")

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != path {
		t.Errorf("expected source %s, got %s", path, source)
	}
	if cfg.Pacing.HalfTurnDelayMs != 50 || cfg.Solver.Attempts != 4 || cfg.Solver.Seed != 9 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Keys not in the file keep their defaults
	if cfg.Display.TickRate != 60 || cfg.Pacing.VictoryHoldMs != 1500 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "display:\n  tick_rate: 0\n")
	_, _, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "tick_rate") {
		t.Errorf("expected tick_rate validation error, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	_, source, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != "embedded" {
		t.Errorf("expected embedded default, got %s", source)
	}

	writeFile(t, filepath.Join(work, "configs", FileName), "display:\n  tick_rate: 30\n")
	cfg, source, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != filepath.Join("configs", FileName) || cfg.Display.TickRate != 30 {
		t.Errorf("expected local config, got %s with %+v", source, cfg.Display)
	}

	userPath := filepath.Join(home, ".overmove", "configs", FileName)
	writeFile(t, userPath, "display:\n  tick_rate: 20\n")
	cfg, source, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != userPath || cfg.Display.TickRate != 20 {
		t.Errorf("expected user config, got %s with %+v", source, cfg.Display)
	}

	// An invalid user file is skipped rather than fatal
	writeFile(t, userPath, "display:\n  tick_rate: -1\n")
	cfg, _, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.TickRate != 30 {
		t.Errorf("expected fallback to local config, got tick rate %d", cfg.Display.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"tick rate", func(c *Config) { c.Display.TickRate = 0 }, "tick_rate"},
		{"half turn", func(c *Config) { c.Pacing.HalfTurnDelayMs = -1 }, "half_turn_delay_ms"},
		{"victory", func(c *Config) { c.Pacing.VictoryHoldMs = -1 }, "victory_hold_ms"},
		{"defeat", func(c *Config) { c.Pacing.DefeatHoldMs = -5 }, "defeat_hold_ms"},
		{"attempts", func(c *Config) { c.Solver.Attempts = 0 }, "attempts"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("expected error mentioning %s, got %v", tc.field, err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestRuntime(t *testing.T) {
	cfg := DefaultConfig()
	rc := cfg.Runtime(100, 30, 42)

	if rc.ScreenW != 100 || rc.ScreenH != 30 || rc.Seed != 42 {
		t.Errorf("unexpected runtime config %+v", rc)
	}
	if rc.HalfTurnDelay != 300*time.Millisecond || rc.VictoryHold != 1500*time.Millisecond {
		t.Errorf("unexpected durations %+v", rc)
	}
	if rc.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", rc.TickRate)
	}
}

func TestDefaultDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := DefaultDBPath(); got != filepath.Join(home, ".overmove", "history.db") {
		t.Errorf("unexpected db path %s", got)
	}
}
