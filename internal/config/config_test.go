package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-stack/internal/games/tower/sim"
)

// isolate points the user and local search paths at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := LoadStack("")
	if err != nil {
		t.Fatalf("LoadStack() failed: %v", err)
	}
	if cfg != DefaultStackConfig() {
		t.Errorf("embedded defaults differ from DefaultStackConfig():\n got %+v\nwant %+v", cfg, DefaultStackConfig())
	}
	if !bytes.Contains(GetDefaultYAML(), []byte("bonus_threshold")) {
		t.Error("GetDefaultYAML() does not look like the stack config")
	}
}

func TestDefaultParams(t *testing.T) {
	p, err := DefaultStackConfig().ToParams()
	if err != nil {
		t.Fatalf("ToParams() failed: %v", err)
	}
	if p != sim.DefaultParams() {
		t.Errorf("ToParams() = %+v, want %+v", p, sim.DefaultParams())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "configs", "stack.yaml"), "display:\n  theme: pastel\n")
	cfg, err := LoadStack("")
	if err != nil {
		t.Fatalf("LoadStack() failed: %v", err)
	}
	if cfg.Display.Theme != "pastel" {
		t.Errorf("local config not used: theme = %q", cfg.Display.Theme)
	}

	writeFile(t, filepath.Join(dir, ".stack", "configs", "stack.yaml"), "display:\n  theme: neon\n")
	cfg, err = LoadStack("")
	if err != nil {
		t.Fatalf("LoadStack() failed: %v", err)
	}
	if cfg.Display.Theme != "neon" {
		t.Errorf("user config should win over local: theme = %q", cfg.Display.Theme)
	}

	custom := filepath.Join(dir, "custom.yaml")
	writeFile(t, custom, "display:\n  theme: mono\n")
	cfg, err = LoadStack(custom)
	if err != nil {
		t.Fatalf("LoadStack(custom) failed: %v", err)
	}
	if cfg.Display.Theme != "mono" {
		t.Errorf("custom config should win: theme = %q", cfg.Display.Theme)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	custom := filepath.Join(dir, "partial.yaml")
	writeFile(t, custom, "physics:\n  base_speed: 0.2\n")

	cfg, err := LoadStack(custom)
	if err != nil {
		t.Fatalf("LoadStack() failed: %v", err)
	}
	if cfg.Physics.BaseSpeed != 0.2 {
		t.Errorf("BaseSpeed = %v, want 0.2", cfg.Physics.BaseSpeed)
	}
	if cfg.Block != DefaultStackConfig().Block {
		t.Errorf("Block = %+v, want defaults", cfg.Block)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "physics: [1, 2\n"},
		{"negative width", "block:\n  width: -1\n"},
		{"unknown theme", "display:\n  theme: sepia\n"},
		{"zero scale", "display:\n  cell_scale: 0\n"},
		{"debris without gravity", "debris:\n  enabled: true\n  gravity: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			writeFile(t, path, tt.content)
			if _, err := LoadStack(path); err == nil {
				t.Errorf("LoadStack() accepted %q", tt.content)
			}
		})
	}

	if _, err := LoadStack(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadStack() accepted a missing file")
	}
}

func TestInvalidUserConfigFallsThrough(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".stack", "configs", "stack.yaml"), "block:\n  height: 0\n")

	cfg, err := LoadStack("")
	if err != nil {
		t.Fatalf("LoadStack() failed: %v", err)
	}
	if cfg != DefaultStackConfig() {
		t.Errorf("invalid user config should fall back to defaults, got %+v", cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultStackConfig()

	tests := []struct {
		preset        DifficultyPreset
		wantSpeed     float64
		wantStep      float64
		wantThreshold float64
	}{
		{DifficultyEasy, 0.07, 0.0035, 0.48},
		{DifficultyNormal, 0.1, 0.005, 0.3},
		{DifficultyHard, 0.15, 0.0075, 0.15},
		{DifficultyFixed, 0.1, 0, 0.3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := base
			ApplyPreset(&cfg, tt.preset)
			if math.Abs(cfg.Physics.BaseSpeed-tt.wantSpeed) > 1e-9 {
				t.Errorf("BaseSpeed = %v, want %v", cfg.Physics.BaseSpeed, tt.wantSpeed)
			}
			if math.Abs(cfg.Physics.SpeedStep-tt.wantStep) > 1e-9 {
				t.Errorf("SpeedStep = %v, want %v", cfg.Physics.SpeedStep, tt.wantStep)
			}
			if math.Abs(cfg.Placement.BonusThreshold-tt.wantThreshold) > 1e-9 {
				t.Errorf("BonusThreshold = %v, want %v", cfg.Placement.BonusThreshold, tt.wantThreshold)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}

	cfg := base
	ApplyPreset(&cfg, "insane")
	if cfg != base {
		t.Error("unknown preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf(`ParsePreset("") = %q, %v`, p, err)
	}
	for _, want := range Presets() {
		got, err := ParsePreset(string(want))
		if err != nil || got != want {
			t.Errorf("ParsePreset(%q) = %q, %v", want, got, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset accepted an unknown preset")
	}
}
