package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML ChainfallConfig
	if err := yaml.Unmarshal(GetDefaultYAML("chainfall"), &fromYAML); err != nil {
		t.Fatalf("embedded chainfall.yaml does not parse: %v", err)
	}
	if fromYAML != DefaultChainfallConfig() {
		t.Errorf("embedded chainfall.yaml drifted from DefaultChainfallConfig()")
	}

	var snake SnakeConfig
	if err := yaml.Unmarshal(GetDefaultYAML("snake"), &snake); err != nil {
		t.Fatalf("embedded snake.yaml does not parse: %v", err)
	}
	if snake != DefaultSnakeConfig() {
		t.Errorf("embedded snake.yaml drifted from DefaultSnakeConfig()")
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultChainfallConfig().Validate(); err != nil {
		t.Errorf("default chainfall config invalid: %v", err)
	}
	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("default snake config invalid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cf.yaml")
	data := []byte("player:\n  max_ammo: 7\ncombat:\n  multi_kill_window_ms: 1500\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadChainfall(path)
	if err != nil {
		t.Fatalf("LoadChainfall() failed: %v", err)
	}
	if cfg.Player.MaxAmmo != 7 || cfg.Combat.MultiKillWindowMs != 1500 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Player, cfg.Combat)
	}
	if cfg.Player.Speed != 220 || cfg.Platforms.MinGap != 70 {
		t.Error("keys absent from the file should keep their defaults")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadChainfall(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing explicit config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("platforms:\n  min_gap: 200\n"), 0o644)
	_, err := LoadChainfall(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadChainfall() = %v, expected ErrInvalid", err)
	}
}

func TestSteppedDifficulty(t *testing.T) {
	dm := NewDifficultyManager(DefaultChainfallConfig().Difficulty)

	tests := []struct {
		depth float64
		want  float64
	}{
		{-50, 0},
		{0, 0},
		{999, 0},
		{1000, 0.15},
		{2500, 0.30},
		{6999, 0.90},
		{7000, 1.0},
		{50000, 1.0},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.depth); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Level(%v) = %v, expected %v", tc.depth, got, tc.want)
		}
	}
}

func TestLinearDifficultyAndPresets(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})
	if got := dm.Level(50); got != 0.75 {
		t.Errorf("Level(50) = %v, expected 0.75", got)
	}
	if got := dm.Lerp(10, 20, 100); got != 20 {
		t.Errorf("Lerp at max = %v, expected 20", got)
	}

	cfg := DefaultChainfallConfig()
	ApplyChainfallPreset(&cfg, DifficultyFixed)
	if NewDifficultyManager(cfg.Difficulty).IsEnabled() {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultChainfallConfig()
	ApplyChainfallPreset(&cfg, DifficultyEasy)
	if cfg.Player.MaxAmmo <= DefaultChainfallConfig().Player.MaxAmmo {
		t.Error("easy preset should grant more ammo")
	}

	if _, err := ParsePreset("brutal"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParsePreset(brutal) = %v", err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
}
