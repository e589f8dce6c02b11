package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".chainfall"

// LoadChainfall loads Chainfall configuration.
// Search order: customPath -> ~/.chainfall/configs/chainfall.yaml ->
// ./configs/chainfall.yaml -> embedded default.
func LoadChainfall(customPath string) (ChainfallConfig, error) {
	cfg, err := load("chainfall.yaml", customPath, defaultChainfallYAML, DefaultChainfallConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadSnake loads Snake configuration with the same search order.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, err := load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load decodes the first readable source over the hard-coded defaults, so a
// file only needs the keys it changes. An explicit path must exist and parse;
// the implicit locations are skipped when unreadable.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyChainfallPreset adjusts the config for a difficulty preset.
func ApplyChainfallPreset(cfg *ChainfallConfig, preset DifficultyPreset) {
	cfg.Difficulty = cfg.Difficulty.applyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxAmmo += 4
		cfg.Enemies.ShieldChance /= 2
		cfg.Hazards.ToggleMinMs *= 2
		cfg.Hazards.ToggleMaxMs *= 2
	case DifficultyHard:
		cfg.Player.MaxAmmo -= 2
		cfg.Enemies.ShieldChance *= 2
	}
}

// ApplySnakePreset adjusts the config for a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Difficulty = cfg.Difficulty.applyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Speed.BaseTicksPerMove += 2
		cfg.Scoring.ComboWindowMs += 1000
	case DifficultyHard:
		cfg.Speed.BaseTicksPerMove = max(cfg.Speed.MinTicksPerMove, cfg.Speed.BaseTicksPerMove-2)
	}
}
