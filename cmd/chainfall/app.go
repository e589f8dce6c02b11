package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/chainfall/internal/audio"
	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall"
	"github.com/vovakirdan/chainfall/internal/games/snake"
	"github.com/vovakirdan/chainfall/internal/logging"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/storage"
)

// openStore opens the database. Failures are logged and yield nil: every
// game runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	store.SetLogger(logging.Sub(logger, "storage"))
	return store
}

// newAudio opens the sound device unless --mute is set.
func newAudio() audio.Player {
	return audio.New(!flagMute, 0.5, logging.Sub(logger, "audio"))
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig(mode string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Mode = mode
	return cfg
}

// configureGames applies config file and difficulty flags before games are
// created. configPath only applies to gameID.
func configureGames(gameID, configPath, difficulty string) {
	switch gameID {
	case chainfall.GameID:
		chainfall.SetConfigPath(configPath)
	case snake.GameID:
		snake.SetConfigPath(configPath)
	}
	chainfall.SetDifficultyPreset(difficulty)
	snake.SetDifficultyPreset(difficulty)
}

// requireGame fails with a hint when gameID is not registered.
func requireGame(gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'chainfall list' to see available games", gameID)
	}
	return nil
}
