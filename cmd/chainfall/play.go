package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall"
	"github.com/vovakirdan/chainfall/internal/platform/tui"
	"github.com/vovakirdan/chainfall/internal/platform/window"
	"github.com/vovakirdan/chainfall/internal/registry"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
	flagWindow     bool
	flagScale      float64
	flagFireKey    string
	flagChargeKey  string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (chainfall when omitted).

Controls:
  A/D, Left/Right  - Move
  W/Up/Space       - Jump
  J/X              - Fire (airborne only)
  K/Z              - Hold to charge, release to fire the piercing ray
  P                - Pause
  Esc/B            - Back to menu
  Q/Ctrl+C         - Quit

Modes:
  normal      - Landing cashes in the combo
  challenger  - Landing with a live combo ends the run

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  chainfall play
  chainfall play --mode challenger
  chainfall play --window --scale 1.5
  chainfall play snake --difficulty hard
  chainfall play --fire-key f --charge-key g
  chainfall play --config ./my-chainfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", core.ModeNormal, "Game mode: normal, challenger")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
	playCmd.Flags().StringVar(&flagFireKey, "fire-key", "", "Rebind fire to a letter key (terminal)")
	playCmd.Flags().StringVar(&flagChargeKey, "charge-key", "", "Rebind charge to a letter key (terminal)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := chainfall.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if err := requireGame(gameID); err != nil {
		return err
	}
	if !registry.HasMode(gameID, flagMode) {
		return fmt.Errorf("game %q has no mode %q", gameID, flagMode)
	}

	configureGames(gameID, flagConfig, flagDifficulty)
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	player := newAudio()
	defer player.Close()

	cfg := runtimeConfig(flagMode)
	logger.Debug("starting game", "game", gameID, "mode", cfg.Mode, "seed", cfg.Seed, "window", flagWindow)

	if flagWindow {
		return window.Run(game, window.Options{
			Store:  store,
			Audio:  player,
			Logger: logger,
			Scale:  flagScale,
		}, cfg)
	}

	keys := tui.NewKeyMapper()
	rebind(keys, core.ActionFire, flagFireKey)
	rebind(keys, core.ActionCharge, flagChargeKey)

	return tui.Run(game, tui.Deps{
		Store:  store,
		Audio:  player,
		Keys:   keys,
		Logger: logger,
	}, cfg)
}

// rebind applies a key flag. A rejected key keeps the default binding.
func rebind(keys *tui.KeyMapper, action core.Action, k string) {
	if k == "" {
		return
	}
	if err := keys.Rebind(action, k); err != nil {
		logger.Warn("keeping default binding", "action", action, "err", err)
	}
}
