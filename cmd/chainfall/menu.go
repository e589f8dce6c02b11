package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/platform/tui"
)

var flagMenuDifficulty string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game and mode picker menu",
	Long: `Start in interactive menu mode.

Use Up/Down to pick a game, Left/Right to pick its mode and Enter to play.
Tab opens the scoreboard. After a run you return to the menu.

Controls:
  Up/Down/j/k     - Navigate games
  Left/Right/h/l  - Change mode
  Enter/Space     - Play
  Tab             - Scores
  Q/Esc           - Quit

Examples:
  chainfall menu
  chainfall menu --fps 30
  chainfall menu --difficulty easy`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	configureGames("", "", flagMenuDifficulty)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	player := newAudio()
	defer player.Close()

	return tui.RunSession(tui.Deps{
		Store:  store,
		Audio:  player,
		Logger: logger,
	}, runtimeConfig(core.ModeNormal))
}
