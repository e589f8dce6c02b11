package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/session"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the leaderboard of one mode of a game, with run statistics.

Examples:
  chainfall scores chainfall
  chainfall scores chainfall --mode challenger
  chainfall scores snake --limit 20
  chainfall scores snake --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", core.ModeNormal, "Mode: normal, challenger")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", session.DefaultCap, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the game's leaderboard (all modes)")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store == nil {
		return errors.New("no database available")
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearLeaderboard(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared the %s leaderboard.\n", game.Title())
		return nil
	}

	mode := core.NormalizeMode(flagScoresMode)
	top := session.Top(store.Entries(gameID), mode, flagScoresLimit)

	fmt.Printf("High Scores - %s (%s)\n", game.Title(), mode)
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'chainfall play %s --mode %s' to set the first high score!\n", gameID, mode)
		return nil
	}

	fmt.Printf("  %-4s  %-4s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-4s  %s\n", "----", "----", "-----")
	for i, e := range top {
		fmt.Printf("  %-4d  %-4s  %d\n", i+1, e.Name, e.Score)
	}

	stats, err := store.Stats(gameID, mode)
	if err != nil {
		logger.Warn("run statistics unavailable", "err", err)
		return nil
	}
	if stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Last played: %s\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
