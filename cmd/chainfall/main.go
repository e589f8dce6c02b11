// chainfall is a descent shooter for the terminal, a desktop window or SSH.
//
// Usage:
//
//	chainfall list               - List available games
//	chainfall play [game]        - Play a game (chainfall by default)
//	chainfall menu               - Start menu to pick games interactively
//	chainfall serve              - Start SSH server for remote play
//	chainfall scores <game>      - Show high scores for a game
//	chainfall settings           - Show or reset stored settings
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.chainfall/arcade.db)
//	--log-level <level>   - debug, info, warn or error (default: warn)
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/chainfall/internal/games/chainfall"
	_ "github.com/vovakirdan/chainfall/internal/games/snake"
	"github.com/vovakirdan/chainfall/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagMute     bool

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainfall",
	Short: "Chainfall - fall, shoot, land, cash the combo",
	Long: `Chainfall is a vertical descent shooter. Drop between platforms,
shoot enemies below you while airborne and land to cash in the combo.

Available commands:
  list      - Show all available games
  play      - Play a game directly
  menu      - Interactive game and mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  settings  - Show or reset stored settings

Examples:
  chainfall play
  chainfall play --mode challenger
  chainfall play --window
  chainfall play snake --difficulty hard
  chainfall menu
  chainfall serve --ssh :2222
  chainfall scores chainfall --mode challenger`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logging.New("chainfall", flagLogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chainfall/arcade.db", "Path to the leaderboard and settings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
}
