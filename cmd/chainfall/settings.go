package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/platform/tui"
)

var flagResetTutorial bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or reset stored settings",
	Long: `Print the stored settings. --reset-tutorial shows the first-run hints
again on the next start.

Examples:
  chainfall settings
  chainfall settings --reset-tutorial`,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&flagResetTutorial, "reset-tutorial", false, "Mark the tutorial as not completed")
}

func runSettings(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store == nil {
		return errors.New("no database available")
	}
	defer store.Close()

	st := store.LoadSettings(tui.AppName)
	if flagResetTutorial {
		st.TutorialCompleted = false
		if err := store.SaveSettings(tui.AppName, st); err != nil {
			return err
		}
	}

	fmt.Printf("tutorialCompleted: %v\n", st.TutorialCompleted)
	return nil
}
