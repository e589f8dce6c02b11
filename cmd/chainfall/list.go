package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games and their modes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		games := registry.List()
		out := cmd.OutOrStdout()
		if len(games) == 0 {
			_, err := fmt.Fprintln(out, "no games registered")
			return err
		}

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Headers("ID", "TITLE", "MODES").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).PaddingRight(2)
				}
				return lipgloss.NewStyle().PaddingRight(2)
			})
		for _, g := range games {
			t.Row(g.ID, g.Title, strings.Join(g.Modes, " | "))
		}

		_, err := fmt.Fprintf(out, "%s\n\nStart one with: %s play <id>\n", t, cmd.Root().Name())
		return err
	},
}
