package cmd

import (
	"fmt"

	"github.com/theirongolddev/pflow/internal/config"
	"github.com/theirongolddev/pflow/internal/tui"
	"github.com/theirongolddev/pflow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The TUI parses --import itself so it can show progress.
	s, err := loadSession(false)
	if err != nil {
		return err
	}
	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor so background fills render even when lipgloss would
	// otherwise detect the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s.ws, s.cfg, tui.Options{
		Today:      s.today,
		FirstRun:   !config.Exists(),
		ImportPath: flagImport,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
