package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/pflow/internal/config"
	"github.com/theirongolddev/pflow/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}
	latencies := []huh.Option[int]{
		huh.NewOption("instant", 0),
		huh.NewOption("0.5s", 500),
		huh.NewOption("2s", 2000),
		huh.NewOption("5s", 5000),
	}

	themeName := cfg.Appearance.Theme
	latency := cfg.General.ReportLatencyMs
	seed := cfg.General.Seed
	signIn := cfg.Session.Authenticated

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pflow").
				Description("Settings are saved to "+config.ConfigPath()+"."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&themeName),
			huh.NewSelect[int]().
				Title("Report generation delay").
				Options(latencies...).
				Value(&latency),
			huh.NewConfirm().
				Title("Start with sample data?").
				Value(&seed),
			huh.NewConfirm().
				Title("Sign in now?").
				Affirmative("Sign in").
				Negative("Later").
				Value(&signIn),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled; nothing saved.")
			return nil
		}
		return err
	}

	cfg.Appearance.Theme = themeName
	cfg.General.ReportLatencyMs = latency
	cfg.General.Seed = seed
	cfg.Session.Authenticated = signIn
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Theme %s, report delay %dms\n", themeName, latency)
	fmt.Println("  Run `pflow setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
