package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/config"
	"github.com/theirongolddev/pflow/internal/tui/components"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldSession
	settingsFieldLatency
	settingsFieldSeed
	settingsFieldCount // sentinel
)

// latencySteps are the report delays the settings tab cycles through, in ms.
var latencySteps = []int{0, 500, 2000, 5000}

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	saved   bool  // flash "saved" after a change
	saveErr error // non-nil if the last save failed
}

func (a App) updateSettings(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter", " ":
		a.settingsToggle()
	default:
		return a, nil, false
	}
	return a, nil, true
}

// settingsToggle advances the selected field and persists the config.
func (a *App) settingsToggle() {
	switch a.settings.cursor {
	case settingsFieldTheme:
		next := theme.Next(a.cfg.Appearance.Theme)
		a.cfg.Appearance.Theme = next.Name
		theme.SetActive(next.Name)
		a.spinner.Style = a.spinner.Style.Foreground(next.Accent).Background(next.Surface)
	case settingsFieldSession:
		a.cfg.Session.Authenticated = !a.cfg.Session.Authenticated
	case settingsFieldLatency:
		a.cfg.General.ReportLatencyMs = nextLatency(a.cfg.General.ReportLatencyMs)
		a.requester.Latency = a.cfg.ReportLatency()
	case settingsFieldSeed:
		a.cfg.General.Seed = !a.cfg.General.Seed
	}
	a.settings.saveErr = config.Save(a.cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func nextLatency(ms int) int {
	for _, step := range latencySteps {
		if step > ms {
			return step
		}
	}
	return latencySteps[0]
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	session := "signed out"
	if a.cfg.Session.Authenticated {
		session = "signed in"
	}
	seed := "off (start empty)"
	if a.cfg.General.Seed {
		seed = "on"
	}

	fields := []struct{ label, value string }{
		{"Theme", a.cfg.Appearance.Theme},
		{"Session", session},
		{"Report latency", (time.Duration(a.cfg.General.ReportLatencyMs) * time.Millisecond).String()},
		{"Seed data", seed},
	}

	var form strings.Builder
	for i, f := range fields {
		if i > 0 {
			form.WriteString("\n")
		}
		if i == a.settings.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			form.WriteString(selectedStyle.Render(f.value))
			continue
		}
		form.WriteString(labelStyle.Render(fmt.Sprintf("  %-18s ", f.label)))
		form.WriteString(valueStyle.Render(f.value))
	}

	form.WriteString("\n\n")
	switch {
	case a.settings.saveErr != nil:
		form.WriteString(warnStyle.Render("Save failed: " + a.settings.saveErr.Error()))
	case a.settings.saved:
		form.WriteString(greenStyle.Render("Saved to " + config.ConfigPath()))
	default:
		form.WriteString(dimStyle.Render("j/k select · enter change"))
	}

	widths := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		widths = []int{cw}
	}
	cards := []string{components.ContentCard("Settings", form.String(), widths[0])}

	if len(widths) > 1 {
		var about strings.Builder
		about.WriteString(labelStyle.Render("Today       "))
		about.WriteString(valueStyle.Render(cli.FormatDate(a.today)))
		about.WriteString("\n")
		about.WriteString(labelStyle.Render("Config      "))
		about.WriteString(valueStyle.Render(cli.Truncate(config.ConfigPath(), components.CardInnerWidth(widths[1])-12)))
		about.WriteString("\n")
		about.WriteString(labelStyle.Render("Date source "))
		about.WriteString(valueStyle.Render("--today, $" + config.TodayEnv + ", date_override"))
		cards = append(cards, components.ContentCard("About", about.String(), widths[1]))
	}
	return components.CardRow(cards)
}
