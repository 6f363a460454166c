package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

// ColorForProgress shades a completion percentage from red through green.
func ColorForProgress(pct int) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.GreenBright
	case pct >= 67:
		return t.Green
	case pct >= 34:
		return t.Yellow
	}
	return t.Orange
}

// ProgressBar renders a 0-100 completion bar followed by its percentage.
func ProgressBar(pct, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 100)
	color := ColorForProgress(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	return bar.ViewAs(float64(pct)/100) + space + pctStyle.Render(fmt.Sprintf("%3d%%", pct))
}

// UrgencyBadge renders a deadline bucket as a colored pill.
func UrgencyBadge(u model.Urgency) string {
	t := theme.Active
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.UrgencyColor(u)).
		Bold(true).
		Padding(0, 1).
		Render(u.Label())
}
