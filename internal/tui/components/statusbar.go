package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/tui/theme"
)

// StatusInfo is what the bottom bar shows on its right side.
type StatusInfo struct {
	SignedIn bool
	Today    string
	Pending  string // spinner frame plus label while a report is generating
	Flash    string // last action result, cleared on the next key press
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := base.Render(" [?]help  [q]uit")
	if info.Flash != "" {
		left += dim.Render("  │  ") + accent.Render(info.Flash)
	}

	var right []string
	if info.Pending != "" {
		right = append(right, accent.Render(info.Pending))
	}
	if info.SignedIn {
		right = append(right, lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("signed in"))
	} else {
		right = append(right, dim.Render("signed out"))
	}
	if info.Today != "" {
		right = append(right, base.Render(info.Today))
	}
	r := strings.Join(right, dim.Render("  │  ")) + base.Render(" ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(r)
	if gap < 0 {
		gap = 0
	}
	return left + base.Render(strings.Repeat(" ", gap)) + r
}
