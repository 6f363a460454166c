package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/report"
	"github.com/theirongolddev/pflow/internal/tui/components"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

type reportsState struct {
	cursor  int
	viewing bool // full-screen view of the selected report
	scroll  int
}

func (a App) selectedReport() (model.Report, bool) {
	history := a.ws.Reports()
	if len(history) == 0 {
		return model.Report{}, false
	}
	return history[clampCursor(a.reports.cursor, len(history))], true
}

func (a App) updateReports(key string) (App, tea.Cmd, bool) {
	rs := &a.reports
	n := len(a.ws.Reports())

	switch key {
	case "j", "down":
		if rs.viewing {
			rs.scroll++
		} else {
			rs.cursor = clampCursor(rs.cursor+1, n)
		}
	case "k", "up":
		if rs.viewing {
			rs.scroll = max(rs.scroll-1, 0)
		} else {
			rs.cursor = clampCursor(rs.cursor-1, n)
		}
	case "enter":
		if n > 0 {
			rs.viewing = !rs.viewing
			rs.scroll = 0
		}
	case "esc":
		switch {
		case a.requester.Pending():
			a.requester.Cancel()
		case rs.viewing:
			rs.viewing = false
		default:
			return a, nil, false
		}
	case "g":
		next, cmd := a.startReport()
		return next, cmd, true
	case "c":
		r, ok := a.selectedReport()
		if !ok {
			a.flash = "no report to copy"
			return a, nil, true
		}
		return a, copyCmd(a.copyText, r.Content), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderReportsTab(cw, h int) string {
	t := theme.Active
	history := a.ws.Reports()
	stats := report.Summarize(history, a.today)

	if a.reports.viewing {
		if r, ok := a.selectedReport(); ok {
			return a.renderReportView(r, cw, h)
		}
	}

	latest := "-"
	if !stats.Latest.IsZero() {
		latest = cli.FormatDate(stats.Latest)
	}
	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Reports", Value: cli.FormatNumber(int64(stats.Total))},
		{Label: "This month", Value: cli.FormatNumber(int64(stats.ThisMonth))},
		{Label: "Latest", Value: latest},
	}, cw))
	b.WriteString("\n")

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	listW, previewW := cw, 0
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 3)
		listW, previewW = widths[0], widths[1]+widths[2]
	}
	inner := components.CardInnerWidth(listW)

	var list strings.Builder
	if a.requester.Pending() {
		list.WriteString(accent.Render(a.spinner.View() + " generating..."))
		list.WriteString("\n")
	}
	if len(history) == 0 {
		list.WriteString(dimStyle.Render("No reports yet. Press g to generate one."))
	}
	cursor := clampCursor(a.reports.cursor, len(history))
	for i, r := range history {
		if i > 0 {
			list.WriteString("\n")
		}
		row := fmt.Sprintf("  %s  %s", r.Date.Format(report.DisplayDateLayout), r.ProjectName)
		if i == cursor {
			list.WriteString(selStyle.Render(cli.Truncate("▸"+row[1:], inner)))
			continue
		}
		list.WriteString(rowStyle.Render(cli.Truncate(row, inner)))
	}
	listCard := components.ContentCard("History", list.String(), listW)

	if previewW == 0 {
		b.WriteString(listCard)
	} else {
		preview := ""
		if r, ok := a.selectedReport(); ok {
			preview = wrapLines(r.Content, components.CardInnerWidth(previewW))
		}
		previewH := max(h-lipgloss.Height(b.String())-4, 3)
		preview = truncateHeight(preview, previewH)
		b.WriteString(components.CardRow([]string{listCard, components.ContentCard("Preview", preview, previewW)}))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
		Render(" j/k select · enter view · g generate · c copy · esc cancel"))
	return b.String()
}

func (a App) renderReportView(r model.Report, cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	lines := strings.Split(wrapLines(r.Content, inner), "\n")

	visible := max(h-3, 1)
	start := min(a.reports.scroll, max(len(lines)-visible, 0))
	lines = lines[start:min(start+visible, len(lines))]

	title := fmt.Sprintf("%s · %s", r.ProjectName, r.Date.Format(report.DisplayDateLayout))
	card := components.FocusCard(title, strings.Join(lines, "\n"), cw, true)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
		Render(" j/k scroll · c copy · enter/esc back")
	return card + "\n" + hint
}

// wrapLines hard-wraps each line of s to width runes.
func wrapLines(s string, width int) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		r := []rune(line)
		for len(r) > width {
			out = append(out, string(r[:width]))
			r = r[width:]
		}
		out = append(out, string(r))
	}
	return strings.Join(out, "\n")
}
