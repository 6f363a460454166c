package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/tui/components"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

type projectsState struct {
	cursor int
}

func (a App) updateProjects(key string) (App, tea.Cmd, bool) {
	n := len(a.ws.Projects())
	switch key {
	case "j", "down":
		a.projects.cursor = clampCursor(a.projects.cursor+1, n)
	case "k", "up":
		a.projects.cursor = clampCursor(a.projects.cursor-1, n)
	case "enter":
		ps := a.ws.Projects()
		if len(ps) == 0 {
			return a, nil, true
		}
		a.board = boardState{project: ps[clampCursor(a.projects.cursor, n)].ID}
		a.activeTab = components.TabBoard
	case "n":
		cmd := a.openForm(formProject)
		return a, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderProjectsTab(cw int) string {
	t := theme.Active
	rows := a.ws.ProjectStats(a.today)
	pf := pipeline.Summarize(rows)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Projects", Value: cli.FormatNumber(int64(pf.Projects))},
		{Label: "Active", Value: cli.FormatNumber(int64(pf.Active)), Color: t.Green},
		{Label: "Urgent", Value: cli.FormatNumber(int64(pf.Urgent)), Color: t.Orange},
		{Label: "Overdue", Value: cli.FormatNumber(int64(pf.Overdue)), Color: t.Red},
		{
			Label: "Tasks done",
			Value: fmt.Sprintf("%d / %d", pf.TasksCompleted, pf.TotalTasks),
			Note:  cli.FormatPercent(pf.Progress) + " overall",
			Color: components.ColorForProgress(pf.Progress),
		},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	barW := 24
	if a.isCompactLayout() {
		barW = 14
	}

	var body strings.Builder
	if len(rows) == 0 {
		body.WriteString(dimStyle.Render("No projects yet. Press n to create one."))
	}
	cursor := clampCursor(a.projects.cursor, len(rows))
	for i, r := range rows {
		p := r.Project
		marker, style := "  ", nameStyle
		if i == cursor {
			marker, style = "▸ ", selStyle
		}
		if i > 0 {
			body.WriteString("\n\n")
		}

		head := style.Render(marker+p.Name) + space + components.UrgencyBadge(r.Urgency)
		deadline := dimStyle.Render(cli.FormatDate(p.Deadline) + " · " + cli.FormatDaysRemaining(r.DaysRemaining))
		gap := max(inner-lipgloss.Width(head)-lipgloss.Width(deadline), 1)
		body.WriteString(head + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap)) + deadline)
		body.WriteString("\n")
		body.WriteString(descStyle.Render(cli.Truncate("  "+p.Description, inner)))
		body.WriteString("\n")
		body.WriteString(space + space + components.ProgressBar(p.Progress, barW) +
			dimStyle.Render(fmt.Sprintf("   %d of %s", p.TasksCompleted, cli.FormatCount(p.TotalTasks, "task"))))
	}
	b.WriteString(components.ContentCard("Projects", body.String(), cw))

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
		Render(" j/k select · enter open board · n new project"))
	return b.String()
}
