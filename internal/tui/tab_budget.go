package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/tui/components"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

type budgetState struct {
	cursor int
}

func (a App) updateBudget(key string) (App, tea.Cmd, bool) {
	items := a.ws.Budget()
	switch key {
	case "j", "down":
		a.budget.cursor = clampCursor(a.budget.cursor+1, len(items))
	case "k", "up":
		a.budget.cursor = clampCursor(a.budget.cursor-1, len(items))
	case "n":
		cmd := a.openForm(formBudget)
		return a, cmd, true
	case "d", "delete", "backspace":
		if len(items) == 0 {
			return a, nil, true
		}
		it := items[clampCursor(a.budget.cursor, len(items))]
		if a.ws.RemoveBudgetItem(it.ID) {
			a.flash = "removed " + it.Concept
		}
		a.budget.cursor = clampCursor(a.budget.cursor, len(items)-1)
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	items := a.ws.Budget()
	totals := a.ws.Totals()

	balanceNote := "surplus"
	if totals.Balance < 0 {
		balanceNote = "deficit"
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: cli.FormatMoney(totals.Income), Color: t.Green},
		{Label: "Expense", Value: cli.FormatMoney(totals.Expense), Color: t.Red},
		{Label: "Balance", Value: cli.FormatMoney(totals.Balance), Note: balanceNote, Color: t.BalanceColor(totals.Balance)},
	}, cw))
	b.WriteString("\n")

	listW, chartW := cw, 0
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 2)
		listW, chartW = widths[0]+widths[0]/3, widths[1]-widths[0]/3
	}

	list := components.ContentCard(fmt.Sprintf("Ledger (%d)", len(items)), a.renderLedger(items, components.CardInnerWidth(listW)), listW)
	if chartW == 0 {
		b.WriteString(list)
	} else {
		bars := make([]components.Bar, len(items))
		for i, it := range items {
			color := t.Red
			if it.Type == model.EntryIncome {
				color = t.Green
			}
			bars[i] = components.Bar{Label: it.Concept, Value: it.Amount.Float(), Color: color}
		}
		chart := components.HBarChart(bars, components.CardInnerWidth(chartW))
		b.WriteString(components.CardRow([]string{list, components.ContentCard("Amounts", chart, chartW)}))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
		Render(" j/k select · n add item · d remove"))
	return b.String()
}

func (a App) renderLedger(items []model.BudgetItem, inner int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(items) == 0 {
		return dimStyle.Render("No budget items. Press n to add one.")
	}

	const typeW, amountW = 8, 14
	respW := max(inner/4, 8)
	conceptW := max(inner-typeW-amountW-respW-5, 8)
	line := func(concept, typ, amount, resp string) string {
		return fmt.Sprintf("  %-*s %-*s %*s %-*s",
			conceptW, cli.Truncate(concept, conceptW),
			typeW, typ,
			amountW, amount,
			respW, cli.Truncate(resp, respW))
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(line("Concept", "Type", "Amount", "Responsible")))
	cursor := clampCursor(a.budget.cursor, len(items))
	for i, it := range items {
		b.WriteString("\n")
		row := line(it.Concept, it.Type.Label(), cli.FormatSignedMoney(it), it.Responsible)
		if i == cursor {
			b.WriteString(selStyle.Render("▸" + row[1:]))
			continue
		}
		b.WriteString(rowStyle.Render(row))
	}
	return b.String()
}
