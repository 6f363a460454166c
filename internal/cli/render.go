package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	incomeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	expenseStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int  // optional column widths, auto-calculated if nil
	Right   []bool // optional per-column right alignment
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" draws a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], t.right(i)) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(" " + pad(cell, widths[i], t.right(i)) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func (t Table) right(col int) bool {
	return col < len(t.Right) && t.Right[col]
}

// pad fills s to display width w. Cells may hold styled text or accented
// names, so width is measured with lipgloss rather than len.
func pad(s string, w int, right bool) string {
	gap := w - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderProgressBar renders a percentage as a text bar, e.g. [████░░░░] 50%.
func RenderProgressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %3d%%", mutedStyle.Render(bar), pct)
}

// RenderUrgency renders an urgency badge in its signal color.
func RenderUrgency(u model.Urgency) string {
	switch u {
	case model.UrgencyOverdue:
		return expenseStyle.Render(u.Label())
	case model.UrgencyUrgent:
		return warnStyle.Render(u.Label())
	}
	return incomeStyle.Render(u.Label())
}

// RenderBalance renders a ledger balance, flagging a deficit.
func RenderBalance(c model.Cents) string {
	if c < 0 {
		return warnStyle.Render(c.String())
	}
	return incomeStyle.Render(c.String())
}

// RenderEntryType renders Income or Expense in its ledger color.
func RenderEntryType(t model.EntryType) string {
	if t == model.EntryIncome {
		return incomeStyle.Render(t.Label())
	}
	return expenseStyle.Render(t.Label())
}

// RenderBoard draws the three status columns side by side, each headed by
// its label and card count.
func RenderBoard(tasks []model.Task, colWidth int) string {
	counts := board.Counts(tasks)
	cols := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		var b strings.Builder
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", s.Label(), counts.Of(s))))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", colWidth)))
		b.WriteString("\n")
		column := board.Column(tasks, s)
		if len(column) == 0 {
			b.WriteString(mutedStyle.Render("(empty)"))
			b.WriteString("\n")
		}
		for _, t := range column {
			b.WriteString(valueStyle.Render(Truncate(t.Title, colWidth)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(Truncate(t.Assignee+" · "+FormatDate(t.DueDate), colWidth)))
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(Truncate("#"+t.ID, colWidth)))
			b.WriteString("\n\n")
		}
		cols = append(cols, lipgloss.NewStyle().Width(colWidth).MarginRight(2).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
