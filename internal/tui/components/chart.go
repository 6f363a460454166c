package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/tui/theme"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// HBarChart renders labelled horizontal bars scaled to the largest value,
// with a tick axis underneath. width is the full chart width.
func HBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		peak = math.Max(peak, b.Value)
	}
	labelW = min(labelW, width/3)
	step := chartTickStep(peak)
	top := math.Ceil(peak/step) * step
	if top <= 0 {
		top = 1
	}

	const valueW = 8
	barW := max(width-labelW-valueW-3, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.SurfaceBright).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for _, bar := range bars {
		filled := int(math.Round(bar.Value / top * float64(barW)))
		filled = min(max(filled, 0), barW)
		fill := lipgloss.NewStyle().Foreground(bar.Color).Background(t.Surface)

		label := bar.Label
		if lipgloss.Width(label) > labelW {
			label = string([]rune(label)[:max(labelW-1, 0)]) + "…"
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)))
		b.WriteString(space.Render(" "))
		b.WriteString(fill.Render(strings.Repeat("█", filled)))
		b.WriteString(emptyStyle.Render(strings.Repeat("·", barW-filled)))
		b.WriteString(space.Render(" "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, "$"+formatChartLabel(bar.Value))))
		b.WriteString("\n")
	}

	// Axis: 0 on the left, the rounded top on the right.
	axis := fmt.Sprintf("%-*s%*s", barW/2, "$0", barW-barW/2, "$"+formatChartLabel(top))
	b.WriteString(space.Render(strings.Repeat(" ", labelW+1)))
	b.WriteString(axisStyle.Render(axis))

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel abbreviates a dollar amount, e.g. 25000 -> "25k".
func formatChartLabel(v float64) string {
	for _, u := range []struct {
		div    float64
		suffix string
	}{{1e9, "B"}, {1e6, "M"}, {1e3, "k"}} {
		if v < u.div {
			continue
		}
		if v == math.Trunc(v/u.div)*u.div {
			return fmt.Sprintf("%.0f%s", v/u.div, u.suffix)
		}
		return fmt.Sprintf("%.1f%s", v/u.div, u.suffix)
	}
	return fmt.Sprintf("%.0f", v)
}
