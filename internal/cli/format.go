// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/pflow/internal/model"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatMoney formats cents as $1,234 or $1,234.56.
func FormatMoney(c model.Cents) string {
	return c.String()
}

// FormatSignedMoney prefixes a ledger amount with + for income and - for
// expense.
func FormatSignedMoney(it model.BudgetItem) string {
	if it.Type == model.EntryIncome {
		return "+" + it.Amount.String()
	}
	return "-" + it.Amount.String()
}

// FormatPercent formats a whole percentage.
func FormatPercent(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// FormatDaysRemaining describes a days-remaining value.
// e.g., 3 -> "3 days left", 0 -> "due today", -2 -> "2 days overdue"
func FormatDaysRemaining(days int) string {
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day left"
	case days > 1:
		return fmt.Sprintf("%d days left", days)
	case days == -1:
		return "1 day overdue"
	}
	return fmt.Sprintf("%d days overdue", -days)
}

// FormatDate renders a calendar date for tables, e.g. "Jan 15, 2025".
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("Jan 2, 2006")
}

// FormatCount pluralizes a noun, e.g. 1 task, 3 tasks.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

// Truncate shortens s to at most n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
