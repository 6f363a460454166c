package model

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// EntryType is the sign of a budget line. Amounts themselves are never negative.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// ParseEntryType validates an income/expense selector.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(strings.ToLower(strings.TrimSpace(s))) {
	case EntryIncome:
		return EntryIncome, nil
	case EntryExpense:
		return EntryExpense, nil
	}
	return "", Invalid("type", "must be income or expense")
}

// Label returns the table label.
func (t EntryType) Label() string {
	if t == EntryIncome {
		return "Income"
	}
	return "Expense"
}

// Cents is a currency amount in hundredths so ledger sums stay exact.
type Cents int64

// Float returns the amount in whole currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats as $1,234 or $1,234.56, with a leading minus when negative.
func (c Cents) String() string {
	n := int64(c)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	whole, frac := n/100, n%100
	if frac == 0 {
		return sign + "$" + humanize.Comma(whole)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole), frac)
}

// BudgetItem is one ledger line.
type BudgetItem struct {
	ID          string    `json:"id"`
	Concept     string    `json:"concept"`
	Type        EntryType `json:"type"`
	Amount      Cents     `json:"amount_cents"`
	Responsible string    `json:"responsible"`
}

// LedgerTotals is the derived income/expense/balance for a ledger.
type LedgerTotals struct {
	Income  Cents `json:"income_cents"`
	Expense Cents `json:"expense_cents"`
	Balance Cents `json:"balance_cents"`
}
