package pipeline

import (
	"strings"

	"github.com/theirongolddev/pflow/internal/model"
)

// maxWholeDigits keeps cents arithmetic well clear of int64 overflow.
const maxWholeDigits = 13

// ParseAmount parses a non-negative decimal currency amount into cents.
// The text is read digit by digit, so "0.285"-style input is never rounded:
// more than two decimal places, exponents, and signs are rejected.
func ParseAmount(s string) (model.Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, model.Invalid("amount", "is required")
	}
	if s[0] == '-' {
		return 0, model.Invalid("amount", "must not be negative")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if (whole == "" && frac == "") || !isDigits(whole) || !isDigits(frac) {
		return 0, model.Invalid("amount", "must be a number")
	}
	if len(frac) > 2 {
		return 0, model.Invalid("amount", "must not have more than two decimal places")
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > maxWholeDigits {
		return 0, model.Invalid("amount", "is too large")
	}

	var cents int64
	for _, r := range whole + frac + strings.Repeat("0", 2-len(frac)) {
		cents = cents*10 + int64(r-'0')
	}
	return model.Cents(cents), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewItem carries the raw values from the budget-item form.
type NewItem struct {
	Concept     string
	Type        string
	Amount      string
	Responsible string
}

// Validate converts form input into a BudgetItem without an ID.
func (n NewItem) Validate() (model.BudgetItem, error) {
	if err := model.Required("concept", n.Concept); err != nil {
		return model.BudgetItem{}, err
	}
	typ, err := model.ParseEntryType(n.Type)
	if err != nil {
		return model.BudgetItem{}, err
	}
	amount, err := ParseAmount(n.Amount)
	if err != nil {
		return model.BudgetItem{}, err
	}
	if err := model.Required("responsible", n.Responsible); err != nil {
		return model.BudgetItem{}, err
	}
	return model.BudgetItem{
		Concept:     strings.TrimSpace(n.Concept),
		Type:        typ,
		Amount:      amount,
		Responsible: strings.TrimSpace(n.Responsible),
	}, nil
}

// AddItem appends a validated ledger line with a fresh ID. On error items is
// returned untouched.
func AddItem(items []model.BudgetItem, in NewItem, newID model.IDFunc) ([]model.BudgetItem, error) {
	it, err := in.Validate()
	if err != nil {
		return items, err
	}
	it.ID = newID()

	out := make([]model.BudgetItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, it), nil
}

// RemoveItem returns items without the line carrying id. An absent id yields
// an equal copy.
func RemoveItem(items []model.BudgetItem, id string) []model.BudgetItem {
	out := make([]model.BudgetItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Totals sums income and expense in one pass. Balance may be negative.
func Totals(items []model.BudgetItem) model.LedgerTotals {
	var t model.LedgerTotals
	for _, it := range items {
		switch it.Type {
		case model.EntryIncome:
			t.Income += it.Amount
		case model.EntryExpense:
			t.Expense += it.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}
