package pipeline

import (
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/pflow/internal/model"
)

func counter(prefix string) model.IDFunc {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func seedItems(t *testing.T) []model.BudgetItem {
	t.Helper()
	newID := counter("b")
	var items []model.BudgetItem
	for _, in := range []NewItem{
		{"Software development", "expense", "15000", "Carlos López"},
		{"UI/UX design", "expense", "8000", "María García"},
		{"Client payment, phase 1", "income", "30000", "Client A"},
		{"Cloud infrastructure", "expense", "2500", "DevOps Team"},
		{"Client payment, phase 2", "income", "25000", "Client A"},
	} {
		var err error
		items, err = AddItem(items, in, newID)
		require.NoError(t, err)
	}
	return items
}

func TestTotals_Seed(t *testing.T) {
	got := Totals(seedItems(t))
	assert.Equal(t, model.Cents(5_500_000), got.Income)
	assert.Equal(t, model.Cents(2_550_000), got.Expense)
	assert.Equal(t, model.Cents(2_950_000), got.Balance)
	assert.Equal(t, "$29,500", got.Balance.String())
}

func TestTotals_NegativeBalance(t *testing.T) {
	got := Totals([]model.BudgetItem{
		{Type: model.EntryIncome, Amount: 100},
		{Type: model.EntryExpense, Amount: 250},
	})
	assert.Equal(t, model.Cents(-150), got.Balance)
}

func TestTotals_Empty(t *testing.T) {
	assert.Equal(t, model.LedgerTotals{}, Totals(nil))
}

func TestAddRemoveRoundTrip(t *testing.T) {
	items := seedItems(t)
	before := Totals(items)

	added, err := AddItem(items, NewItem{Concept: "Fee", Type: "expense", Amount: "19.99", Responsible: "Ops"}, counter("x"))
	require.NoError(t, err)
	require.Len(t, added, len(items)+1)
	assert.Equal(t, model.Cents(1999), added[len(added)-1].Amount)
	assert.Equal(t, before.Expense+1999, Totals(added).Expense)

	removed := RemoveItem(added, added[len(added)-1].ID)
	assert.Equal(t, before, Totals(removed))
	assert.Equal(t, items, removed)
}

func TestRemoveItem_Absent(t *testing.T) {
	items := seedItems(t)
	got := RemoveItem(items, "missing")
	assert.Equal(t, items, got)
	assert.Len(t, items, 5)
}

func TestParseAmount(t *testing.T) {
	good := map[string]model.Cents{
		"0":              0,
		"15000":          1_500_000,
		" 12.5 ":         1250,
		"99.99":          9999,
		"0.29":           29,
		"1.01":           101,
		".5":             50,
		"7.":             700,
		"0003.10":        310,
		"9999999999999":  999_999_999_999_900,
		"1234567.89":     123_456_789,
	}
	for in, want := range good {
		got, err := ParseAmount(in)
		require.NoError(t, err, "ParseAmount(%q)", in)
		assert.Equal(t, want, got, "ParseAmount(%q)", in)
	}

	for _, in := range []string{
		"", "abc", "12abc", "-1", "+1", "NaN", "Inf", "-Inf", "1e3", "1e300",
		"0x1p4", ".", "1.2.3", "1,000", "0.285", "1.005", "10000000000000",
	} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, model.ErrValidation, "ParseAmount(%q)", in)
	}
}

func TestParseAmount_ExactSums(t *testing.T) {
	var total model.Cents
	for range 10 {
		c, err := ParseAmount("0.10")
		require.NoError(t, err)
		total += c
	}
	assert.Equal(t, model.Cents(100), total)
}

func TestAddItem_Invalid(t *testing.T) {
	items := seedItems(t)
	cases := []NewItem{
		{Concept: "", Type: "income", Amount: "1", Responsible: "r"},
		{Concept: "c", Type: "refund", Amount: "1", Responsible: "r"},
		{Concept: "c", Type: "income", Amount: "lots", Responsible: "r"},
		{Concept: "c", Type: "income", Amount: "-5", Responsible: "r"},
		{Concept: "c", Type: "income", Amount: "1", Responsible: " "},
	}
	for _, in := range cases {
		got, err := AddItem(items, in, counter("z"))
		require.ErrorIs(t, err, model.ErrValidation, "input %+v", in)
		assert.Equal(t, items, got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("01-projects.jsonl", `{"kind":"project","name":"A","description":"d","deadline":"2025-01-01"}`+"\n")
	write("02-tasks.jsonl", `{"kind":"task","project":"A","title":"t","assignee":"x","due":"2025-01-01"}`+"\nbroken\n")

	var calls atomic.Int32
	res, err := Load(dir, func(current, total int) { calls.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalFiles)
	assert.Equal(t, 2, res.ParsedFiles)
	assert.Equal(t, 1, res.ParseErrors)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, res.Records, 2)
	assert.Equal(t, "project", string(res.Records[0].Kind))
	assert.Equal(t, "task", string(res.Records[1].Kind))
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
