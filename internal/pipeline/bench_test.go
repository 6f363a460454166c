package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/pflow/internal/model"
)

func benchProjects(n int) []model.Project {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Project, n)
	for i := range out {
		out[i] = model.Project{
			ID:             fmt.Sprintf("p%d", i),
			Name:           fmt.Sprintf("Project %d", i),
			Deadline:       base.AddDate(0, 0, i%60-20),
			TasksCompleted: i % 20,
			TotalTasks:     20,
		}
	}
	return out
}

func BenchmarkAggregateProjects(b *testing.B) {
	projects := benchProjects(10_000)
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(AggregateProjects(projects, today))
	}
}

func BenchmarkTotals(b *testing.B) {
	items := make([]model.BudgetItem, 100_000)
	for i := range items {
		items[i] = model.BudgetItem{ID: fmt.Sprint(i), Type: model.EntryExpense, Amount: model.Cents(i)}
		if i%3 == 0 {
			items[i].Type = model.EntryIncome
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Totals(items)
	}
}
