package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/pflow/internal/model"
)

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{13, 20, 65},
		{6, 20, 30},
		{17, 20, 85},
		{20, 20, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
	}
	for _, tt := range tests {
		if got := ComputeProgress(tt.completed, tt.total); got != tt.want {
			t.Errorf("ComputeProgress(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	today := date("2024-12-01")
	tests := []struct {
		name     string
		deadline time.Time
		today    time.Time
		want     int
	}{
		{"same day", today, today, 0},
		{"tomorrow", date("2024-12-02"), today, 1},
		{"yesterday", date("2024-11-30"), today, -1},
		{"partial day rounds up", date("2024-12-03"), today.Add(10 * time.Hour), 2},
		{"partial overdue rounds toward zero", date("2024-11-30"), today.Add(10 * time.Hour), -1},
		{"across year", date("2025-01-15"), today, 45},
		{"far future", date("2400-01-01"), today, 136996},
		{"far past", date("0001-01-01"), today, -739220},
		{"last second of the day", date("2024-12-02"), date("2024-12-02").Add(-time.Second), 1},
		{"sub-second before deadline", date("2024-12-02"), date("2024-12-02").Add(-time.Millisecond), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.deadline, tt.today); got != tt.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		days int
		want model.Urgency
	}{
		{-30, model.UrgencyOverdue},
		{-1, model.UrgencyOverdue},
		{0, model.UrgencyUrgent},
		{6, model.UrgencyUrgent},
		{7, model.UrgencyActive},
		{365, model.UrgencyActive},
	}
	for _, tt := range tests {
		if got := ClassifyUrgency(tt.days); got != tt.want {
			t.Errorf("ClassifyUrgency(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestCreateProject(t *testing.T) {
	newID := counter("proj-")

	got, err := CreateProject(nil, NewProject{
		Name:        "Mobile redesign",
		Description: "New app shell",
		Deadline:    "2025-01-15",
	}, newID)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	p := got[0]
	if p.ID != "proj-1" {
		t.Errorf("ID = %q, want proj-1", p.ID)
	}
	if p.Progress != 0 || p.TasksCompleted != 0 || p.TotalTasks != 0 {
		t.Errorf("counters = %d/%d/%d, want zeros", p.Progress, p.TasksCompleted, p.TotalTasks)
	}
	if !p.Deadline.Equal(date("2025-01-15")) {
		t.Errorf("Deadline = %v", p.Deadline)
	}
}

func TestCreateProject_Invalid(t *testing.T) {
	existing := []model.Project{{ID: "a", Name: "A"}}
	cases := []struct {
		in    NewProject
		field string
	}{
		{NewProject{Description: "d", Deadline: "2025-01-01"}, "name"},
		{NewProject{Name: "n", Deadline: "2025-01-01"}, "description"},
		{NewProject{Name: "n", Description: "d"}, "deadline"},
		{NewProject{Name: "n", Description: "d", Deadline: "soon"}, "deadline"},
	}
	for _, tt := range cases {
		got, err := CreateProject(existing, tt.in, func() string { return "x" })
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if ve.Field != tt.field {
			t.Errorf("Field = %q, want %q", ve.Field, tt.field)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want collection unchanged", len(got))
		}
	}
}

func TestReconcile(t *testing.T) {
	p := model.Project{ID: "p", Name: "P", Progress: 99, TasksCompleted: 9, TotalTasks: 9}
	tasks := []model.Task{
		{ID: "1", Status: model.StatusCompleted},
		{ID: "2", Status: model.StatusInProgress},
		{ID: "3", Status: model.StatusPending},
		{ID: "4", Status: model.StatusPending},
	}
	got := Reconcile(p, tasks)
	if got.TasksCompleted != 1 || got.TotalTasks != 4 || got.Progress != 25 {
		t.Errorf("Reconcile = %d/%d %d%%, want 1/4 25%%", got.TasksCompleted, got.TotalTasks, got.Progress)
	}
	if p.Progress != 99 {
		t.Error("Reconcile modified its argument")
	}
	if empty := Reconcile(p, nil); empty.Progress != 0 || empty.TotalTasks != 0 {
		t.Errorf("Reconcile(nil) = %+v, want zeroed counters", empty)
	}
}

func TestAggregateProjectsAndSummarize(t *testing.T) {
	today := date("2024-12-01")
	projects := []model.Project{
		{ID: "1", Name: "Mobile redesign", Deadline: date("2025-01-15"), TasksCompleted: 13, TotalTasks: 20},
		{ID: "2", Name: "Inventory", Deadline: date("2024-12-05"), TasksCompleted: 6, TotalTasks: 20},
		{ID: "3", Name: "Marketing", Deadline: date("2024-11-20"), TasksCompleted: 17, TotalTasks: 20},
	}

	rows := AggregateProjects(projects, today)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	want := []model.Urgency{model.UrgencyActive, model.UrgencyUrgent, model.UrgencyOverdue}
	for i, r := range rows {
		if r.Urgency != want[i] {
			t.Errorf("rows[%d].Urgency = %q, want %q", i, r.Urgency, want[i])
		}
	}
	if rows[1].DaysRemaining != 4 {
		t.Errorf("DaysRemaining = %d, want 4", rows[1].DaysRemaining)
	}

	sum := Summarize(rows)
	if sum.Projects != 3 || sum.Overdue != 1 || sum.Urgent != 1 || sum.Active != 1 {
		t.Errorf("Summarize counts = %+v", sum)
	}
	if sum.TasksCompleted != 36 || sum.TotalTasks != 60 || sum.Progress != 60 {
		t.Errorf("Summarize tasks = %d/%d %d%%, want 36/60 60%%", sum.TasksCompleted, sum.TotalTasks, sum.Progress)
	}
}

func TestFilterByName(t *testing.T) {
	projects := []model.Project{{Name: "Mobile Redesign"}, {Name: "Inventory"}}
	if got := FilterByName(projects, "redesign"); len(got) != 1 {
		t.Errorf("FilterByName = %d, want 1", len(got))
	}
	if got := FilterByName(projects, ""); len(got) != 2 {
		t.Errorf("FilterByName(\"\") = %d, want 2", len(got))
	}
}
