// Package pipeline derives project and ledger metrics from the workspace
// collections.
package pipeline

import (
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/model"
)

// UrgentWindowDays is the number of days before a deadline in which a project
// is flagged urgent.
const UrgentWindowDays = 7

const secondsPerDay = 24 * 60 * 60

// ComputeProgress returns completed/total as a whole percentage, rounded half
// up. A project with no tasks is at 0.
func ComputeProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// DaysRemaining returns the ceiling of (deadline - today) in days. It is
// negative once the deadline has passed. It works in Unix seconds rather
// than time.Duration, which saturates at about 292 years.
func DaysRemaining(deadline, today time.Time) int {
	secs := deadline.Unix() - today.Unix()
	nanos := deadline.Nanosecond() - today.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}
	days := secs / secondsPerDay
	if rem := secs % secondsPerDay; rem > 0 || (rem == 0 && nanos > 0) {
		days++
	}
	return int(days)
}

// ClassifyUrgency buckets a days-remaining value.
func ClassifyUrgency(days int) model.Urgency {
	switch {
	case days < 0:
		return model.UrgencyOverdue
	case days < UrgentWindowDays:
		return model.UrgencyUrgent
	}
	return model.UrgencyActive
}

// NewProject carries the raw values from the project-creation form.
type NewProject struct {
	Name        string
	Description string
	Deadline    string
}

// Validate converts form input into a zero-progress Project without an ID.
func (n NewProject) Validate() (model.Project, error) {
	if err := model.Required("name", n.Name); err != nil {
		return model.Project{}, err
	}
	if err := model.Required("description", n.Description); err != nil {
		return model.Project{}, err
	}
	deadline, err := model.ParseDate("deadline", n.Deadline)
	if err != nil {
		return model.Project{}, err
	}
	return model.Project{
		Name:        strings.TrimSpace(n.Name),
		Description: strings.TrimSpace(n.Description),
		Deadline:    deadline,
	}, nil
}

// CreateProject appends a validated project with a fresh ID and zeroed
// counters. On error projects is returned untouched.
func CreateProject(projects []model.Project, in NewProject, newID model.IDFunc) ([]model.Project, error) {
	p, err := in.Validate()
	if err != nil {
		return projects, err
	}
	p.ID = newID()

	out := make([]model.Project, len(projects), len(projects)+1)
	copy(out, projects)
	return append(out, p), nil
}

// Reconcile returns p with its counters and progress recomputed from tasks.
func Reconcile(p model.Project, tasks []model.Task) model.Project {
	c := board.Counts(tasks)
	p.TasksCompleted = c.Completed
	p.TotalTasks = c.Total()
	p.Progress = ComputeProgress(p.TasksCompleted, p.TotalTasks)
	return p
}

// Stats derives the deadline metrics for one project.
func Stats(p model.Project, today time.Time) model.ProjectStats {
	days := DaysRemaining(p.Deadline, today)
	return model.ProjectStats{
		Project:       p,
		DaysRemaining: days,
		Urgency:       ClassifyUrgency(days),
	}
}

// AggregateProjects computes a stats row per project, in collection order.
func AggregateProjects(projects []model.Project, today time.Time) []model.ProjectStats {
	rows := make([]model.ProjectStats, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, Stats(p, today))
	}
	return rows
}

// Portfolio is the dashboard headline across all projects.
type Portfolio struct {
	Projects       int
	Overdue        int
	Urgent         int
	Active         int
	TasksCompleted int
	TotalTasks     int
	Progress       int // task-weighted
}

// Summarize rolls project stats up into the dashboard headline.
func Summarize(rows []model.ProjectStats) Portfolio {
	var p Portfolio
	for _, r := range rows {
		p.Projects++
		switch r.Urgency {
		case model.UrgencyOverdue:
			p.Overdue++
		case model.UrgencyUrgent:
			p.Urgent++
		default:
			p.Active++
		}
		p.TasksCompleted += r.Project.TasksCompleted
		p.TotalTasks += r.Project.TotalTasks
	}
	p.Progress = ComputeProgress(p.TasksCompleted, p.TotalTasks)
	return p
}

// FilterByName returns projects whose name contains substr, ignoring case.
func FilterByName(projects []model.Project, substr string) []model.Project {
	if substr == "" {
		return projects
	}
	var out []model.Project
	for _, p := range projects {
		if containsIgnoreCase(p.Name, substr) {
			out = append(out, p)
		}
	}
	return out
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
