// Package workspace owns the in-memory collections behind the dashboard:
// projects, per-project task boards, the budget ledger, and report history.
//
// A Workspace is not safe for concurrent use. Exactly one goroutine (the TUI
// update loop or the daemon's event loop) owns it and applies every mutation.
// All accessors return copies, and every mutation replaces a collection with
// a new slice rather than editing it in place.
package workspace

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/report"
)

// ErrProjectNotFound is returned when a project reference matches nothing.
var ErrProjectNotFound = errors.New("project not found")

// Workspace is the single owner of all dashboard state.
type Workspace struct {
	newID model.IDFunc

	projects []model.Project
	tasks    map[string][]model.Task // keyed by project ID
	budget   []model.BudgetItem
	reports  []model.Report
}

// New returns an empty workspace. A nil newID uses model.NewID.
func New(newID model.IDFunc) *Workspace {
	if newID == nil {
		newID = model.NewID
	}
	return &Workspace{
		newID: newID,
		tasks: make(map[string][]model.Task),
	}
}

// Projects returns the project list in creation order.
func (w *Workspace) Projects() []model.Project {
	return copyOf(w.projects)
}

// Project returns the project with the given ID.
func (w *Workspace) Project(id string) (model.Project, bool) {
	for _, p := range w.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// ResolveProject finds a project by ID, then by case-insensitive name.
// An empty ref resolves to the first project.
func (w *Workspace) ResolveProject(ref string) (model.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if len(w.projects) == 0 {
			return model.Project{}, ErrProjectNotFound
		}
		return w.projects[0], nil
	}
	if p, ok := w.Project(ref); ok {
		return p, nil
	}
	for _, p := range w.projects {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return model.Project{}, ErrProjectNotFound
}

// CreateProject validates and appends a project with zeroed counters.
func (w *Workspace) CreateProject(in pipeline.NewProject) (model.Project, error) {
	next, err := pipeline.CreateProject(w.projects, in, w.newID)
	if err != nil {
		return model.Project{}, err
	}
	w.projects = next
	return next[len(next)-1], nil
}

// ProjectStats derives deadline metrics for every project as of today.
func (w *Workspace) ProjectStats(today time.Time) []model.ProjectStats {
	return pipeline.AggregateProjects(w.projects, today)
}

// Tasks returns the board for a project.
func (w *Workspace) Tasks(projectID string) []model.Task {
	return copyOf(w.tasks[projectID])
}

// TaskProject returns the ID of the project whose board holds taskID.
func (w *Workspace) TaskProject(taskID string) (string, bool) {
	for _, p := range w.projects {
		if _, ok := board.Find(w.tasks[p.ID], taskID); ok {
			return p.ID, true
		}
	}
	return "", false
}

// CreateTask validates and appends a task to a project's board.
func (w *Workspace) CreateTask(projectID string, in board.NewTask) (model.Task, error) {
	if _, ok := w.Project(projectID); !ok {
		return model.Task{}, ErrProjectNotFound
	}
	next, err := board.CreateTask(w.tasks[projectID], in, w.newID)
	if err != nil {
		return model.Task{}, err
	}
	w.setBoard(projectID, next)
	return next[len(next)-1], nil
}

// MoveTask moves a task to status. It reports whether the task was found;
// an unknown task or invalid status leaves the board as it was.
func (w *Workspace) MoveTask(projectID, taskID string, status model.Status) (bool, error) {
	if _, ok := w.Project(projectID); !ok {
		return false, ErrProjectNotFound
	}
	if _, found := board.Find(w.tasks[projectID], taskID); !found || !status.Valid() {
		return false, nil
	}
	w.setBoard(projectID, board.Transition(w.tasks[projectID], taskID, status))
	return true, nil
}

// Drop completes a drag gesture on a project's board.
func (w *Workspace) Drop(projectID string, slot board.DragSlot, status model.Status) (bool, error) {
	if !slot.Active() {
		return false, nil
	}
	return w.MoveTask(projectID, slot.TaskID(), status)
}

// setBoard replaces a board and refreshes its project's counters from it.
func (w *Workspace) setBoard(projectID string, tasks []model.Task) {
	w.tasks[projectID] = tasks
	next := make([]model.Project, len(w.projects))
	for i, p := range w.projects {
		if p.ID == projectID {
			p = pipeline.Reconcile(p, tasks)
		}
		next[i] = p
	}
	w.projects = next
}

// Budget returns the ledger lines in insertion order.
func (w *Workspace) Budget() []model.BudgetItem {
	return copyOf(w.budget)
}

// AddBudgetItem validates and appends a ledger line.
func (w *Workspace) AddBudgetItem(in pipeline.NewItem) (model.BudgetItem, error) {
	next, err := pipeline.AddItem(w.budget, in, w.newID)
	if err != nil {
		return model.BudgetItem{}, err
	}
	w.budget = next
	return next[len(next)-1], nil
}

// RemoveBudgetItem deletes a ledger line. It reports whether anything was
// removed.
func (w *Workspace) RemoveBudgetItem(id string) bool {
	before := len(w.budget)
	w.budget = pipeline.RemoveItem(w.budget, id)
	return len(w.budget) != before
}

// Totals sums the ledger.
func (w *Workspace) Totals() model.LedgerTotals {
	return pipeline.Totals(w.budget)
}

// Reports returns the history, newest first.
func (w *Workspace) Reports() []model.Report {
	return copyOf(w.reports)
}

// ReportSnapshot captures the input for report generation. An empty
// projectID produces the unscoped snapshot with zero counts.
func (w *Workspace) ReportSnapshot(projectID string) (report.Snapshot, error) {
	if projectID == "" {
		return report.Snapshot{ProjectName: report.DefaultProjectName}, nil
	}
	p, ok := w.Project(projectID)
	if !ok {
		return report.Snapshot{}, ErrProjectNotFound
	}
	return report.Snapshot{
		ProjectName: p.Name,
		Counts:      board.Counts(w.tasks[projectID]),
	}, nil
}

// AddReport prepends a generated report to the history.
func (w *Workspace) AddReport(s report.Snapshot, content string, date time.Time) model.Report {
	r := model.Report{
		ID:          w.newID(),
		ProjectName: s.ProjectName,
		Date:        model.DateOf(date),
		Content:     content,
	}
	w.reports = report.Prepend(w.reports, r)
	return r
}

// State is a point-in-time copy of every collection, used for JSON output
// and exports.
type State struct {
	Projects []model.Project         `json:"projects"`
	Tasks    map[string][]model.Task `json:"tasks"`
	Budget   []model.BudgetItem      `json:"budget"`
	Totals   model.LedgerTotals      `json:"totals"`
	Reports  []model.Report          `json:"reports"`
}

// State copies the workspace.
func (w *Workspace) State() State {
	tasks := make(map[string][]model.Task, len(w.tasks))
	for id, ts := range w.tasks {
		tasks[id] = copyOf(ts)
	}
	return State{
		Projects: w.Projects(),
		Tasks:    tasks,
		Budget:   w.Budget(),
		Totals:   w.Totals(),
		Reports:  w.Reports(),
	}
}

func copyOf[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
