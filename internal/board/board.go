// Package board implements the task status machine behind the kanban board.
//
// The machine is flat: a task may move from any column to any other column.
// Every function takes the current collection and returns a new one; the
// input slice is never modified.
package board

import (
	"strings"

	"github.com/theirongolddev/pflow/internal/model"
)

// DragSlot holds the identifier of the card being dragged. It lives only for
// the duration of one gesture and changes no state on its own.
type DragSlot struct {
	taskID string
	active bool
}

// BeginDrag records taskID in a fresh transfer slot.
func BeginDrag(taskID string) DragSlot {
	return DragSlot{taskID: taskID, active: true}
}

// TaskID returns the dragged identifier, or "" for an empty slot.
func (s DragSlot) TaskID() string { return s.taskID }

// Active reports whether a drag is in progress.
func (s DragSlot) Active() bool { return s.active }

// DropOnColumn completes a drag onto the target column. An empty slot, an
// unknown task, or an invalid target yields a copy equal to tasks.
func DropOnColumn(tasks []model.Task, slot DragSlot, target model.Status) []model.Task {
	if !slot.Active() {
		return clone(tasks)
	}
	return Transition(tasks, slot.TaskID(), target)
}

// Transition moves the task with the given ID to status. A stale or
// malformed ID is a no-op, not an error, so the board never breaks on it.
func Transition(tasks []model.Task, taskID string, status model.Status) []model.Task {
	out := clone(tasks)
	if !status.Valid() {
		return out
	}
	for i := range out {
		if out[i].ID == taskID {
			out[i].Status = status
		}
	}
	return out
}

// NewTask carries the raw values from the task-creation form.
type NewTask struct {
	Title    string
	Assignee string
	DueDate  string
	Status   model.Status // empty means pending
}

// Validate converts form input into a Task without an ID.
func (n NewTask) Validate() (model.Task, error) {
	if err := model.Required("title", n.Title); err != nil {
		return model.Task{}, err
	}
	if err := model.Required("assignee", n.Assignee); err != nil {
		return model.Task{}, err
	}
	due, err := model.ParseDate("due date", n.DueDate)
	if err != nil {
		return model.Task{}, err
	}
	status := n.Status
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		return model.Task{}, model.Invalid("status", "must be pending, in-progress, or completed")
	}
	return model.Task{
		Title:    strings.TrimSpace(n.Title),
		Assignee: strings.TrimSpace(n.Assignee),
		DueDate:  due,
		Status:   status,
	}, nil
}

// CreateTask appends a validated task with a fresh ID. On error tasks is
// returned untouched.
func CreateTask(tasks []model.Task, in NewTask, newID model.IDFunc) ([]model.Task, error) {
	t, err := in.Validate()
	if err != nil {
		return tasks, err
	}
	t.ID = newID()

	out := make([]model.Task, len(tasks), len(tasks)+1)
	copy(out, tasks)
	return append(out, t), nil
}

// Counts tallies tasks per column.
func Counts(tasks []model.Task) model.StatusCounts {
	var c model.StatusCounts
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			c.Completed++
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusPending:
			c.Pending++
		}
	}
	return c
}

// Column returns the tasks in one column, in collection order.
func Column(tasks []model.Task, status model.Status) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the task with the given ID.
func Find(tasks []model.Task, taskID string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// Shift returns the column delta steps away from s, clamped to the board edges.
func Shift(s model.Status, delta int) model.Status {
	idx := 0
	for i, col := range model.Statuses {
		if col == s {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(model.Statuses) {
		idx = len(model.Statuses) - 1
	}
	return model.Statuses[idx]
}

func clone(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}
