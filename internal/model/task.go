// Package model defines domain types for pflow projects, tasks, budgets, and reports.
package model

import (
	"strings"
	"time"
)

// Status is the board column a task sits in.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the three board columns.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the column heading.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// ParseStatus accepts the canonical names plus a few spellings people type
// on the command line ("in_progress", "done", "todo").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo":
		return StatusPending, nil
	case "in-progress", "in_progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	}
	return "", Invalid("status", "must be pending, in-progress, or completed")
}

// Task is a card on a project's board.
type Task struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Assignee string    `json:"assignee"`
	DueDate  time.Time `json:"due_date"`
	Status   Status    `json:"status"`
}

// StatusCounts is the snapshot of a board's column sizes.
type StatusCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
}

// Total returns the number of tasks across all columns.
func (c StatusCounts) Total() int {
	return c.Completed + c.InProgress + c.Pending
}

// Of returns the count for one column.
func (c StatusCounts) Of(s Status) int {
	switch s {
	case StatusPending:
		return c.Pending
	case StatusInProgress:
		return c.InProgress
	case StatusCompleted:
		return c.Completed
	}
	return 0
}
