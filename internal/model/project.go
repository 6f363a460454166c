package model

import "time"

// Project is a tracked project and its progress snapshot.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Deadline       time.Time `json:"deadline"`
	Progress       int       `json:"progress"`
	TasksCompleted int       `json:"tasks_completed"`
	TotalTasks     int       `json:"total_tasks"`
}

// Urgency buckets a project by days left until its deadline.
type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyActive  Urgency = "active"
)

// Label returns the badge text.
func (u Urgency) Label() string {
	switch u {
	case UrgencyOverdue:
		return "Overdue"
	case UrgencyUrgent:
		return "Urgent"
	}
	return "Active"
}

// ProjectStats is a project plus its deadline metrics for a given day.
type ProjectStats struct {
	Project       Project `json:"project"`
	DaysRemaining int     `json:"days_remaining"`
	Urgency       Urgency `json:"urgency"`
}
