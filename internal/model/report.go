package model

import "time"

// Report is an immutable entry in the report history.
type Report struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	Date        time.Time `json:"date"`
	Content     string    `json:"content"`
}
