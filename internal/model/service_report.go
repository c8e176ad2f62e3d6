package model

import "time"

// ServiceReport holds the captured form data for a task's site visit. A task
// with a configured form (FormID set) cannot be submitted for review until
// Data is non-empty.
type ServiceReport struct {
	ID          int            `json:"id"`
	TaskID      int            `json:"task_id"`
	FormID      *int           `json:"form_id,omitempty"`
	FormName    string         `json:"form_name"`
	Data        map[string]any `json:"data"`
	FilledByID  *int           `json:"filled_by_id,omitempty"`
	DateOfVisit time.Time      `json:"date_of_visit"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
