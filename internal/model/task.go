package model

import "time"

type TaskStatus string

const (
	StatusToDo      TaskStatus = "To-do"
	StatusOngoing   TaskStatus = "On-going"
	StatusDelayed   TaskStatus = "Delayed"
	StatusToReview  TaskStatus = "To-review"
	StatusCompleted TaskStatus = "Completed"
)

// Terminal reports whether the status is only left via an explicit action
// (resubmit or mark-as-done), never by automatic date resolution.
func (s TaskStatus) Terminal() bool {
	return s == StatusToReview || s == StatusCompleted
}

type Stage string

const (
	StagePreRequisites Stage = "Pre-requisites"
	StageInstallation  Stage = "Installation & Commissioning"
	StageMaintenance   Stage = "Maintenance"
)

func ValidStage(s Stage) bool {
	switch s {
	case StagePreRequisites, StageInstallation, StageMaintenance:
		return true
	}
	return false
}

type Task struct {
	ID               int        `json:"id"`
	ProjectID        int        `json:"project_id"`
	Stage            Stage      `json:"project_stage"`
	Name             string     `json:"name"`
	Status           TaskStatus `json:"status"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ReviewDate       *time.Time `json:"review_date,omitempty"`
	CompletedDate    *time.Time `json:"completed_date,omitempty"`
	PrimaryOwnerID   *int       `json:"primary_owner_id,omitempty"`
	SecondaryOwnerID *int       `json:"secondary_owner_id,omitempty"`
	ServiceReportID  *int       `json:"service_report_id,omitempty"`
	Remarks          string     `json:"remarks,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
