package mq

import "time"

// Routing keys on the "events" topic exchange.
const (
	KindTaskDelayed        = "task.delayed"
	KindTaskSubmitted      = "task.submitted"
	KindTaskResubmitted    = "task.resubmitted"
	KindProjectMaintenance = "project.maintenance"
)

// Recipient identifies a user the worker should deliver to.
type Recipient struct {
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	PhoneNo string `json:"phone_no,omitempty"`
}

type TaskDelayedPayload struct {
	TaskID      int        `json:"task_id"`
	TaskName    string     `json:"task_name"`
	ProjectID   int        `json:"project_id"`
	ProjectName string     `json:"project_name"`
	DelayDays   int        `json:"delay_days"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type TaskSubmittedPayload struct {
	TaskID      int       `json:"task_id"`
	TaskName    string    `json:"task_name"`
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name"`
	SubmittedBy int       `json:"submitted_by"`
	ReviewDate  time.Time `json:"review_date"`
}

type TaskResubmittedPayload struct {
	TaskID      int    `json:"task_id"`
	TaskName    string `json:"task_name"`
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
	Status      string `json:"status"`
	Remarks     string `json:"remarks,omitempty"`
}

type ProjectMaintenancePayload struct {
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// Envelope is what the publisher puts on the wire: the payload plus the
// recipients resolved at publish time, so the worker needs no user lookup.
type Envelope struct {
	Kind       string      `json:"kind"`
	Recipients []Recipient `json:"recipients"`
	Payload    any         `json:"payload"`
	EmittedAt  time.Time   `json:"emitted_at"`
}
