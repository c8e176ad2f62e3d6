package model

import "time"

type NotificationLog struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	UserID    int       `json:"user_id"`
	TaskID    int       `json:"task_id,omitempty"`
	ProjectID int       `json:"project_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
