package model

import "time"

// ManHours is entered per day by a technician; TotalHours is always
// NoOfPerson * NoOfHours.
type ManHours struct {
	NoOfPerson int     `json:"no_of_person"`
	NoOfHours  float64 `json:"no_of_hours"`
	TotalHours float64 `json:"total_hours"`
}

// DailyUpdate is one ledger entry: exactly one exists per calendar day a task
// is active. The reconciler owns creation and deletion; the only manual
// mutations are the photo/distance/man-hour fields.
type DailyUpdate struct {
	ID               int       `json:"id"`
	TaskID           int       `json:"task_id"`
	Date             time.Time `json:"date"`
	Photos           []string  `json:"photos,omitempty"`
	DistanceTraveled *float64  `json:"distance_traveled,omitempty"`
	ManHours         *ManHours `json:"man_hours,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
