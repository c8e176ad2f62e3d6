package model

import "time"

type ProjectStatus string

const (
	ProjectToStart     ProjectStatus = "To-start"
	ProjectOngoing     ProjectStatus = "On-going"
	ProjectMaintenance ProjectStatus = "Maintenance"
	// ProjectArchive is an explicit override; aggregation never produces it
	// and must never overwrite it.
	ProjectArchive ProjectStatus = "Archive"
)

type MemberRole string

const (
	RolePrimaryProjectManager   MemberRole = "primaryProjectManager"
	RoleSecondaryProjectManager MemberRole = "secondaryProjectManager"
	RoleInstallationManager     MemberRole = "installationManager"
	RoleMaintenanceManager      MemberRole = "maintenanceManager"
	RoleTechnician              MemberRole = "Technician"
)

type TeamMember struct {
	Role   MemberRole `json:"role"`
	UserID int        `json:"user_id"`
}

type Project struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Status      ProjectStatus `json:"status"`
	StartDate   time.Time     `json:"start_date"`
	TeamMembers []TeamMember  `json:"team_members"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ManagerIDs returns the primary/secondary project manager user ids.
func (p *Project) ManagerIDs() []int {
	var ids []int
	for _, m := range p.TeamMembers {
		if m.Role == RolePrimaryProjectManager || m.Role == RoleSecondaryProjectManager {
			ids = append(ids, m.UserID)
		}
	}
	return ids
}
