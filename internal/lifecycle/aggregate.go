package lifecycle

import "fieldforce/internal/model"

// AggregateStatus derives a project's status from its tasks' statuses.
// Pending tasks in the Maintenance stage do not hold a project back from
// Maintenance; only pending work in the other stages does. Archive is an
// explicit override and is never produced here.
func AggregateStatus(tasks []model.Task) model.ProjectStatus {
	hasOngoing := false
	hasPendingOutsideMaintenance := false

	for _, t := range tasks {
		if t.Status == model.StatusOngoing {
			hasOngoing = true
		}
		pending := t.Status == model.StatusToDo || t.Status == model.StatusOngoing
		if pending && t.Stage != model.StageMaintenance {
			hasPendingOutsideMaintenance = true
		}
	}

	switch {
	case len(tasks) == 0:
		return model.ProjectToStart
	case !hasPendingOutsideMaintenance && !hasOngoing:
		return model.ProjectMaintenance
	case hasOngoing:
		return model.ProjectOngoing
	default:
		return model.ProjectToStart
	}
}
