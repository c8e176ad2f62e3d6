package lifecycle

import (
	"time"

	"fieldforce/internal/calendar"
	"fieldforce/internal/model"
)

// ResolveStatus maps today and the task's date range to the task's automatic
// status. To-review and Completed are absorbing here: they only change
// through the explicit actions on the Engine. The function is pure; the
// caller persists the result.
func ResolveStatus(today time.Time, task *model.Task) model.TaskStatus {
	if task.Status.Terminal() {
		return task.Status
	}
	return resolveFromDates(today, task.StartDate, task.EndDate)
}

func resolveFromDates(today time.Time, start, end *time.Time) model.TaskStatus {
	if start == nil || end == nil {
		return model.StatusToDo
	}

	d := calendar.Day(today)
	s := calendar.Day(*start)
	e := calendar.Day(*end)

	switch {
	case d.Before(s):
		return model.StatusToDo
	case !d.After(e):
		return model.StatusOngoing
	default:
		return model.StatusDelayed
	}
}
