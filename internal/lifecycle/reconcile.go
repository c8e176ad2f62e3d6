package lifecycle

import (
	"time"

	"fieldforce/internal/calendar"
	"fieldforce/internal/model"
)

// ReconcilePlan is the bulk mutation set that aligns a task's daily update
// ledger with its current date range. Entries for days inside both the old
// and new range are never touched, so photos and hours already logged on
// those days survive a timeline change.
type ReconcilePlan struct {
	Creates []model.DailyUpdate
	Deletes []int
}

func (p ReconcilePlan) Empty() bool {
	return len(p.Creates) == 0 && len(p.Deletes) == 0
}

// PlanReconcile computes the inserts and deletes that make the existing
// ledger exactly cover [task.StartDate, task.EndDate], one entry per day.
// A task without a date range produces an empty plan. Planning twice with an
// unchanged range yields an empty second plan.
func PlanReconcile(task *model.Task, existing []model.DailyUpdate) (ReconcilePlan, error) {
	var plan ReconcilePlan

	if task.StartDate == nil || task.EndDate == nil {
		return plan, nil
	}

	days, err := calendar.DaysBetween(*task.StartDate, *task.EndDate)
	if err != nil {
		return plan, err
	}

	desired := make(map[time.Time]struct{})
	for d := range days {
		desired[d] = struct{}{}
	}

	have := make(map[time.Time]struct{}, len(existing))
	for _, u := range existing {
		day := calendar.Day(u.Date)
		if _, ok := desired[day]; !ok {
			plan.Deletes = append(plan.Deletes, u.ID)
			continue
		}
		have[day] = struct{}{}
	}

	for d := range days {
		if _, ok := have[d]; !ok {
			plan.Creates = append(plan.Creates, model.DailyUpdate{
				TaskID: task.ID,
				Date:   d,
			})
		}
	}

	return plan, nil
}
