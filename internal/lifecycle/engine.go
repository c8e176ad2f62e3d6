package lifecycle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	mqcontracts "fieldforce/contracts/mq"
	"fieldforce/internal/calendar"
	"fieldforce/internal/model"
	"fieldforce/internal/recurrence"
	"fieldforce/pkg/metrics"
)

// Engine owns every task and project lifecycle mutation. All methods take the
// evaluation day explicitly so the sweeper, the handlers and the tests share
// one clock-free code path.
type Engine struct {
	tasks    TaskStore
	updates  DailyUpdateStore
	projects ProjectStore
	reports  ServiceReportStore
	users    UserStore
	notifier Notifier
	locker   TaskLocker
	logger   *zap.Logger
}

func NewEngine(
	tasks TaskStore,
	updates DailyUpdateStore,
	projects ProjectStore,
	reports ServiceReportStore,
	users UserStore,
	notifier Notifier,
	locker TaskLocker,
	logger *zap.Logger,
) *Engine {
	if locker == nil {
		locker = NopLocker{}
	}
	return &Engine{
		tasks:    tasks,
		updates:  updates,
		projects: projects,
		reports:  reports,
		users:    users,
		notifier: notifier,
		locker:   locker,
		logger:   logger,
	}
}

// CreateTask inserts the task with its automatic status, seeds one daily
// update per day of its range, and refreshes the owning project's status.
func (e *Engine) CreateTask(ctx context.Context, today time.Time, task *model.Task) error {
	if !model.ValidStage(task.Stage) {
		return fmt.Errorf("stage %q: %w", task.Stage, ErrInvalidStage)
	}
	if err := validRange(task.StartDate, task.EndDate); err != nil {
		return err
	}

	project, err := e.projects.ByID(ctx, task.ProjectID)
	if err != nil {
		return err
	}
	if task.StartDate != nil && calendar.Day(*task.StartDate).Before(calendar.Day(project.StartDate)) {
		return fmt.Errorf("task starts before project start: %w", calendar.ErrInvalidRange)
	}

	task.Status = ResolveStatus(today, task)
	if err := e.tasks.Insert(ctx, task); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	plan, err := PlanReconcile(task, nil)
	if err != nil {
		return err
	}
	if err := e.applyPlan(ctx, plan); err != nil {
		return err
	}

	return e.AggregateProject(ctx, task.ProjectID)
}

// UpdateTimeline moves a task's date range. The daily update ledger is only
// reconciled when the range actually changed, and entries for days covered by
// both the old and new range keep their logged data.
func (e *Engine) UpdateTimeline(ctx context.Context, today time.Time, taskID int, start, end *time.Time) error {
	release, err := e.locker.Acquire(ctx, taskID)
	if err != nil {
		return err
	}
	defer release()

	if err := validRange(start, end); err != nil {
		return err
	}

	task, err := e.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}

	changed := !sameRange(task.StartDate, task.EndDate, start, end)
	task.StartDate = start
	task.EndDate = end
	task.Status = ResolveStatus(today, task)

	if err := e.tasks.Save(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if changed {
		existing, err := e.updates.ByTask(ctx, taskID)
		if err != nil {
			return err
		}
		plan, err := PlanReconcile(task, existing)
		if err != nil {
			return err
		}
		if err := e.applyPlan(ctx, plan); err != nil {
			return err
		}
	}

	return e.AggregateProject(ctx, task.ProjectID)
}

// SubmitForReview moves a task to To-review after checking that the field
// evidence is in place: a service report with a configured form must carry
// data, and at least one daily update must have photos attached. A task
// already under review or completed cannot be submitted again.
func (e *Engine) SubmitForReview(ctx context.Context, today time.Time, taskID, submittedBy int) error {
	task, err := e.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status.Terminal() {
		return fmt.Errorf("task %d is %s: %w", taskID, task.Status, ErrInvalidTransition)
	}

	report, err := e.reports.ByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if report != nil && report.FormID != nil && len(report.Data) == 0 {
		return fmt.Errorf("service report form not filled: %w", ErrPreconditionNotMet)
	}

	updates, err := e.updates.ByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !anyWithPhotos(updates) {
		return fmt.Errorf("no daily update with photos: %w", ErrPreconditionNotMet)
	}

	reviewDate := calendar.Day(today)
	task.Status = model.StatusToReview
	task.ReviewDate = &reviewDate
	if err := e.tasks.Save(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	metrics.IncrementStatusResolved(string(model.StatusToReview))

	// The transition is committed; notification problems are only logged.
	project, err := e.projects.ByID(ctx, task.ProjectID)
	if err != nil {
		e.logger.Error("Failed to load project", zap.Int("project_id", task.ProjectID), zap.Error(err))
		return nil
	}
	recipients, err := e.reviewers(ctx, project)
	if err != nil {
		e.logger.Error("Failed to resolve recipients", zap.Int("task_id", taskID), zap.Error(err))
	} else {
		e.notify(ctx, mqcontracts.KindTaskSubmitted, recipients, mqcontracts.TaskSubmittedPayload{
			TaskID:      task.ID,
			TaskName:    task.Name,
			ProjectID:   project.ID,
			ProjectName: project.Name,
			SubmittedBy: submittedBy,
			ReviewDate:  reviewDate,
		})
	}
	return nil
}

// Resubmit pushes a To-review task back to field work. Its status is
// recomputed from the dates as if the review never happened, and the owners
// are told why via the remarks.
func (e *Engine) Resubmit(ctx context.Context, today time.Time, taskID int, remarks string) error {
	task, err := e.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status != model.StatusToReview {
		return fmt.Errorf("task %d is %s, not To-review: %w", taskID, task.Status, ErrInvalidTransition)
	}

	task.Status = resolveFromDates(today, task.StartDate, task.EndDate)
	task.ReviewDate = nil
	task.Remarks = remarks
	if err := e.tasks.Save(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	metrics.IncrementStatusResolved(string(task.Status))

	project, err := e.projects.ByID(ctx, task.ProjectID)
	if err != nil {
		e.logger.Error("Failed to load project", zap.Int("project_id", task.ProjectID), zap.Error(err))
		return nil
	}
	recipients, err := e.owners(ctx, task)
	if err != nil {
		e.logger.Error("Failed to resolve recipients", zap.Int("task_id", taskID), zap.Error(err))
	} else {
		e.notify(ctx, mqcontracts.KindTaskResubmitted, recipients, mqcontracts.TaskResubmittedPayload{
			TaskID:      task.ID,
			TaskName:    task.Name,
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Status:      string(task.Status),
			Remarks:     remarks,
		})
	}
	return nil
}

// MarkAsDone completes a task under review and refreshes the project status.
func (e *Engine) MarkAsDone(ctx context.Context, today time.Time, taskID int) error {
	task, err := e.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status != model.StatusToReview {
		return fmt.Errorf("task %d is %s, not To-review: %w", taskID, task.Status, ErrInvalidTransition)
	}

	completed := calendar.Day(today)
	task.Status = model.StatusCompleted
	task.CompletedDate = &completed
	if err := e.tasks.Save(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	metrics.IncrementStatusResolved(string(model.StatusCompleted))

	return e.AggregateProject(ctx, task.ProjectID)
}

// UpdateDistance records the kilometres travelled on one ledger entry.
func (e *Engine) UpdateDistance(ctx context.Context, updateID int, distanceKm float64) error {
	if err := e.guardLedgerEdit(ctx, updateID); err != nil {
		return err
	}
	if err := e.updates.SaveDistance(ctx, updateID, distanceKm); err != nil {
		return fmt.Errorf("failed to save distance: %w", err)
	}
	return nil
}

// UpdateManHours records the crew effort on one ledger entry. The total is
// always persons times hours; a client-supplied total is ignored.
func (e *Engine) UpdateManHours(ctx context.Context, updateID, persons int, hours float64) (model.ManHours, error) {
	mh := model.ManHours{
		NoOfPerson: persons,
		NoOfHours:  hours,
		TotalHours: float64(persons) * hours,
	}
	if err := e.guardLedgerEdit(ctx, updateID); err != nil {
		return mh, err
	}
	if err := e.updates.SaveManHours(ctx, updateID, mh); err != nil {
		return mh, fmt.Errorf("failed to save man hours: %w", err)
	}
	return mh, nil
}

// RecurringSchedule describes one batch of visit tasks to generate.
type RecurringSchedule struct {
	ProjectID        int
	Stage            model.Stage
	Name             string
	PrimaryOwnerID   *int
	SecondaryOwnerID *int
	Rule             recurrence.Rule
	Anchor           time.Time
}

// ScheduleRecurring expands the rule and creates one task per occurrence,
// each spanning the day before the visit through the visit day. A rule that
// yields no dates is a valid outcome and creates nothing.
func (e *Engine) ScheduleRecurring(ctx context.Context, today time.Time, sched RecurringSchedule) ([]model.Task, error) {
	if !model.ValidStage(sched.Stage) {
		return nil, fmt.Errorf("stage %q: %w", sched.Stage, ErrInvalidStage)
	}

	dates, err := recurrence.Expand(sched.Rule, sched.Anchor)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return []model.Task{}, nil
	}

	batch := make([]model.Task, 0, len(dates))
	for _, d := range dates {
		start := d.AddDate(0, 0, -1)
		end := d
		t := model.Task{
			ProjectID:        sched.ProjectID,
			Stage:            sched.Stage,
			Name:             sched.Name,
			StartDate:        &start,
			EndDate:          &end,
			PrimaryOwnerID:   sched.PrimaryOwnerID,
			SecondaryOwnerID: sched.SecondaryOwnerID,
		}
		t.Status = ResolveStatus(today, &t)
		batch = append(batch, t)
	}

	inserted, err := e.tasks.InsertMany(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recurring tasks: %w", err)
	}

	for i := range inserted {
		plan, err := PlanReconcile(&inserted[i], nil)
		if err != nil {
			return nil, err
		}
		if err := e.applyPlan(ctx, plan); err != nil {
			return nil, err
		}
	}

	if err := e.AggregateProject(ctx, sched.ProjectID); err != nil {
		return nil, err
	}
	return inserted, nil
}

// DeleteTask removes the task together with its service report and ledger,
// then refreshes the project status.
func (e *Engine) DeleteTask(ctx context.Context, taskID int) error {
	release, err := e.locker.Acquire(ctx, taskID)
	if err != nil {
		return err
	}
	defer release()

	task, err := e.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := e.reports.DeleteByTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete service report: %w", err)
	}
	if err := e.updates.DeleteByTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete daily updates: %w", err)
	}
	if err := e.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return e.AggregateProject(ctx, task.ProjectID)
}

// AggregateProject recomputes a project's status from its tasks. Archived
// projects are left untouched. Entering Maintenance notifies the admins and
// project managers exactly once, on the transition itself.
func (e *Engine) AggregateProject(ctx context.Context, projectID int) error {
	project, err := e.projects.ByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status == model.ProjectArchive {
		return nil
	}

	tasks, err := e.tasks.ByProject(ctx, projectID)
	if err != nil {
		return err
	}

	next := AggregateStatus(tasks)
	if next == project.Status {
		return nil
	}

	if err := e.projects.SaveStatus(ctx, projectID, next); err != nil {
		return fmt.Errorf("failed to save project status: %w", err)
	}
	e.logger.Info("Project status changed",
		zap.Int("project_id", projectID),
		zap.String("from", string(project.Status)),
		zap.String("to", string(next)),
	)

	if next == model.ProjectMaintenance {
		recipients, err := e.reviewers(ctx, project)
		if err != nil {
			e.logger.Error("Failed to resolve recipients", zap.Int("project_id", projectID), zap.Error(err))
			return nil
		}
		e.notify(ctx, mqcontracts.KindProjectMaintenance, recipients, mqcontracts.ProjectMaintenancePayload{
			ProjectID:   project.ID,
			ProjectName: project.Name,
		})
	}
	return nil
}

// Sweep resolves every non-completed task against today, notifies the
// stakeholders of newly delayed tasks, and refreshes every non-archived
// project. One failing unit is logged and skipped so the rest of the sweep
// still runs; only cancellation aborts it.
func (e *Engine) Sweep(ctx context.Context, today time.Time) error {
	started := time.Now()
	defer func() {
		metrics.ObserveSweep(time.Since(started))
	}()

	tasks, err := e.tasks.Active(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active tasks: %w", err)
	}

	resolved := 0
	for i := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.sweepTask(ctx, today, &tasks[i]) {
			resolved++
		}
	}

	projects, err := e.projects.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.Status == model.ProjectArchive {
			continue
		}
		if err := e.AggregateProject(ctx, p.ID); err != nil {
			e.logger.Error("Failed to aggregate project", zap.Int("project_id", p.ID), zap.Error(err))
		}
	}

	e.logger.Info("Sweep completed",
		zap.Int("tasks_checked", len(tasks)),
		zap.Int("statuses_changed", resolved),
	)
	return nil
}

func (e *Engine) sweepTask(ctx context.Context, today time.Time, task *model.Task) bool {
	release, err := e.locker.Acquire(ctx, task.ID)
	if err != nil {
		e.logger.Error("Failed to lock task", zap.Int("task_id", task.ID), zap.Error(err))
		return false
	}
	defer release()

	next := ResolveStatus(today, task)
	if next == task.Status {
		return false
	}

	prev := task.Status
	task.Status = next
	if err := e.tasks.Save(ctx, task); err != nil {
		e.logger.Error("Failed to save task", zap.Int("task_id", task.ID), zap.Error(err))
		task.Status = prev
		return false
	}
	metrics.IncrementStatusResolved(string(next))

	if next == model.StatusDelayed {
		e.notifyDelayed(ctx, today, task)
	}
	return true
}

func (e *Engine) notifyDelayed(ctx context.Context, today time.Time, task *model.Task) {
	project, err := e.projects.ByID(ctx, task.ProjectID)
	if err != nil {
		e.logger.Error("Failed to load project", zap.Int("project_id", task.ProjectID), zap.Error(err))
		return
	}

	recipients, err := e.stakeholders(ctx, task, project)
	if err != nil {
		e.logger.Error("Failed to resolve recipients", zap.Int("task_id", task.ID), zap.Error(err))
		return
	}

	delayDays := 0
	if task.EndDate != nil {
		delayDays = int(calendar.Day(today).Sub(calendar.Day(*task.EndDate)).Hours() / 24)
	}

	e.notify(ctx, mqcontracts.KindTaskDelayed, recipients, mqcontracts.TaskDelayedPayload{
		TaskID:      task.ID,
		TaskName:    task.Name,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		DelayDays:   delayDays,
		StartDate:   task.StartDate,
		EndDate:     task.EndDate,
	})
}

// notify delivers the event and only logs failures; lifecycle changes never
// roll back because a broker was down.
func (e *Engine) notify(ctx context.Context, kind string, recipients []model.Recipient, payload any) {
	err := e.notifier.Notify(ctx, Event{Kind: kind, Recipients: recipients, Payload: payload})
	if err != nil {
		e.logger.Error("Failed to publish event", zap.String("kind", kind), zap.Error(err))
	}
}

// owners resolves a task's primary and secondary owners.
func (e *Engine) owners(ctx context.Context, task *model.Task) ([]model.Recipient, error) {
	var ids []int
	if task.PrimaryOwnerID != nil {
		ids = append(ids, *task.PrimaryOwnerID)
	}
	if task.SecondaryOwnerID != nil {
		ids = append(ids, *task.SecondaryOwnerID)
	}
	return e.recipients(ctx, ids, false)
}

// reviewers resolves a project's managers plus the admins.
func (e *Engine) reviewers(ctx context.Context, project *model.Project) ([]model.Recipient, error) {
	return e.recipients(ctx, project.ManagerIDs(), true)
}

// stakeholders resolves owners, managers and admins for delay alerts.
func (e *Engine) stakeholders(ctx context.Context, task *model.Task, project *model.Project) ([]model.Recipient, error) {
	ids := project.ManagerIDs()
	if task.PrimaryOwnerID != nil {
		ids = append(ids, *task.PrimaryOwnerID)
	}
	if task.SecondaryOwnerID != nil {
		ids = append(ids, *task.SecondaryOwnerID)
	}
	return e.recipients(ctx, ids, true)
}

func (e *Engine) recipients(ctx context.Context, ids []int, includeAdmins bool) ([]model.Recipient, error) {
	users, err := e.users.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if includeAdmins {
		admins, err := e.users.Admins(ctx)
		if err != nil {
			return nil, err
		}
		users = append(users, admins...)
	}

	seen := make(map[int]struct{}, len(users))
	out := make([]model.Recipient, 0, len(users))
	for i := range users {
		if _, ok := seen[users[i].ID]; ok {
			continue
		}
		seen[users[i].ID] = struct{}{}
		out = append(out, users[i].Recipient())
	}
	return out, nil
}

func (e *Engine) guardLedgerEdit(ctx context.Context, updateID int) error {
	update, err := e.updates.ByID(ctx, updateID)
	if err != nil {
		return err
	}
	task, err := e.tasks.ByID(ctx, update.TaskID)
	if err != nil {
		return err
	}
	if task.Status == model.StatusCompleted {
		return fmt.Errorf("task %d: %w", task.ID, ErrTaskCompleted)
	}
	return nil
}

func (e *Engine) applyPlan(ctx context.Context, plan ReconcilePlan) error {
	if plan.Empty() {
		return nil
	}
	if len(plan.Deletes) > 0 {
		if err := e.updates.BulkDelete(ctx, plan.Deletes); err != nil {
			return fmt.Errorf("failed to delete daily updates: %w", err)
		}
		metrics.AddLedgerMutations("delete", len(plan.Deletes))
	}
	if len(plan.Creates) > 0 {
		if err := e.updates.BulkInsert(ctx, plan.Creates); err != nil {
			return fmt.Errorf("failed to insert daily updates: %w", err)
		}
		metrics.AddLedgerMutations("create", len(plan.Creates))
	}
	return nil
}

func anyWithPhotos(updates []model.DailyUpdate) bool {
	for _, u := range updates {
		if len(u.Photos) > 0 {
			return true
		}
	}
	return false
}

// validRange rejects an inverted date range before anything is persisted, so
// a failed timeline call leaves no partial state behind.
func validRange(start, end *time.Time) error {
	if start != nil && end != nil && calendar.Day(*start).After(calendar.Day(*end)) {
		return calendar.ErrInvalidRange
	}
	return nil
}

func sameRange(aStart, aEnd, bStart, bEnd *time.Time) bool {
	return sameDayPtr(aStart, bStart) && sameDayPtr(aEnd, bEnd)
}

func sameDayPtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return calendar.SameDay(*a, *b)
}
