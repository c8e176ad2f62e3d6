package lifecycle

import (
	"context"

	"fieldforce/internal/model"
)

// The engine only knows these collaborator interfaces; persistence and
// delivery live behind them.

type TaskStore interface {
	ByID(ctx context.Context, id int) (*model.Task, error)
	ByProject(ctx context.Context, projectID int) ([]model.Task, error)
	// Active returns every task not yet completed.
	Active(ctx context.Context) ([]model.Task, error)
	Insert(ctx context.Context, t *model.Task) error
	InsertMany(ctx context.Context, ts []model.Task) ([]model.Task, error)
	Save(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id int) error
}

type DailyUpdateStore interface {
	ByID(ctx context.Context, id int) (*model.DailyUpdate, error)
	ByTask(ctx context.Context, taskID int) ([]model.DailyUpdate, error)
	BulkInsert(ctx context.Context, updates []model.DailyUpdate) error
	BulkDelete(ctx context.Context, ids []int) error
	DeleteByTask(ctx context.Context, taskID int) error
	SaveDistance(ctx context.Context, id int, distanceKm float64) error
	SaveManHours(ctx context.Context, id int, mh model.ManHours) error
}

type ProjectStore interface {
	ByID(ctx context.Context, id int) (*model.Project, error)
	All(ctx context.Context) ([]model.Project, error)
	SaveStatus(ctx context.Context, id int, status model.ProjectStatus) error
}

type ServiceReportStore interface {
	// ByTask returns (nil, nil) when the task has no report attached.
	ByTask(ctx context.Context, taskID int) (*model.ServiceReport, error)
	DeleteByTask(ctx context.Context, taskID int) error
}

type UserStore interface {
	Admins(ctx context.Context) ([]model.User, error)
	ByIDs(ctx context.Context, ids []int) ([]model.User, error)
}

// Event is a notification request. Delivery is fire-and-forget: failures are
// logged by the collaborator and never roll back a lifecycle change.
type Event struct {
	Kind       string
	Recipients []model.Recipient
	Payload    any
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// TaskLocker scopes mutation plus ledger reconciliation per task id.
type TaskLocker interface {
	Acquire(ctx context.Context, taskID int) (release func(), err error)
}

// NopLocker is used where single-flight access is already guaranteed.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, int) (func(), error) {
	return func() {}, nil
}
