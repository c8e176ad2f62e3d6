package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fieldforce/internal/lifecycle"
	"fieldforce/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

const taskColumns = `
    id, project_id, stage, name, status, start_date, end_date,
    review_date, completed_date, primary_owner_id, secondary_owner_id,
    service_report_id, remarks, created_at, updated_at
`

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Stage,
		&t.Name,
		&t.Status,
		&t.StartDate,
		&t.EndDate,
		&t.ReviewDate,
		&t.CompletedDate,
		&t.PrimaryOwnerID,
		&t.SecondaryOwnerID,
		&t.ServiceReportID,
		&t.Remarks,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ByID(ctx context.Context, id int) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to query task", zap.Error(err), zap.Int("task_id", id))
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) ByProject(ctx context.Context, projectID int) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query project tasks",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *TaskRepository) Active(ctx context.Context) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status <> $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, model.StatusCompleted)
	if err != nil {
		r.logger.Error("Failed to query active tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) error {
	query := `
        INSERT INTO tasks (project_id, stage, name, status, start_date, end_date,
                           primary_owner_id, secondary_owner_id, remarks)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		t.ProjectID,
		t.Stage,
		t.Name,
		t.Status,
		t.StartDate,
		t.EndDate,
		t.PrimaryOwnerID,
		t.SecondaryOwnerID,
		t.Remarks,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("project_id", t.ProjectID),
			zap.String("name", t.Name),
		)
		return err
	}
	r.logger.Info("Task inserted",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", t.ProjectID),
	)
	return nil
}

func (r *TaskRepository) InsertMany(ctx context.Context, ts []model.Task) ([]model.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO tasks (project_id, stage, name, status, start_date, end_date,
                           primary_owner_id, secondary_owner_id, remarks)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at
    `
	out := make([]model.Task, len(ts))
	for i, t := range ts {
		err := tx.QueryRow(ctx, query,
			t.ProjectID,
			t.Stage,
			t.Name,
			t.Status,
			t.StartDate,
			t.EndDate,
			t.PrimaryOwnerID,
			t.SecondaryOwnerID,
			t.Remarks,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			r.logger.Error("Failed to insert task batch",
				zap.Error(err),
				zap.Int("project_id", t.ProjectID),
			)
			return nil, err
		}
		out[i] = t
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit task batch", zap.Error(err))
		return nil, err
	}
	r.logger.Info("Task batch inserted", zap.Int("count", len(out)))
	return out, nil
}

func (r *TaskRepository) Save(ctx context.Context, t *model.Task) error {
	query := `
        UPDATE tasks
        SET stage = $2, name = $3, status = $4, start_date = $5, end_date = $6,
            review_date = $7, completed_date = $8, primary_owner_id = $9,
            secondary_owner_id = $10, remarks = $11, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		t.ID,
		t.Stage,
		t.Name,
		t.Status,
		t.StartDate,
		t.EndDate,
		t.ReviewDate,
		t.CompletedDate,
		t.PrimaryOwnerID,
		t.SecondaryOwnerID,
		t.Remarks,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Error(err), zap.Int("task_id", t.ID))
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Error(err), zap.Int("task_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	r.logger.Info("Task deleted", zap.Int("task_id", id))
	return nil
}

func (r *TaskRepository) collect(rows pgx.Rows) ([]model.Task, error) {
	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			r.logger.Error("Failed to scan task row", zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
