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

type ServiceReportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewServiceReportRepository(db *pgxpool.Pool, logger *zap.Logger) *ServiceReportRepository {
	return &ServiceReportRepository{db: db, logger: logger}
}

// ByTask returns nil without error when the task has no report.
func (r *ServiceReportRepository) ByTask(ctx context.Context, taskID int) (*model.ServiceReport, error) {
	query := `
        SELECT id, task_id, form_id, form_name, data, filled_by_id, date_of_visit, updated_at
        FROM service_reports
        WHERE task_id = $1
    `
	var sr model.ServiceReport
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&sr.ID,
		&sr.TaskID,
		&sr.FormID,
		&sr.FormName,
		&sr.Data,
		&sr.FilledByID,
		&sr.DateOfVisit,
		&sr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query service report",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return nil, err
	}
	return &sr, nil
}

func (r *ServiceReportRepository) DeleteByTask(ctx context.Context, taskID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM service_reports WHERE task_id = $1`, taskID)
	if err != nil {
		r.logger.Error("Failed to delete service report",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return err
	}
	return nil
}

// SaveData replaces the captured form data for a task's report.
func (r *ServiceReportRepository) SaveData(ctx context.Context, taskID int, filledByID int, data map[string]any) error {
	query := `
        UPDATE service_reports
        SET data = $2, filled_by_id = $3, updated_at = NOW()
        WHERE task_id = $1
    `
	tag, err := r.db.Exec(ctx, query, taskID, data, filledByID)
	if err != nil {
		r.logger.Error("Failed to save service report data",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}
