package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fieldforce/internal/model"
)

type NotificationLogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewNotificationLogRepository(db *pgxpool.Pool, logger *zap.Logger) *NotificationLogRepository {
	return &NotificationLogRepository{db: db, logger: logger}
}

func (r *NotificationLogRepository) Insert(ctx context.Context, l *model.NotificationLog) error {
	query := `
        INSERT INTO notification_logs (kind, user_id, task_id, project_id, message)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		l.Kind,
		l.UserID,
		l.TaskID,
		l.ProjectID,
		l.Message,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert notification log",
			zap.Error(err),
			zap.String("kind", l.Kind),
			zap.Int("user_id", l.UserID),
		)
		return err
	}
	return nil
}

func (r *NotificationLogRepository) ListByUser(ctx context.Context, userID int, limit int) ([]model.NotificationLog, error) {
	query := `
        SELECT id, kind, user_id, task_id, project_id, message, created_at
        FROM notification_logs
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to query notification logs",
			zap.Error(err),
			zap.Int("user_id", userID),
		)
		return nil, err
	}
	defer rows.Close()

	logs := []model.NotificationLog{}
	for rows.Next() {
		var l model.NotificationLog
		if err := rows.Scan(
			&l.ID,
			&l.Kind,
			&l.UserID,
			&l.TaskID,
			&l.ProjectID,
			&l.Message,
			&l.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan notification log row", zap.Error(err))
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
