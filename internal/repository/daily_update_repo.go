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

type DailyUpdateRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDailyUpdateRepository(db *pgxpool.Pool, logger *zap.Logger) *DailyUpdateRepository {
	return &DailyUpdateRepository{db: db, logger: logger}
}

const dailyUpdateColumns = `
    id, task_id, date, photos, distance_traveled, man_hours, created_at, updated_at
`

func scanDailyUpdate(row pgx.Row) (*model.DailyUpdate, error) {
	var u model.DailyUpdate
	err := row.Scan(
		&u.ID,
		&u.TaskID,
		&u.Date,
		&u.Photos,
		&u.DistanceTraveled,
		&u.ManHours,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *DailyUpdateRepository) ByID(ctx context.Context, id int) (*model.DailyUpdate, error) {
	query := `SELECT ` + dailyUpdateColumns + ` FROM daily_updates WHERE id = $1`
	u, err := scanDailyUpdate(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to query daily update", zap.Error(err), zap.Int("update_id", id))
		return nil, err
	}
	return u, nil
}

func (r *DailyUpdateRepository) ByTask(ctx context.Context, taskID int) ([]model.DailyUpdate, error) {
	query := `SELECT ` + dailyUpdateColumns + ` FROM daily_updates WHERE task_id = $1 ORDER BY date`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		r.logger.Error("Failed to query daily updates",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return nil, err
	}
	defer rows.Close()

	updates := []model.DailyUpdate{}
	for rows.Next() {
		u, err := scanDailyUpdate(rows)
		if err != nil {
			r.logger.Error("Failed to scan daily update row", zap.Error(err))
			return nil, err
		}
		updates = append(updates, *u)
	}
	return updates, rows.Err()
}

func (r *DailyUpdateRepository) BulkInsert(ctx context.Context, updates []model.DailyUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO daily_updates (task_id, date) VALUES ($1, $2)`
	for _, u := range updates {
		batch.Queue(query, u.TaskID, u.Date)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			r.logger.Error("Failed to insert daily updates", zap.Error(err))
			return err
		}
	}
	r.logger.Info("Daily updates inserted", zap.Int("count", len(updates)))
	return nil
}

func (r *DailyUpdateRepository) BulkDelete(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM daily_updates WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error("Failed to delete daily updates", zap.Error(err))
		return err
	}
	r.logger.Info("Daily updates deleted", zap.Int("count", len(ids)))
	return nil
}

func (r *DailyUpdateRepository) DeleteByTask(ctx context.Context, taskID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM daily_updates WHERE task_id = $1`, taskID)
	if err != nil {
		r.logger.Error("Failed to delete task daily updates",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return err
	}
	return nil
}

func (r *DailyUpdateRepository) SaveDistance(ctx context.Context, id int, distanceKm float64) error {
	query := `UPDATE daily_updates SET distance_traveled = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, distanceKm)
	if err != nil {
		r.logger.Error("Failed to save distance", zap.Error(err), zap.Int("update_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (r *DailyUpdateRepository) SaveManHours(ctx context.Context, id int, mh model.ManHours) error {
	query := `UPDATE daily_updates SET man_hours = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, mh)
	if err != nil {
		r.logger.Error("Failed to save man hours", zap.Error(err), zap.Int("update_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

// AddPhotos appends photo references to one ledger entry.
func (r *DailyUpdateRepository) AddPhotos(ctx context.Context, id int, photos []string) error {
	query := `UPDATE daily_updates SET photos = photos || $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, photos)
	if err != nil {
		r.logger.Error("Failed to add photos", zap.Error(err), zap.Int("update_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}
