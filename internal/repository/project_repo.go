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

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

func (r *ProjectRepository) ByID(ctx context.Context, id int) (*model.Project, error) {
	query := `
        SELECT id, name, status, start_date, created_at, updated_at
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Status,
		&p.StartDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to query project", zap.Error(err), zap.Int("project_id", id))
		return nil, err
	}

	members, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	p.TeamMembers = members
	return &p, nil
}

func (r *ProjectRepository) All(ctx context.Context) ([]model.Project, error) {
	query := `
        SELECT id, name, status, start_date, created_at, updated_at
        FROM projects
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Status,
			&p.StartDate,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan project row", zap.Error(err))
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		members, err := r.members(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].TeamMembers = members
	}
	return projects, nil
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO projects (name, status, start_date)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `
	if p.Status == "" {
		p.Status = model.ProjectToStart
	}
	err = tx.QueryRow(ctx, query, p.Name, p.Status, p.StartDate).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err), zap.String("name", p.Name))
		return err
	}

	memberQuery := `INSERT INTO project_members (project_id, user_id, role) VALUES ($1, $2, $3)`
	for _, m := range p.TeamMembers {
		if _, err := tx.Exec(ctx, memberQuery, p.ID, m.UserID, m.Role); err != nil {
			r.logger.Error("Failed to insert project member",
				zap.Error(err),
				zap.Int("project_id", p.ID),
				zap.Int("user_id", m.UserID),
			)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit project insert", zap.Error(err))
		return err
	}
	r.logger.Info("Project inserted", zap.Int("project_id", p.ID), zap.String("name", p.Name))
	return nil
}

func (r *ProjectRepository) SaveStatus(ctx context.Context, id int, status model.ProjectStatus) error {
	query := `UPDATE projects SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to save project status",
			zap.Error(err),
			zap.Int("project_id", id),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) members(ctx context.Context, projectID int) ([]model.TeamMember, error) {
	query := `SELECT user_id, role FROM project_members WHERE project_id = $1 ORDER BY user_id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query project members",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}
	defer rows.Close()

	members := []model.TeamMember{}
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.UserID, &m.Role); err != nil {
			r.logger.Error("Failed to scan member row", zap.Error(err))
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
