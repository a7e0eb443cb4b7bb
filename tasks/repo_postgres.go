package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

const taskColumns = `id, project_id, created_by_id, assignee_id, title, description,
	status, priority, position, due_at, completed_at, created_at, updated_at`

func (r *PostgresRepo) Create(ctx context.Context, task *Task) (*Task, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, project_id, created_by_id, assignee_id, title, description,
			status, priority, position, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, task.ID, task.ProjectID, task.CreatedByID, task.AssigneeID, task.Title, task.Description,
		task.Status, task.Priority, task.Position, task.DueAt).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[tasks.PostgresRepo.Create]")
	}
	return task, nil
}

func (r *PostgresRepo) FindInProject(ctx context.Context, projectID, taskID string) (*Task, error) {
	task := &Task{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND project_id = $2
	`, taskID, projectID).Scan(taskFields(task)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[tasks.PostgresRepo.FindInProject]")
	}
	return task, nil
}

func (r *PostgresRepo) List(ctx context.Context, projectID string, filters ListFilters) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1`
	args := []any{projectID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filters.AssigneeID != nil {
		args = append(args, *filters.AssigneeID)
		query += fmt.Sprintf(` AND assignee_id = $%d`, len(args))
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	query += ` ORDER BY position ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[tasks.PostgresRepo.List]")
	}
	defer rows.Close()

	var result []*Task
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(taskFields(task)...); err != nil {
			return nil, pkgerrors.Wrap(err, "[tasks.PostgresRepo.List] scan")
		}
		result = append(result, task)
	}
	return result, pkgerrors.Wrap(rows.Err(), "[tasks.PostgresRepo.List] rows")
}

func (r *PostgresRepo) Save(ctx context.Context, task *Task) (*Task, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks SET
			assignee_id  = $2,
			title        = $3,
			description  = $4,
			status       = $5,
			priority     = $6,
			position     = $7,
			due_at       = $8,
			completed_at = $9,
			updated_at   = now()
		WHERE id = $1
		RETURNING updated_at
	`, task.ID, task.AssigneeID, task.Title, task.Description, task.Status,
		task.Priority, task.Position, task.DueAt, task.CompletedAt).
		Scan(&task.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[tasks.PostgresRepo.Save]")
	}
	return task, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return pkgerrors.Wrap(err, "[tasks.PostgresRepo.Delete]")
}

func (r *PostgresRepo) MaxPosition(ctx context.Context, projectID string) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(position), 0) FROM tasks WHERE project_id = $1
	`, projectID).Scan(&max)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "[tasks.PostgresRepo.MaxPosition]")
	}
	return max, nil
}

func taskFields(task *Task) []any {
	return []any{
		&task.ID,
		&task.ProjectID,
		&task.CreatedByID,
		&task.AssigneeID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Position,
		&task.DueAt,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	}
}
