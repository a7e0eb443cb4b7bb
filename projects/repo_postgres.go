package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/memberships"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

const projectColumns = `id, name, description, status, owner_id, created_at, updated_at`

// CreateWithOwner inserts the project and the creator's OWNER membership in
// one transaction, so a project can never exist without an owner.
func (r *PostgresRepo) CreateWithOwner(ctx context.Context, project *Project) (*Project, error) {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = StatusDraft
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.CreateWithOwner] Begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO projects (id, name, description, status, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, project.ID, project.Name, project.Description, project.Status, project.OwnerID).
		Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.CreateWithOwner] insert project")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (id, project_id, user_id, role)
		VALUES ($1, $2, $3, $4)
	`, uuid.New().String(), project.ID, project.OwnerID, memberships.RoleOwner)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.CreateWithOwner] insert membership")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.CreateWithOwner] Commit")
	}
	return project, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Project, error) {
	project := &Project{}
	err := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.GetByID]")
	}
	return project, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, updates UpdateParams) (*Project, error) {
	project := &Project{}
	err := r.pool.QueryRow(ctx, `
		UPDATE projects SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			status      = COALESCE($4, status),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+projectColumns+`
	`, id, updates.Name, updates.Description, updates.Status).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.Update]")
	}
	return project, nil
}

func (r *PostgresRepo) ListForUser(ctx context.Context, userID string, status *Status) ([]*ProjectWithRole, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.status, p.owner_id, p.created_at, p.updated_at, m.role
		FROM memberships m
		JOIN projects p ON p.id = m.project_id
		WHERE m.user_id = $1 AND ($2::text IS NULL OR p.status = $2)
		ORDER BY p.created_at DESC
	`, userID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.ListForUser]")
	}
	defer rows.Close()

	var result []*ProjectWithRole
	for rows.Next() {
		item := &ProjectWithRole{}
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Status,
			&item.OwnerID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Role,
		)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "[projects.PostgresRepo.ListForUser] scan")
		}
		result = append(result, item)
	}
	return result, pkgerrors.Wrap(rows.Err(), "[projects.PostgresRepo.ListForUser] rows")
}
