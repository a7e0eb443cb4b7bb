package memberships

import (
	"context"
	"errors"

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

const membershipColumns = `id, project_id, user_id, role, joined_at, invited_by_id`

func (r *PostgresRepo) Create(ctx context.Context, membership *Membership) (*Membership, error) {
	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO memberships (id, project_id, user_id, role, invited_by_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING joined_at
	`, membership.ID, membership.ProjectID, membership.UserID, membership.Role, membership.InvitedByID).
		Scan(&membership.JoinedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[memberships.PostgresRepo.Create]")
	}
	return membership, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Membership, error) {
	return r.getOne(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id)
}

func (r *PostgresRepo) FindUnique(ctx context.Context, userID, projectID string) (*Membership, error) {
	return r.getOne(ctx, `
		SELECT `+membershipColumns+` FROM memberships WHERE user_id = $1 AND project_id = $2
	`, userID, projectID)
}

func (r *PostgresRepo) ListByProject(ctx context.Context, projectID string) ([]*Membership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+membershipColumns+` FROM memberships WHERE project_id = $1 ORDER BY joined_at ASC
	`, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[memberships.PostgresRepo.ListByProject]")
	}
	defer rows.Close()

	var result []*Membership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, membership)
	}
	return result, pkgerrors.Wrap(rows.Err(), "[memberships.PostgresRepo.ListByProject] rows")
}

func (r *PostgresRepo) UpdateRole(ctx context.Context, id string, role Role) (*Membership, error) {
	membership := &Membership{}
	err := r.pool.QueryRow(ctx, `
		UPDATE memberships SET role = $2 WHERE id = $1
		RETURNING `+membershipColumns+`
	`, id, role).Scan(
		&membership.ID,
		&membership.ProjectID,
		&membership.UserID,
		&membership.Role,
		&membership.JoinedAt,
		&membership.InvitedByID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[memberships.PostgresRepo.UpdateRole]")
	}
	return membership, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	return pkgerrors.Wrap(err, "[memberships.PostgresRepo.Delete]")
}

func (r *PostgresRepo) CountOwners(ctx context.Context, projectID, excludingID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM memberships
		WHERE project_id = $1 AND role = $2 AND id <> $3
	`, projectID, RoleOwner, excludingID).Scan(&count)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "[memberships.PostgresRepo.CountOwners]")
	}
	return count, nil
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, args ...any) (*Membership, error) {
	membership := &Membership{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&membership.ID,
		&membership.ProjectID,
		&membership.UserID,
		&membership.Role,
		&membership.JoinedAt,
		&membership.InvitedByID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[memberships.PostgresRepo] query")
	}
	return membership, nil
}

func scanMembership(rows pgx.Rows) (*Membership, error) {
	membership := &Membership{}
	err := rows.Scan(
		&membership.ID,
		&membership.ProjectID,
		&membership.UserID,
		&membership.Role,
		&membership.JoinedAt,
		&membership.InvitedByID,
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[memberships.scanMembership]")
	}
	return membership, nil
}
