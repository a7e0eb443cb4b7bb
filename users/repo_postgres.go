package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
)

const uniqueViolation = "23505"

// PostgresRepo implements Repo backed by the users table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func (r *PostgresRepo) Create(ctx context.Context, user *User) (*User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, profile_color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, user.ID, user.Email, user.PasswordHash, user.DisplayName, user.ProfileColor).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, apperrors.Conflict("Email already in use")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[users.PostgresRepo.Create]")
	}

	return user, nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, display_name, profile_color, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, display_name, profile_color, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.ProfileColor,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[users.PostgresRepo] query")
	}
	return user, nil
}
