package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// PostgresSessionTokenRepo implements SessionTokenRepo over the auth_tokens
// table. Delete is a single-row DELETE; the affected-row count is what makes
// refresh rotation at-most-once under concurrent redemption.
type PostgresSessionTokenRepo struct {
	pool *pgxpool.Pool
}

var _ SessionTokenRepo = (*PostgresSessionTokenRepo)(nil)

func NewPostgresSessionTokenRepo(pool *pgxpool.Pool) *PostgresSessionTokenRepo {
	return &PostgresSessionTokenRepo{pool: pool}
}

func (r *PostgresSessionTokenRepo) Create(ctx context.Context, record *SessionToken) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_tokens (id, user_id, refresh_token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, record.ID, record.UserID, record.RefreshTokenHash, record.ExpiresAt, record.CreatedAt)
	if err != nil {
		return pkgerrors.Wrap(err, "[auth.PostgresSessionTokenRepo.Create]")
	}
	return nil
}

func (r *PostgresSessionTokenRepo) GetByID(ctx context.Context, jti string) (*SessionToken, error) {
	record := &SessionToken{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, refresh_token_hash, expires_at, created_at
		FROM auth_tokens
		WHERE id = $1
	`, jti).Scan(
		&record.ID,
		&record.UserID,
		&record.RefreshTokenHash,
		&record.ExpiresAt,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[auth.PostgresSessionTokenRepo.GetByID]")
	}
	return record, nil
}

func (r *PostgresSessionTokenRepo) Delete(ctx context.Context, jti string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE id = $1`, jti)
	if err != nil {
		return false, pkgerrors.Wrap(err, "[auth.PostgresSessionTokenRepo.Delete]")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresSessionTokenRepo) DeleteExpiredForUser(ctx context.Context, userID string, now time.Time) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM auth_tokens WHERE user_id = $1 AND expires_at < $2
	`, userID, now)
	if err != nil {
		return pkgerrors.Wrap(err, "[auth.PostgresSessionTokenRepo.DeleteExpiredForUser]")
	}
	return nil
}
