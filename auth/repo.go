package auth

import (
	"context"
	"time"
)

// SessionTokenRepo manages server-side refresh token records.
//
// Delete reports whether a row was actually removed. Rotation relies on
// this: two concurrent redemptions of the same jti race on the delete, and
// only the winner may issue new tokens.
type SessionTokenRepo interface {
	Create(ctx context.Context, record *SessionToken) error
	GetByID(ctx context.Context, jti string) (*SessionToken, error)
	Delete(ctx context.Context, jti string) (bool, error)
	DeleteExpiredForUser(ctx context.Context, userID string, now time.Time) error
}
