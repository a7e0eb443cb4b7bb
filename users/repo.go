package users

import "context"

// Repo manages storage of user accounts. GetByEmail expects a lower-cased
// email; Create fails with apperrors.ErrConflict on a duplicate.
type Repo interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
