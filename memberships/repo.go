package memberships

import "context"

// Repo manages membership storage. FindUnique resolves the unique
// (userID, projectID) pair; CountOwners counts OWNER memberships for a
// project excluding the one under mutation.
type Repo interface {
	Create(ctx context.Context, membership *Membership) (*Membership, error)
	GetByID(ctx context.Context, id string) (*Membership, error)
	FindUnique(ctx context.Context, userID, projectID string) (*Membership, error)
	ListByProject(ctx context.Context, projectID string) ([]*Membership, error)
	UpdateRole(ctx context.Context, id string, role Role) (*Membership, error)
	Delete(ctx context.Context, id string) error
	CountOwners(ctx context.Context, projectID, excludingID string) (int, error)
}
