package projects

import "context"

// UpdateParams carries partial project updates; nil fields are untouched.
type UpdateParams struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// Repo manages project storage. CreateWithOwner atomically inserts the
// project and the creator's OWNER membership.
type Repo interface {
	CreateWithOwner(ctx context.Context, project *Project) (*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, id string, updates UpdateParams) (*Project, error)
	ListForUser(ctx context.Context, userID string, status *Status) ([]*ProjectWithRole, error)
}
