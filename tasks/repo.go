package tasks

import "context"

// ListFilters narrows a project's task listing.
type ListFilters struct {
	Status     *Status
	AssigneeID *string
	Search     string // case-insensitive match on title or description
}

// Repo manages task storage. FindInProject scopes lookups to a project so a
// task id from another project reads as absent.
type Repo interface {
	Create(ctx context.Context, task *Task) (*Task, error)
	FindInProject(ctx context.Context, projectID, taskID string) (*Task, error)
	List(ctx context.Context, projectID string, filters ListFilters) ([]*Task, error)
	Save(ctx context.Context, task *Task) (*Task, error)
	Delete(ctx context.Context, id string) error
	MaxPosition(ctx context.Context, projectID string) (int, error)
}
