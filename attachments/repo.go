package attachments

import "context"

// Repo is the storage interface for attachment metadata.
type Repo interface {
	Create(ctx context.Context, attachment *Attachment) (*Attachment, error)
	ListByTask(ctx context.Context, taskID string) ([]*Attachment, error)
}
