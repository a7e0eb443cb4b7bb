// Package repofake provides an in-memory attachment repository for testing.
package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/taskflow-server/attachments"
)

type FakeAttachmentRepo struct {
	lock        sync.RWMutex
	attachments map[string]*attachments.Attachment
}

func NewFakeAttachmentRepo() *FakeAttachmentRepo {
	return &FakeAttachmentRepo{attachments: make(map[string]*attachments.Attachment)}
}

func (r *FakeAttachmentRepo) Create(_ context.Context, attachment *attachments.Attachment) (*attachments.Attachment, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	stored := *attachment
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.CreatedAt = time.Now()
	r.attachments[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *FakeAttachmentRepo) ListByTask(_ context.Context, taskID string) ([]*attachments.Attachment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var results []*attachments.Attachment
	for _, attachment := range r.attachments {
		if attachment.TaskID == taskID {
			copied := *attachment
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}
