package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/taskflow-server/tasks"
)

var _ tasks.Repo = (*FakeTaskRepo)(nil)

type FakeTaskRepo struct {
	records map[string]*tasks.Task
	lock    sync.RWMutex
}

func NewFakeTaskRepo() *FakeTaskRepo {
	return &FakeTaskRepo{
		records: make(map[string]*tasks.Task),
	}
}

func (tr *FakeTaskRepo) Create(_ context.Context, task *tasks.Task) (*tasks.Task, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	copied := *task
	tr.records[task.ID] = &copied
	return task, nil
}

func (tr *FakeTaskRepo) FindInProject(_ context.Context, projectID, taskID string) (*tasks.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	record, ok := tr.records[taskID]
	if !ok || record.ProjectID != projectID {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (tr *FakeTaskRepo) List(_ context.Context, projectID string, filters tasks.ListFilters) ([]*tasks.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filters.Search))

	var result []*tasks.Task
	for _, record := range tr.records {
		if record.ProjectID != projectID {
			continue
		}
		if filters.Status != nil && record.Status != *filters.Status {
			continue
		}
		if filters.AssigneeID != nil && (record.AssigneeID == nil || *record.AssigneeID != *filters.AssigneeID) {
			continue
		}
		if search != "" && !matchesSearch(record, search) {
			continue
		}
		copied := *record
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (tr *FakeTaskRepo) Save(_ context.Context, task *tasks.Task) (*tasks.Task, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.records[task.ID]; !ok {
		return nil, nil
	}
	task.UpdatedAt = time.Now()
	copied := *task
	tr.records[task.ID] = &copied
	return task, nil
}

func (tr *FakeTaskRepo) Delete(_ context.Context, id string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	delete(tr.records, id)
	return nil
}

func (tr *FakeTaskRepo) MaxPosition(_ context.Context, projectID string) (int, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	max := 0
	for _, record := range tr.records {
		if record.ProjectID == projectID && record.Position > max {
			max = record.Position
		}
	}
	return max, nil
}

func matchesSearch(task *tasks.Task, search string) bool {
	if strings.Contains(strings.ToLower(task.Title), search) {
		return true
	}
	return task.Description != nil && strings.Contains(strings.ToLower(*task.Description), search)
}
