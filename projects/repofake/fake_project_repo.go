package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/taskflow-server/memberships"
	membershipfake "github.com/jrsteele09/taskflow-server/memberships/repofake"
	"github.com/jrsteele09/taskflow-server/projects"
)

var _ projects.Repo = (*FakeProjectRepo)(nil)

// FakeProjectRepo keeps projects in memory and writes owner memberships
// through the shared fake membership repo, mirroring the transactional
// behavior of the Postgres implementation.
type FakeProjectRepo struct {
	records     map[string]*projects.Project
	memberships *membershipfake.FakeMembershipRepo
	lock        sync.RWMutex
}

func NewFakeProjectRepo(membershipRepo *membershipfake.FakeMembershipRepo) *FakeProjectRepo {
	return &FakeProjectRepo{
		records:     make(map[string]*projects.Project),
		memberships: membershipRepo,
	}
}

func (pr *FakeProjectRepo) CreateWithOwner(ctx context.Context, project *projects.Project) (*projects.Project, error) {
	pr.lock.Lock()
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = projects.StatusDraft
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	copied := *project
	pr.records[project.ID] = &copied
	pr.lock.Unlock()

	_, err := pr.memberships.Create(ctx, &memberships.Membership{
		ProjectID: project.ID,
		UserID:    project.OwnerID,
		Role:      memberships.RoleOwner,
	})
	return project, err
}

func (pr *FakeProjectRepo) GetByID(_ context.Context, id string) (*projects.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	record, ok := pr.records[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (pr *FakeProjectRepo) Update(_ context.Context, id string, updates projects.UpdateParams) (*projects.Project, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	record, ok := pr.records[id]
	if !ok {
		return nil, nil
	}
	if updates.Name != nil {
		record.Name = *updates.Name
	}
	if updates.Description != nil {
		record.Description = updates.Description
	}
	if updates.Status != nil {
		record.Status = *updates.Status
	}
	record.UpdatedAt = time.Now()

	copied := *record
	return &copied, nil
}

func (pr *FakeProjectRepo) ListForUser(ctx context.Context, userID string, status *projects.Status) ([]*projects.ProjectWithRole, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	var result []*projects.ProjectWithRole
	for _, record := range pr.records {
		membership, err := pr.memberships.FindUnique(ctx, userID, record.ID)
		if err != nil {
			return nil, err
		}
		if membership == nil {
			continue
		}
		if status != nil && record.Status != *status {
			continue
		}
		result = append(result, &projects.ProjectWithRole{Project: *record, Role: membership.Role})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
