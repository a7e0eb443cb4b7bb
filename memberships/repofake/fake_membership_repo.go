package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/taskflow-server/memberships"
)

var _ memberships.Repo = (*FakeMembershipRepo)(nil)

type FakeMembershipRepo struct {
	records map[string]*memberships.Membership
	lock    sync.RWMutex
}

func NewFakeMembershipRepo() *FakeMembershipRepo {
	return &FakeMembershipRepo{
		records: make(map[string]*memberships.Membership),
	}
}

func (mr *FakeMembershipRepo) Create(_ context.Context, membership *memberships.Membership) (*memberships.Membership, error) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now()
	}
	copied := *membership
	mr.records[membership.ID] = &copied
	return membership, nil
}

func (mr *FakeMembershipRepo) GetByID(_ context.Context, id string) (*memberships.Membership, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	record, ok := mr.records[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (mr *FakeMembershipRepo) FindUnique(_ context.Context, userID, projectID string) (*memberships.Membership, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	for _, record := range mr.records {
		if record.UserID == userID && record.ProjectID == projectID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

func (mr *FakeMembershipRepo) ListByProject(_ context.Context, projectID string) ([]*memberships.Membership, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	var result []*memberships.Membership
	for _, record := range mr.records {
		if record.ProjectID == projectID {
			copied := *record
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinedAt.Before(result[j].JoinedAt) })
	return result, nil
}

func (mr *FakeMembershipRepo) UpdateRole(_ context.Context, id string, role memberships.Role) (*memberships.Membership, error) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	record, ok := mr.records[id]
	if !ok {
		return nil, nil
	}
	record.Role = role
	copied := *record
	return &copied, nil
}

func (mr *FakeMembershipRepo) Delete(_ context.Context, id string) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	delete(mr.records, id)
	return nil
}

func (mr *FakeMembershipRepo) CountOwners(_ context.Context, projectID, excludingID string) (int, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	count := 0
	for _, record := range mr.records {
		if record.ProjectID == projectID && record.Role == memberships.RoleOwner && record.ID != excludingID {
			count++
		}
	}
	return count, nil
}
