package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/taskflow-server/auth"
)

var _ auth.SessionTokenRepo = (*FakeSessionTokenRepo)(nil)

type FakeSessionTokenRepo struct {
	records map[string]*auth.SessionToken
	lock    sync.RWMutex
}

func NewFakeSessionTokenRepo() *FakeSessionTokenRepo {
	return &FakeSessionTokenRepo{
		records: make(map[string]*auth.SessionToken),
	}
}

func (sr *FakeSessionTokenRepo) Create(_ context.Context, record *auth.SessionToken) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	copied := *record
	sr.records[record.ID] = &copied
	return nil
}

func (sr *FakeSessionTokenRepo) GetByID(_ context.Context, jti string) (*auth.SessionToken, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	record, ok := sr.records[jti]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (sr *FakeSessionTokenRepo) Delete(_ context.Context, jti string) (bool, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if _, ok := sr.records[jti]; !ok {
		return false, nil
	}
	delete(sr.records, jti)
	return true, nil
}

func (sr *FakeSessionTokenRepo) DeleteExpiredForUser(_ context.Context, userID string, now time.Time) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for jti, record := range sr.records {
		if record.UserID == userID && record.ExpiresAt.Before(now) {
			delete(sr.records, jti)
		}
	}
	return nil
}

// Count reports how many records are held, for rotation and sweep tests.
func (sr *FakeSessionTokenRepo) Count() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.records)
}
