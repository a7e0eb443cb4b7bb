// Package storagefake provides an in-memory ObjectStore for testing.
package storagefake

import (
	"context"
	"sync"
)

type FakeObjectStore struct {
	lock      sync.RWMutex
	presigned []string
}

func NewFakeObjectStore() *FakeObjectStore {
	return &FakeObjectStore{}
}

func (f *FakeObjectStore) PresignUpload(_ context.Context, key, _ string) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.presigned = append(f.presigned, key)
	return "https://uploads.example.test/" + key + "?signature=fake", nil
}

func (f *FakeObjectStore) PublicURL(key string) string {
	return "https://cdn.example.test/" + key
}

// PresignedKeys returns the keys presigned so far, in order.
func (f *FakeObjectStore) PresignedKeys() []string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return append([]string(nil), f.presigned...)
}
