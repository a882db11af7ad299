// Package storage provides the key/value persistence adapter used by the
// mock database and the session store. A missing key is never an error,
// mirroring the behaviour of a browser localStorage lookup.
package storage

import (
	"context"
	"sync"
)

type KeyValue interface {
	// Get returns the value stored under key, found=false when absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// MemoryStore is the in-process fallback backend, used when no durable
// store is configured (headless runs, unit tests).
type MemoryStore struct {
	mutex  sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	value, ok := ms.values[key]
	return value, ok, nil
}

func (ms *MemoryStore) Set(_ context.Context, key, value string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) Remove(_ context.Context, key string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	delete(ms.values, key)
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
