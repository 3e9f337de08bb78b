// Package storage is the device's persistent key-value storage.
//
// It plays the role localStorage plays in a browser: string keys, string
// values, whole-value reads and writes, no partial updates and no
// transactions across keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNotFound      = errors.New("storage: key not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	ErrUnavailable   = errors.New("storage: unavailable")
)

// Storage is implemented by every storage driver.
type Storage interface {
	// GetItem returns ErrNotFound when the key was never written or was removed.
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// WithQuota rejects writes whose value is larger than maxBytes.
// A rejected write leaves the stored value untouched. maxBytes <= 0 disables the check.
func WithQuota(s Storage, maxBytes int) Storage {
	if maxBytes <= 0 {
		return s
	}
	return &quotaStorage{Storage: s, maxBytes: maxBytes}
}

type quotaStorage struct {
	Storage
	maxBytes int
}

func (q *quotaStorage) SetItem(ctx context.Context, key, value string) error {
	if size := len(key) + len(value); size > q.maxBytes {
		return fmt.Errorf("%w: %d bytes over limit of %d", ErrQuotaExceeded, size, q.maxBytes)
	}
	return q.Storage.SetItem(ctx, key, value)
}

// Memory keeps items in a map. Contents are lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrUnavailable
	}
	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrUnavailable
	}
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrUnavailable
	}
	delete(m.items, key)
	return nil
}

// Close makes every later call fail with ErrUnavailable, like disabled storage.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
