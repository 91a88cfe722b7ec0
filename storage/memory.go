package storage

import (
	"context"
	"sync"
)

// DefaultQuota is the byte budget of a Memory store created with a
// non-positive quota.
const DefaultQuota = 5 << 20

// Memory is an in-process store bounded by the total size of its keys and
// values, in bytes.
type Memory struct {
	mu       sync.Mutex
	items    map[string]string
	used     int
	quota    int
	disabled bool
}

// NewMemory creates a Memory store holding at most quota bytes.
func NewMemory(quota int) *Memory {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &Memory{items: make(map[string]string), quota: quota}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled {
		return "", false, ErrUnavailable
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// Set stores value under key. It returns ErrQuotaExceeded, leaving the store
// unchanged, when the write would exceed the quota.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled {
		return ErrUnavailable
	}

	used := m.used + len(key) + len(value)
	if old, ok := m.items[key]; ok {
		used -= len(key) + len(old)
	}
	if used > m.quota {
		return ErrQuotaExceeded
	}
	m.items[key] = value
	m.used = used
	return nil
}

// Used returns the number of bytes currently stored.
func (m *Memory) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

// Disable makes every subsequent operation fail with ErrUnavailable, the way
// browser storage behaves when the user turns it off.
func (m *Memory) Disable() {
	m.mu.Lock()
	m.disabled = true
	m.mu.Unlock()
}

// Enable reverses Disable.
func (m *Memory) Enable() {
	m.mu.Lock()
	m.disabled = false
	m.mu.Unlock()
}
