// Package storage provides bounded key/value string stores. Stores may fail
// (quota exceeded, backend disabled or unreachable); callers that treat
// storage as best-effort wrap them with the degrade package helpers.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExceeded is returned when a write does not fit in the store.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")

	// ErrUnavailable is returned when the store is disabled.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Store is a key/value string store.
type Store interface {
	// Get returns the value stored under key. The boolean reports whether
	// the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
