package storage

import (
	"context"

	"github.com/dgraph-io/ristretto/v2"
)

// Ristretto is an in-process store backed by ristretto. Each entry costs the
// length of its value; writes rejected by the admission policy or exceeding
// the cost budget surface as ErrQuotaExceeded.
type Ristretto struct {
	rc *ristretto.Cache[string, string]
}

// NewRistretto creates a store that holds at most maxCost bytes of values.
func NewRistretto(maxCost int64) (*Ristretto, error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{rc: rc}, nil
}

// Get returns the value stored under key.
func (r *Ristretto) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := r.rc.Get(key)
	return v, ok, nil
}

// Set stores value under key and waits until the write is visible.
func (r *Ristretto) Set(_ context.Context, key, value string) error {
	cost := max(int64(len(value)), 1)
	if cost > r.rc.MaxCost() || !r.rc.Set(key, value, cost) {
		return ErrQuotaExceeded
	}
	r.rc.Wait()
	return nil
}

// Close stops the ristretto background goroutines.
func (r *Ristretto) Close() {
	r.rc.Close()
}
