package degrade

import (
	"context"

	"github.com/Keksclan/goRawrShield/storage"
)

// SafeGet reads key from store. Any failure, including a panic in the
// store, is reported as absent.
func SafeGet(ctx context.Context, store storage.Store, key string) (string, bool) {
	res := run("storage.get", result{}, func() (result, error) {
		v, ok, err := store.Get(ctx, key)
		return result{v, ok}, err
	})
	return res.Value.value, res.Value.ok
}

// SafeSet writes value under key and reports whether the write succeeded.
// Failures are absorbed.
func SafeSet(ctx context.Context, store storage.Store, key, value string) bool {
	res := run("storage.set", false, func() (bool, error) {
		if err := store.Set(ctx, key, value); err != nil {
			return false, err
		}
		return true, nil
	})
	return res.Value
}

type result struct {
	value string
	ok    bool
}
