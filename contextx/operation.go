package contextx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// WithOperationID returns a derived context that carries the given operation ID.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

// OperationIDFromContext extracts the operation ID stored in ctx.
// It returns an empty string when no operation ID is present.
func OperationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(operationIDKey).(string)
	return id
}

// EnsureOperationID returns ctx unchanged if it already carries an operation
// ID, otherwise a derived context with a freshly generated one.
func EnsureOperationID(ctx context.Context) context.Context {
	if OperationIDFromContext(ctx) == "" {
		ctx = WithOperationID(ctx, newOperationID())
	}
	return ctx
}

// newOperationID generates a random hex-encoded identifier.
func newOperationID() string {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
