// Package contextx carries per-operation values through a context.Context.
package contextx

// contextKey is an unexported type used as context key to avoid collisions
// with keys defined in other packages.
type contextKey int

const (
	operationIDKey contextKey = iota
	loggerKey
)
