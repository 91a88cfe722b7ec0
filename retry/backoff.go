// Package retry re-invokes a failing operation on a bounded, linearly
// increasing delay schedule. Attempts are strictly sequential and every call
// to [Do] starts a fresh attempt counter.
package retry

import "time"

// Plan describes how often and how patiently an operation is retried.
type Plan struct {
	// MaxAttempts is the maximum number of times the operation is called,
	// including the first attempt. Values below 1 are treated as 1.
	MaxAttempts int

	// BaseDelay scales the wait before each retry: the wait after failed
	// attempt n is BaseDelay * n.
	BaseDelay time.Duration
}

// DefaultPlan makes three attempts, waiting 1s and then 2s between them.
var DefaultPlan = Plan{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
}

// Delay returns the wait inserted after the given failed attempt (1-based).
// The schedule grows linearly, without jitter or a cap.
func (p Plan) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return p.BaseDelay * time.Duration(attempt)
}

// attempts returns the effective attempt budget.
func (p Plan) attempts() int {
	return max(p.MaxAttempts, 1)
}
