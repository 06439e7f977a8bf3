package entities

import "sync/atomic"

// CancellationToken is a one-way latch shared between a running session and its caller.
// The zero value is ready to use; a nil token is never requested.
type CancellationToken struct {
	requested atomic.Bool
}

// NewCancellationToken creates a token that has not been requested yet.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// Request marks the token as requested. Calling it more than once has no further effect.
func (t *CancellationToken) Request() {
	if t == nil {
		return
	}
	t.requested.Store(true)
}

// IsRequested reports whether Request was called.
func (t *CancellationToken) IsRequested() bool {
	if t == nil {
		return false
	}
	return t.requested.Load()
}
