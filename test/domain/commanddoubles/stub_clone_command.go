//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// StubCloneCommand is a stub implementation of commands.Clone.
// When Release is set, Execute blocks until it is closed or the token is requested.
type StubCloneCommand struct {
	Outcome entities.Outcome
	Release chan struct{}

	mu               sync.Mutex
	executeCallCount int
	lastRequest      entities.CloneRequest
}

var _ commands.Clone = (*StubCloneCommand)(nil)

func (s *StubCloneCommand) Execute(
	_ context.Context,
	req entities.CloneRequest,
	token *entities.CancellationToken,
	_ entities.LogFunc,
) entities.Outcome {
	s.mu.Lock()
	s.executeCallCount++
	s.lastRequest = req
	s.mu.Unlock()

	if s.Release != nil {
		waitForReleaseOrCancel(s.Release, token)
		if token.IsRequested() {
			return entities.Cancelled()
		}
	}
	return s.Outcome
}

// ExecuteCallCount reports how many times Execute ran.
func (s *StubCloneCommand) ExecuteCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeCallCount
}

// LastRequest returns the request of the latest Execute call.
func (s *StubCloneCommand) LastRequest() entities.CloneRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequest
}

func waitForReleaseOrCancel(release <-chan struct{}, token *entities.CancellationToken) {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-release:
			return
		case <-ticker.C:
			if token.IsRequested() {
				return
			}
		}
	}
}
