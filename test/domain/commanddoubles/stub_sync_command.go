//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// StubSyncCommand is a stub implementation of commands.Sync.
// When Release is set, Execute blocks until it is closed or the token is requested.
type StubSyncCommand struct {
	Outcome entities.Outcome
	Release chan struct{}
	Lines   []string

	mu               sync.Mutex
	executeCallCount int
	lastRequest      entities.SyncRequest
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(
	_ context.Context,
	req entities.SyncRequest,
	token *entities.CancellationToken,
	log entities.LogFunc,
) entities.Outcome {
	s.mu.Lock()
	s.executeCallCount++
	s.lastRequest = req
	s.mu.Unlock()

	for _, line := range s.Lines {
		log(line)
	}
	if s.Release != nil {
		waitForReleaseOrCancel(s.Release, token)
		if token.IsRequested() {
			return entities.Cancelled()
		}
	}
	return s.Outcome
}

// ExecuteCallCount reports how many times Execute ran.
func (s *StubSyncCommand) ExecuteCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeCallCount
}

// LastRequest returns the request of the latest Execute call.
func (s *StubSyncCommand) LastRequest() entities.SyncRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequest
}
