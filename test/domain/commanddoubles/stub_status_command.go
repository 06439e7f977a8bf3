//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// StubStatusCommand is a stub implementation of commands.Status.
type StubStatusCommand struct {
	Changes          entities.ChangeSet
	ExecuteErr       error
	ExecuteCallCount int
	LastPath         string
}

var _ commands.Status = (*StubStatusCommand)(nil)

func (s *StubStatusCommand) Execute(
	_ context.Context,
	repoPath string,
	_ entities.LogFunc,
) (entities.ChangeSet, error) {
	s.ExecuteCallCount++
	s.LastPath = repoPath
	return s.Changes, s.ExecuteErr
}
