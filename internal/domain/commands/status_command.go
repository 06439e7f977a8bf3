package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Status is the interface for the change-summary query.
type Status interface {
	Execute(ctx context.Context, repoPath string, log entities.LogFunc) (entities.ChangeSet, error)
}

// StatusCommand lists pending changes of a working copy, untracked files included.
type StatusCommand struct {
	git         repositories.GitRepository
	workingCopy repositories.WorkingCopyRepository
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(
	git repositories.GitRepository,
	workingCopy repositories.WorkingCopyRepository,
) *StatusCommand {
	return &StatusCommand{
		git:         git,
		workingCopy: workingCopy,
	}
}

// Execute returns the parsed change set. A failed git call is an error, never an empty set.
func (it *StatusCommand) Execute(
	ctx context.Context,
	repoPath string,
	log entities.LogFunc,
) (entities.ChangeSet, error) {
	if log == nil {
		log = entities.Discard
	}

	if !it.workingCopy.IsRepository(repoPath) {
		return entities.ChangeSet{}, fmt.Errorf("%w: %s", entities.ErrNotARepository, repoPath)
	}

	log("Checking for changes...")
	result := it.git.Run(ctx, repoPath, nil, log, "status", "--porcelain", "--untracked-files=all")
	if !result.Succeeded() {
		return entities.ChangeSet{}, commandFailure(entities.StepStatus, result)
	}

	return entities.ParseStatus(result.Stdout), nil
}
