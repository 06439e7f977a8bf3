package repositories

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// GitRepository runs one git command against a working directory.
//
// Implementations check the token before starting the process and return
// entities.AbortedResult() without running anything once it is requested.
// A nil token is never requested. Every call blocks until the process exits.
type GitRepository interface {
	Run(
		ctx context.Context,
		dir string,
		token *entities.CancellationToken,
		log entities.LogFunc,
		args ...string,
	) entities.CommandResult
}
