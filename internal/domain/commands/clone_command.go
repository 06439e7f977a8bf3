package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Clone is the interface for the clone workflow.
type Clone interface {
	Execute(
		ctx context.Context,
		req entities.CloneRequest,
		token *entities.CancellationToken,
		log entities.LogFunc,
	) entities.Outcome
}

// CloneCommand clones a remote repository into a new folder under a destination directory.
// It never overwrites: an existing target folder fails the run before git is invoked.
type CloneCommand struct {
	git repositories.GitRepository
}

// NewCloneCommand creates a new CloneCommand.
func NewCloneCommand(git repositories.GitRepository) *CloneCommand {
	return &CloneCommand{git: git}
}

// Execute validates the request and issues a single `git clone`.
func (it *CloneCommand) Execute(
	ctx context.Context,
	req entities.CloneRequest,
	token *entities.CancellationToken,
	log entities.LogFunc,
) (outcome entities.Outcome) {
	if log == nil {
		log = entities.Discard
	}

	log("=== Starting Git Clone Process ===")
	defer func() {
		reportCloneOutcome(log, outcome)
		log("=== Clone Process Finished ===")
		logger.Infof("Clone of %s finished: %s", entities.StripCredentials(req.URL), outcome)
	}()

	name, err := prepareCloneTarget(req)
	if err != nil {
		log("ERROR: " + err.Error())
		return entities.Failed(entities.StepValidate, err)
	}

	target := filepath.Join(req.Destination, name)
	log(fmt.Sprintf("Cloning '%s' into '%s'...", entities.StripCredentials(req.URL), target))

	result := it.git.Run(ctx, req.Destination, token, log, "clone", req.URL, name)
	switch {
	case result.Succeeded():
		return it.stripClonedRemote(ctx, target, req.URL, log)
	case result.Aborted():
		return entities.Cancelled()
	default:
		return entities.Failed(entities.StepClone, commandFailure(entities.StepClone, result))
	}
}

// stripClonedRemote rewrites origin in the new clone when the URL carried credentials,
// so they do not stay in its .git/config.
func (it *CloneCommand) stripClonedRemote(
	ctx context.Context,
	target, rawURL string,
	log entities.LogFunc,
) entities.Outcome {
	public, ok := publicCloneURL(rawURL)
	if !ok {
		return entities.Succeeded()
	}

	// the clone already happened, so this runs even after a stop request
	result := it.git.Run(
		context.WithoutCancel(ctx), target, nil, log,
		"remote", "set-url", originRemote, public,
	)
	if result.Succeeded() {
		log("   Remote URL stripped of credentials.")
		return entities.Succeeded()
	}

	log(fmt.Sprintf(
		"CRITICAL: could not remove credentials from the remote URL. Run 'git remote set-url %s %s' in '%s' manually.",
		originRemote, public, target,
	))
	logger.Errorf("Failed to strip credentials from the remote URL of %s", target)
	return entities.Failed(entities.StepRestoreRemote, commandFailure(entities.StepRestoreRemote, result))
}

// publicCloneURL returns the URL without userinfo when it holds a password,
// or a bare token on an http(s) URL. SSH users such as "git@" are kept.
func publicCloneURL(rawURL string) (string, bool) {
	public := entities.StripCredentials(rawURL)
	if public == rawURL {
		return "", false
	}
	if entities.HasCredentials(rawURL) {
		return public, true
	}
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return public, true
	}
	return "", false
}

// prepareCloneTarget returns the folder name to clone into after every check that needs no git.
func prepareCloneTarget(req entities.CloneRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	info, err := os.Stat(req.Destination)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: destination %s is not an existing directory", entities.ErrInvalidInput, req.Destination)
	}

	name, err := req.DirectoryName()
	if err != nil {
		return "", err
	}

	target := filepath.Join(req.Destination, name)
	if _, statErr := os.Lstat(target); statErr == nil {
		return "", fmt.Errorf("%w: %s", entities.ErrDestinationExists, target)
	} else if !os.IsNotExist(statErr) {
		return "", fmt.Errorf("failed to inspect %s: %w", target, statErr)
	}

	return name, nil
}

func reportCloneOutcome(log entities.LogFunc, outcome entities.Outcome) {
	switch {
	case outcome.IsSucceeded():
		log("")
		log(strings.Repeat("=", bannerWidth))
		log("✓ SUCCESS! Repository cloned successfully.")
		log(strings.Repeat("=", bannerWidth))
	case outcome.IsCancelled():
		log("")
		log("✗ CLONE STOPPED BY USER.")
	case outcome.Step == entities.StepClone:
		log("")
		log(strings.Repeat("!", bannerWidth))
		log("✗ CLONE FAILED. Check the error message above.")
		log(strings.Repeat("!", bannerWidth))
	case outcome.Step == entities.StepRestoreRemote:
		log("")
		log(strings.Repeat("!", bannerWidth))
		log("✗ CLONED, BUT THE REMOTE URL STILL HOLDS CREDENTIALS. See the message above.")
		log(strings.Repeat("!", bannerWidth))
	}
}
