// Package cli drives the locally installed git executable.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// GitRepository implements repositories.GitRepository with os/exec.
type GitRepository struct {
	locator *ExecutableLocator
}

var _ repositories.GitRepository = (*GitRepository)(nil)

// NewGitRepository creates a runner that resolves git through locator.
func NewGitRepository(locator *ExecutableLocator) *GitRepository {
	return &GitRepository{locator: locator}
}

// Run executes `git args...` in dir and waits for it.
// Credentials embedded in URLs are masked in the logged command and in the captured output.
func (it *GitRepository) Run(
	ctx context.Context,
	dir string,
	token *entities.CancellationToken,
	log entities.LogFunc,
	args ...string,
) entities.CommandResult {
	if log == nil {
		log = entities.Discard
	}

	if token.IsRequested() {
		log("!!! STOP REQUESTED: Aborting further Git operations. !!!")
		return entities.AbortedResult()
	}

	executable, err := it.locator.Locate()
	if err != nil {
		log("CRITICAL ERROR: Git is not installed or not found.")
		logger.Errorf("Cannot run git: %v", err)
		return entities.MissingExecutableResult()
	}

	display := strings.Join(RedactArgs(args), " ")
	log("-> Running: git " + display)
	logger.Debugf("Executing %s %s in %s", executable, display, dir)

	if timeout := entities.CommandTimeout(ctx); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Dir = dir
	detachProcessGroup(cmd)
	// never block on an interactive credential prompt
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := entities.CommandResult{
		Stdout: entities.RedactCredentials(stdout.String()),
		Stderr: entities.RedactCredentials(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case runErr != nil:
		result.ExitCode = 1
		result.Cause = fmt.Errorf("executing git: %w", runErr)
		if result.Stderr == "" {
			result.Stderr = entities.RedactCredentials(runErr.Error())
		}
	}

	if out := strings.TrimSpace(result.Stdout); out != "" {
		log("   Output: " + out)
	}
	if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
		log("   Error: " + errOut)
	}

	return result
}

// RedactArgs masks the password part of every URL argument.
func RedactArgs(args []string) []string {
	redacted := make([]string, len(args))
	for i, arg := range args {
		redacted[i] = entities.RedactCredentials(arg)
	}
	return redacted
}
