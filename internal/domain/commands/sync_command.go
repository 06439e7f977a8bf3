package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const (
	// DefaultBranch is pushed when the current branch cannot be determined.
	DefaultBranch = "main"

	originRemote = "origin"
	bannerWidth  = 60
)

// nothingToCommitMarkers are the phrases git prints when the index has nothing new.
var nothingToCommitMarkers = []string{"nothing to commit", "nothing added to commit"}

// Sync is the interface for the push workflow.
type Sync interface {
	Execute(
		ctx context.Context,
		req entities.SyncRequest,
		token *entities.CancellationToken,
		log entities.LogFunc,
	) entities.Outcome
}

// SyncCommand makes the remote branch match the local working copy:
// identity -> authenticated remote -> stage -> commit -> branch -> pull --rebase -> push --force,
// then always puts the credential-free remote URL back.
type SyncCommand struct {
	git         repositories.GitRepository
	workingCopy repositories.WorkingCopyRepository
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(
	git repositories.GitRepository,
	workingCopy repositories.WorkingCopyRepository,
) *SyncCommand {
	return &SyncCommand{
		git:         git,
		workingCopy: workingCopy,
	}
}

// syncRun is the state shared by the steps of one Execute call.
type syncRun struct {
	ctx   context.Context
	git   repositories.GitRepository
	dir   string
	token *entities.CancellationToken
	log   entities.LogFunc
}

// Execute runs the whole workflow and returns its single terminal outcome.
// Every line handed to log has the access token masked.
func (it *SyncCommand) Execute(
	ctx context.Context,
	req entities.SyncRequest,
	token *entities.CancellationToken,
	log entities.LogFunc,
) (outcome entities.Outcome) {
	if log == nil {
		log = entities.Discard
	}
	log = entities.RedactingLog(log, req.Remote.Token)

	log("=== Starting Git Push Process ===")
	defer func() {
		outcome.Err = entities.RedactError(outcome.Err, req.Remote.Token)
		reportSyncOutcome(log, outcome)
		log("=== Process Finished ===")
		logger.Infof("Sync of %s finished: %s", req.RepoPath, outcome)
	}()

	if err := it.validate(req); err != nil {
		log("ERROR: " + err.Error())
		return entities.Failed(entities.StepValidate, err)
	}

	run := &syncRun{ctx: ctx, git: it.git, dir: req.RepoPath, token: token, log: log}

	if result := run.exec(entities.StepConfigureEmail, "config", "user.email", req.Email); !result.Succeeded() {
		return run.abort(entities.StepConfigureEmail, result)
	}
	if result := run.exec(entities.StepConfigureName, "config", "user.name", req.Remote.Username); !result.Succeeded() {
		return run.abort(entities.StepConfigureName, result)
	}
	log("   Git user configured.")

	release, result := run.acquireAuthenticatedRemote(req.Remote)
	if !result.Succeeded() {
		return run.abort(entities.StepRewriteRemote, result)
	}
	defer func() {
		outcome = release(outcome)
	}()

	if result = run.exec(entities.StepStage, "add", "--all"); !result.Succeeded() {
		return run.abort(entities.StepStage, result)
	}
	log("   Changes staged.")

	if stop, commitOutcome := run.commit(req.Message()); stop {
		return commitOutcome
	}

	branch, cancelled := run.discoverBranch()
	if cancelled {
		return run.abort(entities.StepDiscoverBranch, entities.AbortedResult())
	}

	result = run.exec(entities.StepPull, "pull", originRemote, branch, "--rebase")
	switch {
	case result.Aborted():
		return run.abort(entities.StepPull, result)
	case !result.Succeeded():
		// local wins: the force-push below overwrites whatever the pull could not reconcile
		log("   WARNING: Pull failed or had conflicts. Check log.")
		logger.Warnf("Pull of %s failed, continuing with force push", branch)
	default:
		log("   Pull successful.")
	}

	result = run.exec(entities.StepPush, "push", "-u", originRemote, branch, "--force")
	if !result.Succeeded() {
		return run.abort(entities.StepPush, result)
	}
	if token.IsRequested() {
		log("   Stop was requested while pushing; the push had already started and completed.")
	}

	return entities.Succeeded()
}

func (it *SyncCommand) validate(req entities.SyncRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !it.workingCopy.IsRepository(req.RepoPath) {
		return fmt.Errorf("%w: %s", entities.ErrNotARepository, req.RepoPath)
	}
	return nil
}

func (r *syncRun) exec(step entities.Step, args ...string) entities.CommandResult {
	logger.Debugf("[sync] step %s", step)
	return r.git.Run(r.ctx, r.dir, r.token, r.log, args...)
}

// acquireAuthenticatedRemote points origin at the credential-bearing URL. The returned
// release func puts the public URL back and must run on every exit path after success.
func (r *syncRun) acquireAuthenticatedRemote(
	remote entities.RemoteEndpoint,
) (func(entities.Outcome) entities.Outcome, entities.CommandResult) {
	authenticated, err := remote.AuthenticatedURL()
	if err != nil {
		return nil, entities.CommandResult{ExitCode: 1, Stderr: err.Error(), Cause: err}
	}

	result := r.exec(entities.StepRewriteRemote, "remote", "set-url", originRemote, authenticated)
	if !result.Succeeded() {
		return nil, result
	}
	r.log("   Remote URL updated for this session.")

	release := func(outcome entities.Outcome) entities.Outcome {
		logger.Debugf("[sync] step %s", entities.StepRestoreRemote)
		// restoring ignores both the cancellation token and a cancelled context
		restored := r.git.Run(
			context.WithoutCancel(r.ctx), r.dir, nil, r.log,
			"remote", "set-url", originRemote, remote.PublicURL(),
		)
		if restored.Succeeded() {
			r.log("   Remote URL restored.")
			return outcome
		}

		r.log(fmt.Sprintf(
			"CRITICAL: could not restore the remote URL. Run 'git remote set-url %s %s' manually.",
			originRemote, remote.PublicURL(),
		))
		logger.Errorf("Failed to restore remote URL for %s", r.dir)
		if outcome.IsSucceeded() {
			return entities.Failed(entities.StepRestoreRemote, commandFailure(entities.StepRestoreRemote, restored))
		}
		return outcome
	}
	return release, result
}

// commit reports stop=true with the outcome to return when the run must end here.
func (r *syncRun) commit(message string) (bool, entities.Outcome) {
	result := r.exec(entities.StepCommit, "commit", "-m", message)
	switch {
	case result.Succeeded():
		r.log("   Changes committed.")
		return false, entities.Outcome{}
	case result.Aborted():
		return true, r.abort(entities.StepCommit, result)
	case isNothingToCommit(result):
		r.log("   Nothing new to commit. Repository is up to date.")
		return false, entities.Outcome{}
	default:
		r.log("   Commit failed. Check log for errors.")
		return true, r.abort(entities.StepCommit, result)
	}
}

// discoverBranch falls back to DefaultBranch on any failure except cancellation.
func (r *syncRun) discoverBranch() (string, bool) {
	result := r.exec(entities.StepDiscoverBranch, "branch", "--show-current")
	if result.Aborted() {
		return "", true
	}

	branch := strings.TrimSpace(result.Stdout)
	if !result.Succeeded() || branch == "" {
		r.log(fmt.Sprintf("   Could not determine current branch. Defaulting to '%s'.", DefaultBranch))
		return DefaultBranch, false
	}
	return branch, false
}

// abort turns the result of a failed step into the matching terminal outcome.
func (r *syncRun) abort(step entities.Step, result entities.CommandResult) entities.Outcome {
	if result.Aborted() {
		logger.Infof("Sync cancelled before step %s", step)
		return entities.Cancelled()
	}
	logger.Errorf("Sync failed at step %s (exit %d)", step, result.ExitCode)
	return entities.Failed(step, commandFailure(step, result))
}

func commandFailure(step entities.Step, result entities.CommandResult) error {
	if entities.IsEnvironmentError(result.Cause) {
		return fmt.Errorf("%s: %w", step, result.Cause)
	}
	return entities.NewCommandError(step, result)
}

func isNothingToCommit(result entities.CommandResult) bool {
	output := result.Output()
	for _, marker := range nothingToCommitMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

func reportSyncOutcome(log entities.LogFunc, outcome entities.Outcome) {
	switch {
	case outcome.IsSucceeded():
		log("")
		log(strings.Repeat("=", bannerWidth))
		log("✓ SUCCESS! The remote now matches your local folder.")
		log(strings.Repeat("=", bannerWidth))
	case outcome.IsCancelled():
		log("")
		log(strings.Repeat("!", bannerWidth))
		log("✗ PROCESS STOPPED BY USER.")
		log(strings.Repeat("!", bannerWidth))
	case outcome.Step == entities.StepValidate:
		// validation errors were already reported and nothing ran
	default:
		log("")
		log(strings.Repeat("!", bannerWidth))
		log(fmt.Sprintf("✗ PUSH FAILED at %s. Check the error message above.", outcome.Step))
		log(strings.Repeat("!", bannerWidth))
	}
}
