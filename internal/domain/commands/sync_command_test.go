//go:build unit

package commands_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

const (
	testToken        = "ghp_s3cr3tT0ken"
	authenticatedURL = "https://octo:" + testToken + "@github.com/octo/site.git"
	publicURL        = "https://github.com/octo/site.git"
)

// lineRecorder collects session lines from any goroutine.
type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) log(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *lineRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *lineRecorder) joined() string {
	return strings.Join(r.all(), "\n")
}

func newSyncFixture() (*commands.SyncCommand, *doubles.StubGitRepository, *doubles.StubWorkingCopyRepository) {
	git := doubles.NewStubGitRepository()
	workingCopy := &doubles.StubWorkingCopyRepository{Repository: true}
	return commands.NewSyncCommand(git, workingCopy), git, workingCopy
}

func TestSyncCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run the whole sequence and restore the public remote", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("branch --show-current", entities.CommandResult{Stdout: "feature\n"})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), recorder.log)

		// then
		require.True(t, outcome.IsSucceeded(), outcome.String())
		assert.Equal(t, []string{
			"config user.email octo@example.com",
			"config user.name octo",
			"remote set-url origin " + authenticatedURL,
			"add --all",
			"commit -m Sync local changes",
			"branch --show-current",
			"pull origin feature --rebase",
			"push -u origin feature --force",
			"remote set-url origin " + publicURL,
		}, git.Commands())
		for _, call := range git.Calls() {
			assert.Equal(t, "/work/site", call.Dir)
		}
		assert.Contains(t, recorder.all(), "✓ SUCCESS! The remote now matches your local folder.")
	})

	t.Run("should continue when there is nothing to commit", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("commit", entities.CommandResult{
			ExitCode: 1,
			Stdout:   "On branch main\nnothing to commit, working tree clean",
		})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), nil)

		// then
		assert.True(t, outcome.IsSucceeded())
		assert.Contains(t, git.Commands(), "push -u origin main --force")
	})

	t.Run("should fail at commit for any other commit error and still restore", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("commit", entities.CommandResult{ExitCode: 128, Stderr: "fatal: index.lock exists"})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), nil)

		// then
		assert.True(t, outcome.IsFailed())
		assert.Equal(t, entities.StepCommit, outcome.Step)
		ran := git.Commands()
		assert.NotContains(t, ran, "push -u origin main --force")
		assert.Equal(t, "remote set-url origin "+publicURL, ran[len(ran)-1])
	})

	t.Run("should fall back to main when the branch cannot be determined", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("branch --show-current", entities.CommandResult{ExitCode: 129, Stderr: "unknown option"})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), recorder.log)

		// then
		assert.True(t, outcome.IsSucceeded())
		assert.Contains(t, git.Commands(), "pull origin main --rebase")
		assert.Contains(t, git.Commands(), "push -u origin main --force")
		assert.Contains(t, recorder.joined(), "Defaulting to 'main'")
	})

	t.Run("should force push even when the pull fails", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("pull", entities.CommandResult{ExitCode: 1, Stderr: "CONFLICT (content)"})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), recorder.log)

		// then
		assert.True(t, outcome.IsSucceeded())
		assert.Contains(t, git.Commands(), "push -u origin main --force")
		assert.Contains(t, recorder.joined(), "WARNING: Pull failed or had conflicts")
	})

	t.Run("should fail at push and still restore the remote", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("push", entities.CommandResult{ExitCode: 1, Stderr: "remote: Permission denied"})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), recorder.log)

		// then
		require.True(t, outcome.IsFailed())
		assert.Equal(t, entities.StepPush, outcome.Step)
		ran := git.Commands()
		assert.Equal(t, "remote set-url origin "+publicURL, ran[len(ran)-1])
		assert.Contains(t, recorder.joined(), "PUSH FAILED at push")
	})

	t.Run("should stop before staging when cancelled and still restore the remote", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		token := entities.NewCancellationToken()
		git.OnRun = func(call doubles.GitCall) {
			if strings.HasPrefix(call.Command(), "remote set-url") && !call.WithoutToken {
				token.Request()
			}
		}
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, token, recorder.log)

		// then
		assert.True(t, outcome.IsCancelled())
		assert.Equal(t, []string{
			"config user.email octo@example.com",
			"config user.name octo",
			"remote set-url origin " + authenticatedURL,
			"remote set-url origin " + publicURL,
		}, git.Commands())
		assert.True(t, git.Calls()[3].WithoutToken)
		assert.Contains(t, recorder.all(), "✗ PROCESS STOPPED BY USER.")
	})

	t.Run("should not touch the remote when cancelled before the rewrite", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		token := entities.NewCancellationToken()
		token.Request()
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, token, nil)

		// then
		assert.True(t, outcome.IsCancelled())
		assert.Zero(t, git.CallCount())
	})

	t.Run("should succeed when cancel arrives while the push is running", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		token := entities.NewCancellationToken()
		git.OnRun = func(call doubles.GitCall) {
			if strings.HasPrefix(call.Command(), "push") {
				token.Request()
			}
		}
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, token, nil)

		// then
		assert.True(t, outcome.IsSucceeded())
		ran := git.Commands()
		assert.Equal(t, "remote set-url origin "+publicURL, ran[len(ran)-1])
	})

	t.Run("should run no command when the path is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, workingCopy := newSyncFixture()
		workingCopy.Repository = false
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), nil)

		// then
		require.True(t, outcome.IsFailed())
		assert.Equal(t, entities.StepValidate, outcome.Step)
		assert.ErrorIs(t, outcome.Err, entities.ErrNotARepository)
		assert.Zero(t, git.CallCount())
	})

	t.Run("should run no command when a required field is missing", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		req := entitybuilders.NewSyncRequestBuilder().WithToken("").BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), nil)

		// then
		assert.ErrorIs(t, outcome.Err, entities.ErrInvalidInput)
		assert.Zero(t, git.CallCount())
	})

	t.Run("should stop at the first step when git is missing", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("config", entities.MissingExecutableResult())
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), nil)

		// then
		require.True(t, outcome.IsFailed())
		assert.Equal(t, entities.StepConfigureEmail, outcome.Step)
		assert.ErrorIs(t, outcome.Err, entities.ErrExecutableNotFound)
		assert.Equal(t, 1, git.CallCount())
	})

	t.Run("should turn a success into a failure when the remote cannot be restored", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("remote set-url origin "+publicURL, entities.CommandResult{ExitCode: 2, Stderr: "locked"})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), recorder.log)

		// then
		require.True(t, outcome.IsFailed())
		assert.Equal(t, entities.StepRestoreRemote, outcome.Step)
		assert.Contains(t, recorder.joined(), "CRITICAL: could not restore the remote URL")
	})

	t.Run("should never expose the token in lines or errors", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, git, _ := newSyncFixture()
		git.WithResult("push", entities.CommandResult{
			ExitCode: 128,
			Stderr:   "fatal: unable to access '" + authenticatedURL + "': token " + testToken + " expired",
		})
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()
		recorder := &lineRecorder{}

		// when
		outcome := cmd.Execute(context.Background(), req, entities.NewCancellationToken(), recorder.log)

		// then
		require.True(t, outcome.IsFailed())
		assert.NotContains(t, recorder.joined(), testToken)
		assert.NotContains(t, outcome.Err.Error(), testToken)
		assert.NotContains(t, outcome.String(), testToken)
	})
}
