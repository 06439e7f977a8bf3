//go:build unit

package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

func TestCommandError(t *testing.T) {
	t.Parallel()

	t.Run("should carry step, exit code and stderr", func(t *testing.T) {
		t.Parallel()

		// given
		result := entities.CommandResult{ExitCode: 128, Stderr: "fatal: rejected\n"}

		// when
		err := entities.NewCommandError(entities.StepPush, result)

		// then
		assert.Equal(t, "push: git exited with status 128: fatal: rejected", err.Error())
		var commandErr *entities.CommandError
		assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &commandErr)
		assert.Equal(t, entities.StepPush, commandErr.Step)
	})
}

func TestRedactError(t *testing.T) {
	t.Parallel()

	t.Run("should mask the secret while keeping the error chain", func(t *testing.T) {
		t.Parallel()

		// given
		cause := fmt.Errorf("push with ghp_abc failed: %w", entities.ErrAborted)

		// when
		err := entities.RedactError(cause, "ghp_abc")

		// then
		assert.NotContains(t, err.Error(), "ghp_abc")
		assert.True(t, errors.Is(err, entities.ErrAborted))
	})

	t.Run("should return nil for nil", func(t *testing.T) {
		t.Parallel()

		// when / then
		assert.NoError(t, entities.RedactError(nil, "x"))
	})
}

func TestCommandResult(t *testing.T) {
	t.Parallel()

	t.Run("should describe an aborted command without running anything", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.AbortedResult()

		// then
		assert.False(t, result.Succeeded())
		assert.True(t, result.Aborted())
		assert.Equal(t, 1, result.ExitCode)
	})

	t.Run("should mark a missing executable as an environment error", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.MissingExecutableResult()

		// then
		assert.True(t, entities.IsEnvironmentError(result.Cause))
		assert.False(t, result.Succeeded())
	})
}
