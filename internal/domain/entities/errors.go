package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound means no git executable could be located; it is never retried.
	ErrExecutableNotFound = errors.New("git executable not found")

	// ErrAborted marks a command that was skipped because cancellation was requested.
	ErrAborted = errors.New("aborted by request")

	// ErrNotARepository means the path does not exist or holds no git metadata.
	ErrNotARepository = errors.New("not a git repository")

	// ErrDestinationExists means a clone target directory is already present.
	ErrDestinationExists = errors.New("destination directory already exists")

	// ErrInvalidInput covers empty or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionActive means a run of the same kind is already in flight.
	ErrSessionActive = errors.New("an operation of this kind is already in progress")

	// ErrNotConfirmed means the force-push confirmation was not given.
	ErrNotConfirmed = errors.New("force push was not confirmed")
)

// CommandError describes a git command that exited with a non-zero status.
type CommandError struct {
	Step     Step
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *CommandError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		return fmt.Sprintf("%s: git exited with status %d", e.Step, e.ExitCode)
	}
	return fmt.Sprintf("%s: git exited with status %d: %s", e.Step, e.ExitCode, detail)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NewCommandError builds a CommandError from the result of the given step.
func NewCommandError(step Step, result CommandResult) *CommandError {
	return &CommandError{
		Step:     step,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
		Cause:    result.Cause,
	}
}

// IsEnvironmentError reports whether err comes from the environment rather than from git itself.
func IsEnvironmentError(err error) bool {
	return errors.Is(err, ErrExecutableNotFound)
}

// IsValidationError reports whether err was raised before any command ran.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotARepository) ||
		errors.Is(err, ErrDestinationExists)
}

// redactedError hides secrets from Error() while keeping the chain intact for errors.Is/As.
type redactedError struct {
	message string
	err     error
}

func (e *redactedError) Error() string { return e.message }

func (e *redactedError) Unwrap() error { return e.err }

// RedactError returns err unchanged unless its message contains one of the secrets.
func RedactError(err error, secrets ...string) error {
	if err == nil {
		return nil
	}

	message := err.Error()
	redacted := message
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted = strings.ReplaceAll(redacted, secret, redactedSecret)
		redacted = strings.ReplaceAll(redacted, escapeUserinfo(secret), redactedSecret)
	}
	if redacted == message {
		return err
	}
	return &redactedError{message: redacted, err: err}
}
