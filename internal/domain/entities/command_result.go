package entities

// CommandResult is what a single git invocation produced.
// Cause is set only for results that never reached the process
// (ErrAborted, ErrExecutableNotFound) or failed to start it.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Cause    error
}

// Succeeded reports whether the command exited with status 0.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0 && r.Cause == nil
}

// Aborted reports whether the command was skipped because cancellation was requested.
func (r CommandResult) Aborted() bool {
	return r.Cause == ErrAborted
}

// Output returns stdout and stderr joined, for pattern checks on either stream.
func (r CommandResult) Output() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// AbortedResult is returned in place of running a command once cancellation was requested.
func AbortedResult() CommandResult {
	return CommandResult{ExitCode: 1, Stderr: "process stopped by user", Cause: ErrAborted}
}

// MissingExecutableResult is returned when git cannot be located.
func MissingExecutableResult() CommandResult {
	return CommandResult{ExitCode: 1, Stderr: "git not found", Cause: ErrExecutableNotFound}
}
