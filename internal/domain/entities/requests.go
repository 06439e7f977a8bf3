package entities

import (
	"fmt"
	"strings"
)

// DefaultCommitMessage is used when a sync request carries no message.
const DefaultCommitMessage = "Sync local changes"

// SyncRequest carries everything a push session needs.
type SyncRequest struct {
	RepoPath      string
	Remote        RemoteEndpoint
	Email         string
	CommitMessage string
}

// Validate checks the fields that do not need the filesystem.
func (r SyncRequest) Validate() error {
	if strings.TrimSpace(r.RepoPath) == "" {
		return fmt.Errorf("%w: repository path is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("%w: committer email is required", ErrInvalidInput)
	}
	if _, err := r.Remote.AuthenticatedURL(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Remote.Username) == "" || strings.TrimSpace(r.Remote.Token) == "" {
		return fmt.Errorf("%w: username and access token are required", ErrInvalidInput)
	}
	return nil
}

// Message returns the commit message, falling back to DefaultCommitMessage.
func (r SyncRequest) Message() string {
	if strings.TrimSpace(r.CommitMessage) == "" {
		return DefaultCommitMessage
	}
	return r.CommitMessage
}

// CloneRequest carries everything a clone session needs.
// Name overrides the directory name derived from URL when set.
type CloneRequest struct {
	URL         string
	Destination string
	Name        string
}

// Validate checks that both the URL and the destination were given.
func (r CloneRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: repository URL and destination are required", ErrInvalidInput)
	}
	return nil
}

// DirectoryName returns the folder the clone will create inside Destination.
func (r CloneRequest) DirectoryName() (string, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = DeriveDirectoryName(r.URL)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: cannot derive a directory name from %q", ErrInvalidInput, StripCredentials(r.URL))
	}
	return name, nil
}

// DeriveDirectoryName takes the last path segment of a repository URL and strips a trailing ".git".
// Both "https://host/owner/repo.git" and "git@host:owner/repo.git" give "repo".
func DeriveDirectoryName(rawURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}
