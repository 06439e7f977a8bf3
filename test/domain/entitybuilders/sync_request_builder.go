//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

const (
	defaultRepoPath  = "/work/site"
	defaultRemoteURL = "https://github.com/octo/site.git"
	defaultUsername  = "octo"
	defaultToken     = "ghp_s3cr3tT0ken"
	defaultEmail     = "octo@example.com"
)

// SyncRequestBuilder helps create sync requests with a fluent interface.
type SyncRequestBuilder struct {
	*testkit.BaseBuilder
	repoPath      string
	remoteURL     string
	username      string
	token         string
	email         string
	commitMessage string
}

// NewSyncRequestBuilder creates a new builder with a complete, valid request.
func NewSyncRequestBuilder() *SyncRequestBuilder {
	return &SyncRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		repoPath:    defaultRepoPath,
		remoteURL:   defaultRemoteURL,
		username:    defaultUsername,
		token:       defaultToken,
		email:       defaultEmail,
	}
}

// WithRepoPath sets the working copy path.
func (b *SyncRequestBuilder) WithRepoPath(path string) *SyncRequestBuilder {
	b.repoPath = path
	return b
}

// WithRemoteURL sets the remote URL.
func (b *SyncRequestBuilder) WithRemoteURL(remoteURL string) *SyncRequestBuilder {
	b.remoteURL = remoteURL
	return b
}

// WithUsername sets the account name.
func (b *SyncRequestBuilder) WithUsername(username string) *SyncRequestBuilder {
	b.username = username
	return b
}

// WithToken sets the access token.
func (b *SyncRequestBuilder) WithToken(token string) *SyncRequestBuilder {
	b.token = token
	return b
}

// WithEmail sets the committer email.
func (b *SyncRequestBuilder) WithEmail(email string) *SyncRequestBuilder {
	b.email = email
	return b
}

// WithCommitMessage sets the commit message.
func (b *SyncRequestBuilder) WithCommitMessage(message string) *SyncRequestBuilder {
	b.commitMessage = message
	return b
}

// Build creates the request (satisfies testkit.Builder interface).
func (b *SyncRequestBuilder) Build() interface{} {
	return b.BuildSyncRequest()
}

// BuildSyncRequest creates the request with a concrete return type.
// The endpoint is assembled directly so invalid combinations can be built too.
func (b *SyncRequestBuilder) BuildSyncRequest() entities.SyncRequest {
	return entities.SyncRequest{
		RepoPath: b.repoPath,
		Remote: entities.RemoteEndpoint{
			URL:      b.remoteURL,
			Username: b.username,
			Token:    b.token,
		},
		Email:         b.email,
		CommitMessage: b.commitMessage,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SyncRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.repoPath = defaultRepoPath
	b.remoteURL = defaultRemoteURL
	b.username = defaultUsername
	b.token = defaultToken
	b.email = defaultEmail
	b.commitMessage = ""
	return b
}

// Clone creates a deep copy of the SyncRequestBuilder.
func (b *SyncRequestBuilder) Clone() testkit.Builder {
	return &SyncRequestBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		repoPath:      b.repoPath,
		remoteURL:     b.remoteURL,
		username:      b.username,
		token:         b.token,
		email:         b.email,
		commitMessage: b.commitMessage,
	}
}
