//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/test/domain/entitybuilders"
)

func TestDeriveDirectoryName(t *testing.T) {
	t.Parallel()

	t.Run("should take the last segment and strip .git", func(t *testing.T) {
		t.Parallel()

		cases := map[string]string{
			"https://github.com/octo/site.git":  "site",
			"https://github.com/octo/site":      "site",
			"https://github.com/octo/site.git/": "site",
			"git@github.com:octo/tools.git":     "tools",
			"host:repo.git":                     "repo",
		}
		for rawURL, expected := range cases {
			// when
			name := entities.DeriveDirectoryName(rawURL)

			// then
			assert.Equal(t, expected, name, rawURL)
		}
	})
}

func TestCloneRequest(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the custom name over the derived one", func(t *testing.T) {
		t.Parallel()

		// given
		req := entitybuilders.NewCloneRequestBuilder().
			WithDestination("/tmp").
			WithName("mirror").
			BuildCloneRequest()

		// when
		name, err := req.DirectoryName()

		// then
		require.NoError(t, err)
		assert.Equal(t, "mirror", name)
	})

	t.Run("should refuse names that escape the destination", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"..", "a/b", `a\b`} {
			// given
			req := entities.CloneRequest{URL: "https://h/o/r.git", Destination: "/tmp", Name: name}

			// when
			_, err := req.DirectoryName()

			// then
			assert.ErrorIs(t, err, entities.ErrInvalidInput, name)
		}
	})

	t.Run("should require both URL and destination", func(t *testing.T) {
		t.Parallel()

		// when
		noDest := entities.CloneRequest{URL: "https://h/o/r.git"}.Validate()
		noURL := entities.CloneRequest{Destination: "/tmp"}.Validate()

		// then
		assert.ErrorIs(t, noDest, entities.ErrInvalidInput)
		assert.ErrorIs(t, noURL, entities.ErrInvalidInput)
	})
}

func TestSyncRequest(t *testing.T) {
	t.Parallel()

	t.Run("should accept a complete request", func(t *testing.T) {
		t.Parallel()

		// given
		req := entitybuilders.NewSyncRequestBuilder().BuildSyncRequest()

		// when
		err := req.Validate()

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultCommitMessage, req.Message())
	})

	t.Run("should reject a request missing any required field", func(t *testing.T) {
		t.Parallel()

		builders := []*entitybuilders.SyncRequestBuilder{
			entitybuilders.NewSyncRequestBuilder().WithRepoPath(""),
			entitybuilders.NewSyncRequestBuilder().WithEmail(" "),
			entitybuilders.NewSyncRequestBuilder().WithUsername(""),
			entitybuilders.NewSyncRequestBuilder().WithToken(""),
			entitybuilders.NewSyncRequestBuilder().WithRemoteURL(""),
		}
		for _, builder := range builders {
			// when
			err := builder.BuildSyncRequest().Validate()

			// then
			assert.ErrorIs(t, err, entities.ErrInvalidInput)
		}
	})

	t.Run("should use the custom commit message when given", func(t *testing.T) {
		t.Parallel()

		// given
		req := entitybuilders.NewSyncRequestBuilder().WithCommitMessage("Publish drafts").BuildSyncRequest()

		// when
		message := req.Message()

		// then
		assert.Equal(t, "Publish drafts", message)
	})
}
