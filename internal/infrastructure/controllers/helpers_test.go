//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/controllers"
)

type stubGitVersion struct {
	path    string
	version string
	err     error
}

var _ controllers.GitVersionProvider = (*stubGitVersion)(nil)

func (s *stubGitVersion) Locate() (string, error) { return s.path, s.err }

func (s *stubGitVersion) Version(context.Context) (string, error) { return s.version, s.err }

// writeProfile writes a profile whose token is a reference to a token file.
func writeProfile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("ghp_from_profile\n"), 0o600))
	profile := filepath.Join(dir, "reposync.yaml")
	content := strings.ReplaceAll(body, "$TOKEN_FILE", tokenPath)
	require.NoError(t, os.WriteFile(profile, []byte(content), 0o600))
	return profile
}

// newCommand builds the cobra command the way main does, with the root persistent flags inlined.
func newCommand(
	t *testing.T,
	controller entities.Controller,
	profile string,
	stdin string,
) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	//nolint:exhaustruct // test command
	cmd := &cobra.Command{Use: controller.GetBind().Use}
	cmd.Flags().String("config", "", "")
	cmd.Flags().Bool("verbose", false, "")
	controller.AddFlags(cmd)
	require.NoError(t, cmd.Flags().Set("config", profile))

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetContext(context.Background())
	return cmd, out
}
