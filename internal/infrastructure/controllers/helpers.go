package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// errCancelled is returned to cobra when the user stopped a run.
var errCancelled = errors.New("operation cancelled by user")

// GitVersionProvider reports where git lives and which release it is.
type GitVersionProvider interface {
	Locate() (string, error)
	Version(ctx context.Context) (string, error)
}

// tokenEnvVars lists, per hosting provider, the environment variables checked for an access token.
var tokenEnvVars = map[string][]string{ //nolint:gochecknoglobals // lookup table
	"github.com":    {"GITHUB_TOKEN", "GH_TOKEN"},
	"gitlab.com":    {"GITLAB_TOKEN", "GL_TOKEN"},
	"dev.azure.com": {"AZURE_DEVOPS_EXT_PAT", "SYSTEM_ACCESSTOKEN"},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := entities.LoadSettingsOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// resolveTokenFromEnv looks up the conventional token variables of the provider hosting remoteURL.
func resolveTokenFromEnv(remoteURL string) string {
	for _, name := range tokenEnvHint(remoteURL) {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

func tokenEnvHint(remoteURL string) []string {
	parsed, err := url.Parse(remoteURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for suffix, names := range tokenEnvVars {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return names
		}
	}
	return nil
}

// lockedWriter serialises writes coming from the session goroutine and the caller.
type lockedWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *lockedWriter) println(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.out, line)
}
