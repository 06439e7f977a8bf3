package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// MinimumShowCurrentVersion is the first git release that understands `branch --show-current`.
const MinimumShowCurrentVersion = "v2.22.0"

// versionPattern extracts "2.39.2" from "git version 2.39.2.windows.1".
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ExecutableLocator finds the git binary once and remembers the answer.
type ExecutableLocator struct {
	lookPath   func(file string) (string, error)
	candidates []string

	once sync.Once
	path string
	err  error
}

// NewExecutableLocator searches PATH first, then the usual install folders of the current OS.
func NewExecutableLocator() *ExecutableLocator {
	return NewExecutableLocatorWith(exec.LookPath, wellKnownPaths(runtime.GOOS))
}

// NewExecutableLocatorWith builds a locator with an explicit PATH lookup and fallback list.
func NewExecutableLocatorWith(lookPath func(string) (string, error), candidates []string) *ExecutableLocator {
	return &ExecutableLocator{
		lookPath:   lookPath,
		candidates: candidates,
	}
}

// Locate returns the absolute path of git or entities.ErrExecutableNotFound.
func (it *ExecutableLocator) Locate() (string, error) {
	it.once.Do(func() {
		it.path, it.err = it.search()
	})
	return it.path, it.err
}

func (it *ExecutableLocator) search() (string, error) {
	if it.lookPath != nil {
		if found, err := it.lookPath("git"); err == nil {
			return found, nil
		}
	}

	for _, candidate := range it.candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", entities.ErrExecutableNotFound
}

// Version runs `git --version` and returns the release as a semver string such as "v2.39.2".
func (it *ExecutableLocator) Version(ctx context.Context) (string, error) {
	path, err := it.Locate()
	if err != nil {
		return "", err
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &stdout
	if runErr := cmd.Run(); runErr != nil {
		return "", fmt.Errorf("git --version: %w", runErr)
	}

	return ParseVersion(stdout.String())
}

// ParseVersion converts the output of `git --version` into a canonical semver string.
func ParseVersion(output string) (string, error) {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return "", fmt.Errorf("unrecognised git version output: %q", output)
	}

	patch := match[3]
	if patch == "" {
		patch = "0"
	}
	version := fmt.Sprintf("v%s.%s.%s", match[1], match[2], patch)
	if !semver.IsValid(version) {
		return "", fmt.Errorf("unrecognised git version %q", version)
	}
	return semver.Canonical(version), nil
}

// SupportsShowCurrent reports whether version can run `git branch --show-current`.
func SupportsShowCurrent(version string) bool {
	return semver.Compare(version, MinimumShowCurrentVersion) >= 0
}

func wellKnownPaths(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\Git\bin\git.exe`,
			`C:\Program Files (x86)\Git\bin\git.exe`,
			`C:\Program Files\Git\cmd\git.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/git",
			"/usr/local/bin/git",
			"/usr/bin/git",
		}
	default:
		return []string{
			"/usr/bin/git",
			"/usr/local/bin/git",
			"/bin/git",
		}
	}
}
