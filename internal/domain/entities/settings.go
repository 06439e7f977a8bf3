package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings is the persisted profile: where the working copy lives, where it is pushed,
// and who pushes it. The access token is only ever stored as a reference.
type Settings struct {
	Repository     RepositorySettings `yaml:"repository"`
	Identity       IdentitySettings   `yaml:"identity"`
	Token          string             `yaml:"token,omitempty"` // ${ENV_VAR} or path to a file holding the token
	CommitMessage  string             `yaml:"commit_message,omitempty"`
	Clone          CloneSettings      `yaml:"clone,omitempty"`
	CommandTimeout time.Duration      `yaml:"command_timeout,omitempty"`

	resolvedToken string
}

// RepositorySettings points at the local working copy and its remote.
type RepositorySettings struct {
	Path      string `yaml:"path"`
	RemoteURL string `yaml:"remote_url,omitempty"`
}

// IdentitySettings is the committer identity written into the repository config.
type IdentitySettings struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
}

// CloneSettings holds defaults for the clone command.
type CloneSettings struct {
	Destination string `yaml:"destination,omitempty"`
}

// NewSettings reads and parses a settings file, expanding ~ in paths and resolving the token reference.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Repository.Path = ExpandPath(settings.Repository.Path)
	settings.Clone.Destination = ExpandPath(settings.Clone.Destination)
	settings.Repository.RemoteURL = StripCredentials(settings.Repository.RemoteURL)
	settings.resolvedToken = ResolveToken(settings.Token)

	if settings.CommandTimeout < 0 {
		return nil, fmt.Errorf("%w: command_timeout cannot be negative", ErrInvalidInput)
	}

	return &settings, nil
}

// LoadSettingsOrDefault loads path when it is set, otherwise looks for a file in the
// default locations. Missing files give empty settings rather than an error.
func LoadSettingsOrDefault(path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using flags only: %v", err)
			return &Settings{}, nil
		}
		path = found
	}

	logger.Debugf("Using config file: %s", path)
	return NewSettings(path)
}

// AccessToken returns the resolved token value. It is never written back to disk.
func (s *Settings) AccessToken() string {
	return s.resolvedToken
}

// Save writes the settings to path. Tokens must be references: a literal value is refused.
func (s *Settings) Save(path string) error {
	if s.Token != "" && !IsTokenReference(s.Token) {
		return fmt.Errorf(
			"%w: token must be an ${ENV_VAR} reference or a file path, not a literal value",
			ErrInvalidInput,
		)
	}

	persisted := *s
	persisted.Repository.RemoteURL = StripCredentials(s.Repository.RemoteURL)
	persisted.resolvedToken = ""

	data, err := yaml.Marshal(&persisted)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
		return fmt.Errorf("failed to create config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write config file %q: %w", path, writeErr)
	}
	return nil
}

// DefaultConfigPath is where configure writes when no --config was given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reposync.yaml"
	}
	return filepath.Join(home, ".config", "reposync.yaml")
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".reposync.yaml",
		".reposync.yml",
		"reposync.yaml",
		"reposync.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// IsTokenReference reports whether raw points at a token instead of being one.
func IsTokenReference(raw string) bool {
	if envVarPattern.MatchString(raw) {
		return true
	}
	_, err := os.Stat(ExpandPath(raw))
	return err == nil
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	candidate := ExpandPath(resolved)
	if _, statErr := os.Stat(candidate); statErr == nil {
		data, readErr := os.ReadFile(candidate)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", candidate, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", candidate)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
