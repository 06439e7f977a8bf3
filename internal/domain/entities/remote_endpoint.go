package entities

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// credentialPattern matches the password part of "scheme://user:password@" in free text.
var credentialPattern = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://[^/\s:@]*:)[^@\s/]+@`)

// RemoteEndpoint is the address of the hosted repository plus the credentials used
// to push to it. Only URL is ever persisted or restored; Token never leaves memory.
type RemoteEndpoint struct {
	URL      string
	Username string
	Token    string
}

// NewRemoteEndpoint validates rawURL and keeps its credential-free form.
func NewRemoteEndpoint(rawURL, username, token string) (RemoteEndpoint, error) {
	parsed, err := parseHTTPURL(rawURL)
	if err != nil {
		return RemoteEndpoint{}, err
	}
	if strings.TrimSpace(username) == "" {
		return RemoteEndpoint{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if strings.TrimSpace(token) == "" {
		return RemoteEndpoint{}, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}

	parsed.User = nil
	return RemoteEndpoint{
		URL:      parsed.String(),
		Username: username,
		Token:    token,
	}, nil
}

// AuthenticatedURL returns the URL with "username:token@" inserted after the scheme.
// The result must only be handed to git for the duration of a push.
func (e RemoteEndpoint) AuthenticatedURL() (string, error) {
	parsed, err := parseHTTPURL(e.URL)
	if err != nil {
		return "", err
	}
	parsed.User = url.UserPassword(e.Username, e.Token)
	return parsed.String(), nil
}

// PublicURL returns the credential-free URL that is safe to persist and log.
func (e RemoteEndpoint) PublicURL() string {
	return StripCredentials(e.URL)
}

// StripCredentials removes any userinfo from rawURL. Input that is not a URL is returned as is.
func StripCredentials(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.User == nil {
		return rawURL
	}
	parsed.User = nil
	return parsed.String()
}

// HasCredentials reports whether rawURL embeds a password or token.
func HasCredentials(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return false
	}
	_, hasPassword := parsed.User.Password()
	return hasPassword
}

// RedactCredentials masks the password of every URL found in text, keeping the username.
func RedactCredentials(text string) string {
	return credentialPattern.ReplaceAllString(text, "${1}"+redactedSecret+"@")
}

func parseHTTPURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: remote URL is required", ErrInvalidInput)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: remote URL: %s", ErrInvalidInput, RedactCredentials(err.Error()))
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("%w: remote URL must use http or https to carry a token", ErrInvalidInput)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: remote URL has no host", ErrInvalidInput)
	}
	return parsed, nil
}

// escapeUserinfo returns secret as it appears once url.UserPassword encodes it.
func escapeUserinfo(secret string) string {
	encoded := url.UserPassword("", secret).String()
	return strings.TrimPrefix(encoded, ":")
}
