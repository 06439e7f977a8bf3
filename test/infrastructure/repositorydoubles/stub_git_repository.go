//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"
	"sync"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// GitCall records a single invocation of Run.
type GitCall struct {
	Dir          string
	Args         []string
	WithoutToken bool
}

// Command returns the arguments joined by spaces, e.g. "push -u origin main --force".
func (c GitCall) Command() string {
	return strings.Join(c.Args, " ")
}

// StubGitRepository implements repositories.GitRepository with scripted results.
// Results are looked up by the longest key that prefixes the joined command;
// commands without a scripted result succeed with empty output.
type StubGitRepository struct {
	// --- Run ---
	Results map[string]entities.CommandResult
	// OnRun is called after a call is recorded and before its result is returned.
	OnRun func(call GitCall)

	mu    sync.Mutex
	calls []GitCall
}

var _ repositories.GitRepository = (*StubGitRepository)(nil)

// NewStubGitRepository creates a stub where every command succeeds.
func NewStubGitRepository() *StubGitRepository {
	return &StubGitRepository{Results: make(map[string]entities.CommandResult)}
}

// WithResult scripts the result of every command starting with prefix.
func (s *StubGitRepository) WithResult(prefix string, result entities.CommandResult) *StubGitRepository {
	s.Results[prefix] = result
	return s
}

func (s *StubGitRepository) Run(
	_ context.Context,
	dir string,
	token *entities.CancellationToken,
	log entities.LogFunc,
	args ...string,
) entities.CommandResult {
	if log == nil {
		log = entities.Discard
	}
	if token.IsRequested() {
		log("!!! STOP REQUESTED: Aborting further Git operations. !!!")
		return entities.AbortedResult()
	}

	call := GitCall{Dir: dir, Args: append([]string(nil), args...), WithoutToken: token == nil}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	log("-> Running: git " + entities.RedactCredentials(call.Command()))
	if s.OnRun != nil {
		s.OnRun(call)
	}

	result := s.lookup(call.Command())
	if result.Stdout != "" {
		log("   Output: " + result.Stdout)
	}
	if result.Stderr != "" {
		log("   Error: " + result.Stderr)
	}
	return result
}

// Calls returns a snapshot of every recorded call.
func (s *StubGitRepository) Calls() []GitCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GitCall(nil), s.calls...)
}

// Commands returns the joined form of every recorded call.
func (s *StubGitRepository) Commands() []string {
	calls := s.Calls()
	commands := make([]string, 0, len(calls))
	for _, call := range calls {
		commands = append(commands, call.Command())
	}
	return commands
}

// CallCount reports how many commands were started.
func (s *StubGitRepository) CallCount() int {
	return len(s.Calls())
}

func (s *StubGitRepository) lookup(command string) entities.CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := ""
	found := false
	for prefix := range s.Results {
		if strings.HasPrefix(command, prefix) && len(prefix) >= len(best) {
			best = prefix
			found = true
		}
	}
	if !found {
		return entities.CommandResult{}
	}
	return s.Results[best]
}
