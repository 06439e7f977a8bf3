package entities

import (
	"strings"
	"sync"
)

const redactedSecret = "***"

// LogFunc receives one user-facing line produced while a session runs.
type LogFunc func(line string)

// Discard is a LogFunc that drops every line.
func Discard(string) {}

// LogSink is an append-only, ordered list of lines that can be appended to and
// read from different goroutines.
type LogSink struct {
	// emitMu orders store and callback together, so the callback sees lines in Lines() order.
	emitMu   sync.Mutex
	mu       sync.RWMutex
	lines    []string
	onAppend LogFunc
}

// NewLogSink creates a sink. onAppend, when not nil, is called with each line after it is stored.
func NewLogSink(onAppend LogFunc) *LogSink {
	return &LogSink{onAppend: onAppend}
}

// Append stores a line and forwards it to the callback.
// The callback must not append to the same sink.
func (s *LogSink) Append(line string) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()

	if s.onAppend != nil {
		s.onAppend(line)
	}
}

// Lines returns a snapshot of every line appended so far.
func (s *LogSink) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]string, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot
}

// Len returns the number of lines appended so far.
func (s *LogSink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// RedactingLog wraps log so that every occurrence of the given secrets is
// replaced before the line leaves the caller. Empty secrets are ignored.
func RedactingLog(log LogFunc, secrets ...string) LogFunc {
	pairs := make([]string, 0, len(secrets)*2) //nolint:mnd // old/new pairs
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		pairs = append(pairs, secret, redactedSecret)
		if escaped := escapeUserinfo(secret); escaped != secret {
			pairs = append(pairs, escaped, redactedSecret)
		}
	}
	if len(pairs) == 0 {
		return log
	}

	replacer := strings.NewReplacer(pairs...)
	return func(line string) {
		log(replacer.Replace(line))
	}
}
