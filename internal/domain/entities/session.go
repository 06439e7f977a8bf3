package entities

import "sync"

// SessionKind tells sync sessions apart from clone sessions.
type SessionKind string

const (
	SessionSync  SessionKind = "sync"
	SessionClone SessionKind = "clone"
)

// Session is the handle a caller holds while a run executes on its own goroutine.
// It is safe to poll from any goroutine.
type Session struct {
	Kind  SessionKind
	Token *CancellationToken
	Log   *LogSink

	done     chan struct{}
	once     sync.Once
	mu       sync.RWMutex
	outcome  Outcome
	finished bool
}

// NewSession creates an unfinished session whose log forwards each line to onLine.
func NewSession(kind SessionKind, onLine LogFunc) *Session {
	return &Session{
		Kind:  kind,
		Token: NewCancellationToken(),
		Log:   NewLogSink(onLine),
		done:  make(chan struct{}),
	}
}

// Finish records the terminal outcome and closes Done. Only the first call has an effect.
func (s *Session) Finish(outcome Outcome) {
	s.once.Do(func() {
		s.mu.Lock()
		s.outcome = outcome
		s.finished = true
		s.mu.Unlock()
		close(s.done)
	})
}

// Done is closed once the run has finished.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Finished reports whether the run has finished.
func (s *Session) Finished() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finished
}

// Outcome returns the terminal outcome and whether it is available yet.
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome, s.finished
}

// Wait blocks until the run has finished and returns its outcome.
func (s *Session) Wait() Outcome {
	<-s.done
	outcome, _ := s.Outcome()
	return outcome
}

// Lines returns the full ordered log produced so far.
func (s *Session) Lines() []string {
	return s.Log.Lines()
}
