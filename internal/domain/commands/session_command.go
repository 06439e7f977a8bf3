package commands

import (
	"context"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// Sessions is the surface callers use to start runs in the background and observe them.
type Sessions interface {
	StartSync(ctx context.Context, req entities.SyncRequest, onLine entities.LogFunc) (*entities.Session, error)
	StartClone(ctx context.Context, req entities.CloneRequest, onLine entities.LogFunc) (*entities.Session, error)
	RequestCancel(session *entities.Session)
	QueryStatus(ctx context.Context, repoPath string) (entities.ChangeSet, error)
}

// SessionCommand runs sync and clone workflows on their own goroutines.
// At most one session of each kind is in flight at a time.
type SessionCommand struct {
	sync   Sync
	clone  Clone
	status Status

	mu     sync.Mutex
	active map[entities.SessionKind]*entities.Session
}

// NewSessionCommand creates a new SessionCommand.
func NewSessionCommand(syncCommand Sync, cloneCommand Clone, statusCommand Status) *SessionCommand {
	return &SessionCommand{
		sync:   syncCommand,
		clone:  cloneCommand,
		status: statusCommand,
		active: make(map[entities.SessionKind]*entities.Session),
	}
}

// StartSync launches a sync run and returns immediately.
func (it *SessionCommand) StartSync(
	ctx context.Context,
	req entities.SyncRequest,
	onLine entities.LogFunc,
) (*entities.Session, error) {
	return it.start(entities.SessionSync, onLine, func(session *entities.Session) entities.Outcome {
		return it.sync.Execute(ctx, req, session.Token, session.Log.Append)
	})
}

// StartClone launches a clone run and returns immediately.
func (it *SessionCommand) StartClone(
	ctx context.Context,
	req entities.CloneRequest,
	onLine entities.LogFunc,
) (*entities.Session, error) {
	return it.start(entities.SessionClone, onLine, func(session *entities.Session) entities.Outcome {
		return it.clone.Execute(ctx, req, session.Token, session.Log.Append)
	})
}

// RequestCancel asks the session to stop before its next git command.
// The command already running, if any, is allowed to finish.
func (it *SessionCommand) RequestCancel(session *entities.Session) {
	if session == nil || session.Finished() || session.Token.IsRequested() {
		return
	}
	session.Token.Request()
	session.Log.Append("Stop request sent. Waiting for current operation to finish...")
}

// QueryStatus runs the status query synchronously; it does not count as a session.
func (it *SessionCommand) QueryStatus(ctx context.Context, repoPath string) (entities.ChangeSet, error) {
	return it.status.Execute(ctx, repoPath, nil)
}

func (it *SessionCommand) start(
	kind entities.SessionKind,
	onLine entities.LogFunc,
	run func(session *entities.Session) entities.Outcome,
) (*entities.Session, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if current, ok := it.active[kind]; ok && !current.Finished() {
		return nil, fmt.Errorf("%s: %w", kind, entities.ErrSessionActive)
	}

	session := entities.NewSession(kind, onLine)
	it.active[kind] = session

	go func() {
		defer it.release(kind, session)

		outcome := entities.Failed(entities.StepValidate, fmt.Errorf("%s session ended unexpectedly", kind))
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Errorf("%s session panicked: %v", kind, recovered)
			}
			session.Finish(outcome)
		}()

		outcome = run(session)
	}()

	return session, nil
}

func (it *SessionCommand) release(kind entities.SessionKind, session *entities.Session) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.active[kind] == session {
		delete(it.active, kind)
	}
}
