package controllers

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

const pollInterval = 100 * time.Millisecond

// awaitSession polls the session until it finishes. An interrupt (Ctrl+C) turns into
// a cooperative stop request; git runs in its own process group, so the command in
// flight never sees the signal and a second interrupt changes nothing.
func awaitSession(
	ctx context.Context,
	sessions commands.Sessions,
	session *entities.Session,
) entities.Outcome {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-interrupts:
			sessions.RequestCancel(session)
		case <-ctx.Done():
			sessions.RequestCancel(session)
			return session.Wait()
		case <-ticker.C:
			if outcome, finished := session.Outcome(); finished {
				return outcome
			}
		}
	}
}
