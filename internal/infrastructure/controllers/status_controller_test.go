//go:build unit

package controllers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/controllers"
	"github.com/rios0rios0/reposync/test/domain/commanddoubles"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

func TestStatusControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should print the summary for the given path", func(t *testing.T) {
		t.Parallel()

		// given
		statusStub := &commanddoubles.StubStatusCommand{Changes: entities.ParseStatus("?? new.txt\n")}
		sessions := commands.NewSessionCommand(&commanddoubles.StubSyncCommand{}, &commanddoubles.StubCloneCommand{}, statusStub)
		controller := controllers.NewStatusController(sessions, &doubles.StubWorkingCopyRepository{Branch: "develop"})
		cmd, out := newCommand(t, controller, writeProfile(t, ""), "")

		// when
		err := controller.Execute(cmd, []string{"/work/site"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "/work/site", statusStub.LastPath)
		assert.Contains(t, out.String(), "CHANGES SUMMARY (develop)")
		assert.Contains(t, out.String(), "TOTAL: 1 changes")
	})

	t.Run("should still print when the branch is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		sessions := commands.NewSessionCommand(
			&commanddoubles.StubSyncCommand{},
			&commanddoubles.StubCloneCommand{},
			&commanddoubles.StubStatusCommand{Changes: entities.ParseStatus("")},
		)
		controller := controllers.NewStatusController(
			sessions,
			&doubles.StubWorkingCopyRepository{BranchErr: errors.New("detached")},
		)
		cmd, out := newCommand(t, controller, writeProfile(t, "repository:\n  path: /work/site\n"), "")

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "No changes detected.\n", out.String())
	})

	t.Run("should return the query error", func(t *testing.T) {
		t.Parallel()

		// given
		sessions := commands.NewSessionCommand(
			&commanddoubles.StubSyncCommand{},
			&commanddoubles.StubCloneCommand{},
			&commanddoubles.StubStatusCommand{ExecuteErr: entities.ErrNotARepository},
		)
		controller := controllers.NewStatusController(sessions, &doubles.StubWorkingCopyRepository{})
		cmd, _ := newCommand(t, controller, writeProfile(t, ""), "")

		// when
		err := controller.Execute(cmd, []string{"/nowhere"})

		// then
		assert.ErrorIs(t, err, entities.ErrNotARepository)
	})
}
