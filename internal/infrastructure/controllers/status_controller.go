package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	sessions    commands.Sessions
	workingCopy repositories.WorkingCopyRepository
}

// NewStatusController creates a new StatusController.
func NewStatusController(
	sessions commands.Sessions,
	workingCopy repositories.WorkingCopyRepository,
) *StatusController {
	return &StatusController{sessions: sessions, workingCopy: workingCopy}
}

// GetBind returns the Cobra command metadata.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status [path]",
		Short: "Summarize the pending changes of a working copy",
	}
}

// AddFlags adds status-specific flags.
func (it *StatusController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "Local working copy (defaults to the configured path)")
}

// Execute prints the grouped change summary.
func (it *StatusController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	pathFlag, _ := cmd.Flags().GetString("path")
	var argPath string
	if len(args) > 0 {
		argPath = args[0]
	}
	repoPath := entities.ExpandPath(firstNonEmpty(argPath, pathFlag, settings.Repository.Path))

	changes, err := it.sessions.QueryStatus(commandContext(cmd), repoPath)
	if err != nil {
		return err
	}

	branch, branchErr := it.workingCopy.CurrentBranch(repoPath)
	if branchErr != nil {
		logger.Debugf("Could not read the current branch: %v", branchErr)
	}

	renderChangeSet(cmd.OutOrStdout(), branch, changes)
	return nil
}
