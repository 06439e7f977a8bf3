package controllers

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// CloneController handles the "clone" subcommand.
type CloneController struct {
	sessions commands.Sessions
}

// NewCloneController creates a new CloneController.
func NewCloneController(sessions commands.Sessions) *CloneController {
	return &CloneController{sessions: sessions}
}

// GetBind returns the Cobra command metadata.
func (it *CloneController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clone <url>",
		Short: "Clone a remote repository into a destination folder",
		Long: `Clone a remote repository into the destination folder. The directory name is
the last segment of the URL without ".git" unless --name is given. An existing
target is never overwritten.`,
	}
}

// AddFlags adds clone-specific flags.
func (it *CloneController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dest", "d", "", "Destination folder (defaults to the configured one)")
	cmd.Flags().StringP("name", "n", "", "Directory name to create instead of the derived one")
}

// Execute runs the clone workflow and waits for it to finish.
func (it *CloneController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dest, _ := cmd.Flags().GetString("dest")
	name, _ := cmd.Flags().GetString("name")

	var rawURL string
	if len(args) > 0 {
		rawURL = strings.TrimSpace(args[0])
	}

	req := entities.CloneRequest{
		URL:         rawURL,
		Destination: entities.ExpandPath(firstNonEmpty(dest, settings.Clone.Destination)),
		Name:        strings.TrimSpace(name),
	}

	ctx := entities.WithCommandTimeout(commandContext(cmd), settings.CommandTimeout)
	out := &lockedWriter{out: cmd.OutOrStdout()}
	session, err := it.sessions.StartClone(ctx, req, out.println)
	if err != nil {
		return err
	}

	outcome := awaitSession(ctx, it.sessions, session)
	return outcomeError(cmd.OutOrStdout(), entities.SessionClone, outcome)
}
